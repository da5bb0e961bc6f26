package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Staff represents a real staff member. The engine reads staff rows as
// immutable snapshots owned by the persistence layer; it never writes them.
type Staff struct {
	ID                 string          `json:"id" db:"id"`
	Name               string          `json:"name" db:"name"`
	RoleID             string          `json:"role_id" db:"role_id"`
	InternalHourlyCost decimal.Decimal `json:"internal_hourly_cost" db:"internal_hourly_cost"`
	AvailableFrom      *time.Time      `json:"available_from,omitempty" db:"available_from"`
	AvailableUntil     *time.Time      `json:"available_until,omitempty" db:"available_until"`
	Skills             StringArray     `json:"skills" db:"skills"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// AvailableDuring reports whether the availability window covers the whole
// of [from, to]. A nil bound is open-ended.
func (s *Staff) AvailableDuring(from, to time.Time) bool {
	if s.AvailableFrom != nil && s.AvailableFrom.After(from) {
		return false
	}
	if s.AvailableUntil != nil && s.AvailableUntil.Before(to) {
		return false
	}
	return true
}

// AvailableInMonth reports whether the availability window covers the whole
// calendar month m.
func (s *Staff) AvailableInMonth(m Month) bool {
	return s.AvailableDuring(m.Start(), m.End())
}

// HasSkill reports whether the staff member lists the skill, ignoring case.
func (s *Staff) HasSkill(skill string) bool {
	for _, have := range s.Skills {
		if strings.EqualFold(have, skill) {
			return true
		}
	}
	return false
}

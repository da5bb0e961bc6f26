package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/planwise/staffing-backend/internal/database"
	"github.com/planwise/staffing-backend/internal/models"
)

// SuggestionWeights tunes the match score. The weighting is a business rule
// rather than a correctness invariant, so it lives in configuration; the
// score must stay monotonic in available allocation.
type SuggestionWeights struct {
	AvailabilityWeight float64
	SkillMatchBonus    float64
	MaxSkillBonus      float64
	LoadPenaltyWeight  float64
}

// SuggestionService ranks candidate staff for a role over a window.
type SuggestionService struct {
	staffRepo      *database.StaffRepository
	assignmentRepo *database.AssignmentRepository
	weights        SuggestionWeights
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(staffRepo *database.StaffRepository, assignmentRepo *database.AssignmentRepository, weights SuggestionWeights) *SuggestionService {
	return &SuggestionService{
		staffRepo:      staffRepo,
		assignmentRepo: assignmentRepo,
		weights:        weights,
	}
}

// Suggest scores staff holding the role whose availability window covers
// [from, to]. Candidates who cannot take on desiredAllocation in every
// month of the window are excluded. Results are ordered by descending
// score with staff id as the deterministic tie-break.
func (s *SuggestionService) Suggest(roleID string, from, to time.Time, desiredAllocation float64, skills []string) ([]models.Suggestion, error) {
	if to.Before(from) {
		return nil, models.NewValidationError("start of range must not be after end")
	}
	if desiredAllocation < 0 || desiredAllocation > 100 {
		return nil, models.NewValidationError("desired allocation must be within [0,100], got %v", desiredAllocation)
	}

	candidates, err := s.staffRepo.GetByRoleID(roleID)
	if err != nil {
		return nil, err
	}

	suggestions := []models.Suggestion{}
	for i := range candidates {
		staff := &candidates[i]
		if !staff.AvailableDuring(from, to) {
			continue
		}

		assignments, err := s.assignmentRepo.GetByStaffOverlapping(staff.ID, from, to)
		if err != nil {
			return nil, err
		}
		report := DetectInAssignments(staff.ID, assignments, from, to)

		available := 100 - report.MaxTotal()
		if available < desiredAllocation {
			continue
		}

		suggestion := models.Suggestion{
			StaffID:             staff.ID,
			StaffName:           staff.Name,
			AvailableAllocation: available,
		}
		suggestion.MatchScore = s.weights.AvailabilityWeight * available

		if matched := matchedSkills(staff, skills); len(matched) > 0 {
			bonus := s.weights.SkillMatchBonus * float64(len(matched))
			if bonus > s.weights.MaxSkillBonus {
				bonus = s.weights.MaxSkillBonus
			}
			suggestion.MatchScore += bonus
			suggestion.Reasons = append(suggestion.Reasons,
				fmt.Sprintf("matches %d of %d requested skills", len(matched), len(skills)))
		}

		if load := meanLoad(report, from, to); load > 0 {
			suggestion.MatchScore -= s.weights.LoadPenaltyWeight * load
			suggestion.Reasons = append(suggestion.Reasons,
				fmt.Sprintf("already carrying %.0f%% average load", load))
		} else {
			suggestion.Reasons = append(suggestion.Reasons, "no existing allocation in the window")
		}

		suggestions = append(suggestions, suggestion)
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].MatchScore != suggestions[j].MatchScore {
			return suggestions[i].MatchScore > suggestions[j].MatchScore
		}
		return suggestions[i].StaffID < suggestions[j].StaffID
	})
	return suggestions, nil
}

func matchedSkills(staff *models.Staff, requested []string) []string {
	var matched []string
	for _, skill := range requested {
		if staff.HasSkill(skill) {
			matched = append(matched, skill)
		}
	}
	return matched
}

// meanLoad averages the staff member's summed allocation over every month
// the window touches, counting months without assignments as zero.
func meanLoad(report *models.ConflictReport, from, to time.Time) float64 {
	months := models.MonthsTouched(from, to)
	if len(months) == 0 {
		return 0
	}
	sum := 0.0
	for _, m := range months {
		sum += report.TotalFor(m)
	}
	return sum / float64(len(months))
}

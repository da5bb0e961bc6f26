package models

// Suggestion is one ranked candidate for staffing a role over a window.
type Suggestion struct {
	StaffID             string   `json:"staff_id"`
	StaffName           string   `json:"staff_name"`
	MatchScore          float64  `json:"match_score"`
	AvailableAllocation float64  `json:"available_allocation"`
	Reasons             []string `json:"reasons"`
}

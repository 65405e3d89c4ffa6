package models

// Instructor defines a teaching staff member based on the 'instructors' table.
// The supplemental hour fields are fixed per term and independent of which
// courses the instructor carries.
type Instructor struct {
	ID         int64  `json:"id" db:"id" example:"1"`
	Name       string `json:"name" db:"name" example:"Alemu Bekele"`
	Email      string `json:"email" db:"email"`
	School     string `json:"school" db:"school"`
	Department string `json:"department" db:"department"`

	HDPHours          float64 `json:"hdpHours" db:"hdp_hours"`
	PositionHours     float64 `json:"positionHours" db:"position_hours"`
	BatchAdvisorHours float64 `json:"batchAdvisorHours" db:"batch_advisor_hours"`

	// Relations (populated when needed)
	Courses []*Course `json:"courses,omitempty"`
}

package dto

// CreateInstructorRequest registers a teaching staff member.
type CreateInstructorRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	School     string `json:"school" binding:"required"`
	Department string `json:"department" binding:"required"`

	HDPHours          float64 `json:"hdpHours" binding:"min=0"`
	PositionHours     float64 `json:"positionHours" binding:"min=0"`
	BatchAdvisorHours float64 `json:"batchAdvisorHours" binding:"min=0"`
}

// UpdateInstructorRequest updates an instructor's descriptive fields and
// fixed supplemental hours.
type UpdateInstructorRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	School     string `json:"school" binding:"required"`
	Department string `json:"department" binding:"required"`

	HDPHours          float64 `json:"hdpHours" binding:"min=0"`
	PositionHours     float64 `json:"positionHours" binding:"min=0"`
	BatchAdvisorHours float64 `json:"batchAdvisorHours" binding:"min=0"`
}

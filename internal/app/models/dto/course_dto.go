package dto

import "github.com/bkassahun/courseload/internal/app/models"

// CreateCourseRequest carries the fields needed to register a course for a term.
type CreateCourseRequest struct {
	Code         string          `json:"code" binding:"required"`
	Title        string          `json:"title" binding:"required"`
	School       string          `json:"school" binding:"required"`
	Department   string          `json:"department" binding:"required"`
	AcademicYear int             `json:"academicYear" binding:"required,min=2000"`
	Semester     models.Semester `json:"semester" binding:"required"`

	LectureHours     float64 `json:"lectureHours" binding:"min=0"`
	LectureSections  int     `json:"lectureSections" binding:"min=0"`
	LabHours         float64 `json:"labHours" binding:"min=0"`
	LabSections      int     `json:"labSections" binding:"min=0"`
	TutorialHours    float64 `json:"tutorialHours" binding:"min=0"`
	TutorialSections int     `json:"tutorialSections" binding:"min=0"`
}

// UpdateCourseRequest carries updatable descriptive and hour-configuration fields.
type UpdateCourseRequest struct {
	Code         string          `json:"code" binding:"required"`
	Title        string          `json:"title" binding:"required"`
	School       string          `json:"school" binding:"required"`
	Department   string          `json:"department" binding:"required"`
	AcademicYear int             `json:"academicYear" binding:"required,min=2000"`
	Semester     models.Semester `json:"semester" binding:"required"`

	LectureHours     float64 `json:"lectureHours" binding:"min=0"`
	LectureSections  int     `json:"lectureSections" binding:"min=0"`
	LabHours         float64 `json:"labHours" binding:"min=0"`
	LabSections      int     `json:"labSections" binding:"min=0"`
	TutorialHours    float64 `json:"tutorialHours" binding:"min=0"`
	TutorialSections int     `json:"tutorialSections" binding:"min=0"`
}

// TransitionRequest applies one workflow action to a course. ExpectedStatus
// is the optimistic-concurrency guard: the transition fails with a conflict
// when the stored status no longer matches it.
type TransitionRequest struct {
	ExpectedStatus models.Status `json:"expectedStatus" binding:"required"`
	Action         models.Action `json:"action" binding:"required"`
	Remarks        string        `json:"remarks,omitempty"`
	// InstructorID is required for ASSIGN and ignored otherwise.
	InstructorID *int64 `json:"instructorId,omitempty"`
}

// BulkTransitionRequest applies one action to several of an instructor's
// courses in a single logical operation.
type BulkTransitionRequest struct {
	CourseIDs []int64       `json:"courseIds" binding:"required,min=1"`
	Action    models.Action `json:"action" binding:"required"`
	Remarks   string        `json:"remarks,omitempty"`
}

// BulkTransitionFailure reports one course that could not be transitioned.
type BulkTransitionFailure struct {
	CourseID int64     `json:"courseId"`
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
}

// BulkTransitionResponse reports per-course outcomes of a bulk operation.
// Succeeded courses stay transitioned even when others fail.
type BulkTransitionResponse struct {
	Succeeded []int64                 `json:"succeeded"`
	Failed    []BulkTransitionFailure `json:"failed"`
}

// CourseListResponse is a paginated list of courses.
type CourseListResponse struct {
	Courses    []*models.Course `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

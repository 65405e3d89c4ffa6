package models

// Course represents a single course-section assignment for one academic term.
type Course struct {
	ID           int64    `json:"id" db:"id"`
	Code         string   `json:"code" db:"code"`
	Title        string   `json:"title" db:"title"`
	School       string   `json:"school" db:"school"`
	Department   string   `json:"department" db:"department"`
	AcademicYear int      `json:"academicYear" db:"academic_year"`
	Semester     Semester `json:"semester" db:"semester"`

	// Hour configuration: hours per section and section counts per delivery type.
	LectureHours     float64 `json:"lectureHours" db:"lecture_hours"`
	LectureSections  int     `json:"lectureSections" db:"lecture_sections"`
	LabHours         float64 `json:"labHours" db:"lab_hours"`
	LabSections      int     `json:"labSections" db:"lab_sections"`
	TutorialHours    float64 `json:"tutorialHours" db:"tutorial_hours"`
	TutorialSections int     `json:"tutorialSections" db:"tutorial_sections"`

	// InstructorID is nil while the course is unassigned.
	InstructorID *int64 `json:"instructorId,omitempty" db:"instructor_id"`
	Status       Status `json:"status" db:"status"`

	// Relations (populated when needed)
	Instructor *Instructor     `json:"instructor,omitempty"`
	History    []ApprovalEntry `json:"approvalHistory,omitempty"`
}

package models

import "time"

// ApprovalEntry is one record in a course's append-only approval history.
// Entries are only ever added; no operation rewrites or deletes them.
type ApprovalEntry struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Role        RoleType  `json:"role" db:"role"`
	Action      Action    `json:"action" db:"action"`
	StatusAfter Status    `json:"statusAfter" db:"status_after"`
	Remarks     string    `json:"remarks,omitempty" db:"remarks"`
	ActorID     int64     `json:"actorId" db:"actor_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

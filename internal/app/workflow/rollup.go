package workflow

import "github.com/bkassahun/courseload/internal/app/models"

// RollUpStatus is an instructor-level status derived from all of that
// instructor's course statuses. It is computed for reporting only and never
// stored.
type RollUpStatus string

const (
	RollUpApproved RollUpStatus = "APPROVED"
	RollUpRejected RollUpStatus = "REJECTED"
	RollUpPending  RollUpStatus = "PENDING"
)

// progressRank orders statuses along the chain. Rejected statuses rank with
// the queue they fell back into: a DEAN_REJECTED course needs department-head
// re-approval, so it ranks with DEPT_HEAD_REVIEW.
var progressRank = map[models.Status]int{
	models.StatusUnassigned:       0,
	models.StatusDeptHeadRejected: 0,

	models.StatusDeptHeadReview: 1,
	models.StatusDeanRejected:   1,

	models.StatusDeptHeadApproved: 2,

	models.StatusDeanReview:           3,
	models.StatusViceDirectorRejected: 3,

	models.StatusDeanApproved: 4,

	models.StatusViceDirectorReview:         5,
	models.StatusScientificDirectorRejected: 5,

	models.StatusViceDirectorApproved: 6,

	models.StatusScientificDirectorReview: 7,
	models.StatusFinanceRejected:          7,

	models.StatusScientificDirectorApproved: 8,

	models.StatusFinanceReview: 9,

	models.StatusFinanceApproved: 10,
}

// ReachedApproval reports whether a status is at or beyond the given stage's
// approved status.
func ReachedApproval(status models.Status, stage Stage) bool {
	return progressRank[status] >= progressRank[stage.ApprovedStatus()]
}

// CountsTowardLoad reports whether a course in this status counts toward its
// instructor's total load. The content chain (through the scientific
// director) has signed off on these courses; finance-stage statuses,
// including FINANCE_REJECTED, do not change what is being taught.
func CountsTowardLoad(status models.Status) bool {
	switch status {
	case models.StatusScientificDirectorApproved,
		models.StatusFinanceReview,
		models.StatusFinanceApproved,
		models.StatusFinanceRejected:
		return true
	}
	return false
}

// RollUp computes the instructor-level status at a stage from all of the
// instructor's course statuses. The instructor is APPROVED only when every
// course has reached the stage's approval, REJECTED only when every course
// sits in that stage's rejected status, and PENDING for any mixture.
// FINANCE_REJECTED never counts as rejected: it flags a payment problem, not
// a content one. UNASSIGNED never counts as rejected either: a dept-head
// rejection returns the course to the pool, indistinguishable from never
// having been assigned, so it reads as pending.
func RollUp(statuses []models.Status, stage Stage) RollUpStatus {
	if len(statuses) == 0 {
		return RollUpPending
	}

	allApproved := true
	allRejected := true
	for _, s := range statuses {
		if !ReachedApproval(s, stage) {
			allApproved = false
		}
		if s != stage.RejectedStatus() || stage == StageFinance || s == models.StatusUnassigned {
			allRejected = false
		}
	}

	switch {
	case allApproved:
		return RollUpApproved
	case allRejected:
		return RollUpRejected
	default:
		return RollUpPending
	}
}

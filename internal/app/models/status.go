package models

// Status is the approval workflow state of a single course. The set is closed:
// a course is always in exactly one of these states and moves only along the
// edges defined in the workflow package.
type Status string

const (
	StatusUnassigned Status = "UNASSIGNED"

	StatusDeptHeadReview   Status = "DEPT_HEAD_REVIEW"
	StatusDeptHeadApproved Status = "DEPT_HEAD_APPROVED"
	StatusDeptHeadRejected Status = "DEPT_HEAD_REJECTED"

	StatusDeanReview   Status = "DEAN_REVIEW"
	StatusDeanApproved Status = "DEAN_APPROVED"
	StatusDeanRejected Status = "DEAN_REJECTED"

	StatusViceDirectorReview   Status = "VICE_DIRECTOR_REVIEW"
	StatusViceDirectorApproved Status = "VICE_DIRECTOR_APPROVED"
	StatusViceDirectorRejected Status = "VICE_DIRECTOR_REJECTED"

	StatusScientificDirectorReview   Status = "SCIENTIFIC_DIRECTOR_REVIEW"
	StatusScientificDirectorApproved Status = "SCIENTIFIC_DIRECTOR_APPROVED"
	StatusScientificDirectorRejected Status = "SCIENTIFIC_DIRECTOR_REJECTED"

	StatusFinanceReview   Status = "FINANCE_REVIEW"
	StatusFinanceApproved Status = "FINANCE_APPROVED"
	// StatusFinanceRejected signals a payment-stage problem, not a content
	// problem. It routes the course back to the scientific director and is
	// classified as pending in roll-ups despite its name.
	StatusFinanceRejected Status = "FINANCE_REJECTED"
)

// AllStatuses lists every legal status value.
var AllStatuses = []Status{
	StatusUnassigned,
	StatusDeptHeadReview, StatusDeptHeadApproved, StatusDeptHeadRejected,
	StatusDeanReview, StatusDeanApproved, StatusDeanRejected,
	StatusViceDirectorReview, StatusViceDirectorApproved, StatusViceDirectorRejected,
	StatusScientificDirectorReview, StatusScientificDirectorApproved, StatusScientificDirectorRejected,
	StatusFinanceReview, StatusFinanceApproved, StatusFinanceRejected,
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Action is a workflow verb applied to a course.
type Action string

const (
	ActionAssign      Action = "ASSIGN"
	ActionStartReview Action = "START_REVIEW"
	ActionApprove     Action = "APPROVE"
	ActionReject      Action = "REJECT"
	ActionReset       Action = "RESET"
)

// Valid reports whether a is a known workflow action.
func (a Action) Valid() bool {
	switch a {
	case ActionAssign, ActionStartReview, ActionApprove, ActionReject, ActionReset:
		return true
	}
	return false
}

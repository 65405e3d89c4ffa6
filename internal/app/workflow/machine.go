package workflow

import (
	"errors"
	"fmt"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

// Stage is one named step in the fixed five-role review chain.
type Stage int

const (
	StageDeptHead Stage = iota + 1
	StageDean
	StageViceDirector
	StageScientificDirector
	StageFinance
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageDeptHead:
		return "dept-head"
	case StageDean:
		return "dean"
	case StageViceDirector:
		return "vice-director"
	case StageScientificDirector:
		return "scientific-director"
	case StageFinance:
		return "finance"
	}
	return "unknown"
}

// ReviewerRole returns the role that reviews this stage.
func (s Stage) ReviewerRole() models.RoleType {
	switch s {
	case StageDeptHead:
		return models.RoleDeptHead
	case StageDean:
		return models.RoleDean
	case StageViceDirector:
		return models.RoleViceDirector
	case StageScientificDirector:
		return models.RoleScientificDirector
	case StageFinance:
		return models.RoleFinance
	}
	return ""
}

// ApprovedStatus returns the status a course takes when this stage approves it.
func (s Stage) ApprovedStatus() models.Status {
	switch s {
	case StageDeptHead:
		return models.StatusDeptHeadApproved
	case StageDean:
		return models.StatusDeanApproved
	case StageViceDirector:
		return models.StatusViceDirectorApproved
	case StageScientificDirector:
		return models.StatusScientificDirectorApproved
	case StageFinance:
		return models.StatusFinanceApproved
	}
	return ""
}

// RejectedStatus returns the status a course takes when this stage rejects it.
// Department-head rejection is the exception: it returns the course to
// UNASSIGNED rather than producing a rejected status.
func (s Stage) RejectedStatus() models.Status {
	switch s {
	case StageDeptHead:
		return models.StatusUnassigned
	case StageDean:
		return models.StatusDeanRejected
	case StageViceDirector:
		return models.StatusViceDirectorRejected
	case StageScientificDirector:
		return models.StatusScientificDirectorRejected
	case StageFinance:
		return models.StatusFinanceRejected
	}
	return ""
}

// edge identifies one legal transition: who may apply which action from which
// status. The table below is the single source of truth for the workflow; no
// code anywhere compares raw status strings.
type edge struct {
	from   models.Status
	action models.Action
	role   models.RoleType
}

// transitions maps every legal (status, action, role) triple to the resulting
// status. A stage role may approve or reject directly from the previous
// stage's approved status or after explicitly claiming the course with
// START_REVIEW; both entry paths carry identical permissions. A rejected
// status sits in the queue of the stage that produced the content, so e.g.
// DEAN_REJECTED is acted on by the department head.
var transitions = map[edge]models.Status{
	// Department head: assignment and first-stage review.
	{models.StatusUnassigned, models.ActionAssign, models.RoleDeptHead}:       models.StatusDeptHeadReview,
	{models.StatusDeptHeadRejected, models.ActionAssign, models.RoleDeptHead}: models.StatusDeptHeadReview,
	{models.StatusDeptHeadReview, models.ActionApprove, models.RoleDeptHead}:  models.StatusDeptHeadApproved,
	{models.StatusDeptHeadReview, models.ActionReject, models.RoleDeptHead}:   models.StatusUnassigned,
	{models.StatusDeanRejected, models.ActionApprove, models.RoleDeptHead}:    models.StatusDeptHeadApproved,
	{models.StatusDeanRejected, models.ActionReject, models.RoleDeptHead}:     models.StatusUnassigned,

	// Dean.
	{models.StatusDeptHeadApproved, models.ActionStartReview, models.RoleDean}: models.StatusDeanReview,
	{models.StatusDeptHeadApproved, models.ActionApprove, models.RoleDean}:     models.StatusDeanApproved,
	{models.StatusDeptHeadApproved, models.ActionReject, models.RoleDean}:      models.StatusDeanRejected,
	{models.StatusDeanReview, models.ActionApprove, models.RoleDean}:           models.StatusDeanApproved,
	{models.StatusDeanReview, models.ActionReject, models.RoleDean}:            models.StatusDeanRejected,
	{models.StatusViceDirectorRejected, models.ActionApprove, models.RoleDean}: models.StatusDeanApproved,
	{models.StatusViceDirectorRejected, models.ActionReject, models.RoleDean}:  models.StatusDeanRejected,

	// Vice scientific director.
	{models.StatusDeanApproved, models.ActionStartReview, models.RoleViceDirector}:               models.StatusViceDirectorReview,
	{models.StatusDeanApproved, models.ActionApprove, models.RoleViceDirector}:                   models.StatusViceDirectorApproved,
	{models.StatusDeanApproved, models.ActionReject, models.RoleViceDirector}:                    models.StatusViceDirectorRejected,
	{models.StatusViceDirectorReview, models.ActionApprove, models.RoleViceDirector}:             models.StatusViceDirectorApproved,
	{models.StatusViceDirectorReview, models.ActionReject, models.RoleViceDirector}:              models.StatusViceDirectorRejected,
	{models.StatusScientificDirectorRejected, models.ActionApprove, models.RoleViceDirector}:     models.StatusViceDirectorApproved,
	{models.StatusScientificDirectorRejected, models.ActionReject, models.RoleViceDirector}:      models.StatusViceDirectorRejected,

	// Scientific director.
	{models.StatusViceDirectorApproved, models.ActionStartReview, models.RoleScientificDirector}:     models.StatusScientificDirectorReview,
	{models.StatusViceDirectorApproved, models.ActionApprove, models.RoleScientificDirector}:         models.StatusScientificDirectorApproved,
	{models.StatusViceDirectorApproved, models.ActionReject, models.RoleScientificDirector}:          models.StatusScientificDirectorRejected,
	{models.StatusScientificDirectorReview, models.ActionApprove, models.RoleScientificDirector}:     models.StatusScientificDirectorApproved,
	{models.StatusScientificDirectorReview, models.ActionReject, models.RoleScientificDirector}:      models.StatusScientificDirectorRejected,
	{models.StatusFinanceRejected, models.ActionApprove, models.RoleScientificDirector}:              models.StatusScientificDirectorApproved,
	{models.StatusFinanceRejected, models.ActionReject, models.RoleScientificDirector}:               models.StatusScientificDirectorRejected,

	// Finance.
	{models.StatusScientificDirectorApproved, models.ActionStartReview, models.RoleFinance}: models.StatusFinanceReview,
	{models.StatusScientificDirectorApproved, models.ActionApprove, models.RoleFinance}:     models.StatusFinanceApproved,
	{models.StatusScientificDirectorApproved, models.ActionReject, models.RoleFinance}:      models.StatusFinanceRejected,
	{models.StatusFinanceReview, models.ActionApprove, models.RoleFinance}:                  models.StatusFinanceApproved,
	{models.StatusFinanceReview, models.ActionReject, models.RoleFinance}:                   models.StatusFinanceRejected,
}

// Apply resolves a single workflow transition. It returns the resulting
// status or an error: apperrors.ErrPermissionDenied when the role has no
// standing to act on the current status, apperrors.ErrIllegalTransition when
// the role could act on the status but not with this action, and
// apperrors.ErrValidationFailed for unknown inputs. Apply never mutates
// anything; persisting the result is the caller's job.
func Apply(current models.Status, action models.Action, role models.RoleType) (models.Status, error) {
	if !current.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", apperrors.ErrValidationFailed, current)
	}
	if !action.Valid() || action == models.ActionReset {
		return "", fmt.Errorf("%w: unknown action %q", apperrors.ErrValidationFailed, action)
	}
	if !role.Valid() {
		return "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidationFailed, role)
	}

	if next, ok := transitions[edge{current, action, role}]; ok {
		return next, nil
	}

	// Distinguish "wrong actor" from "right actor, wrong move".
	if !roleActsOn(role, current) {
		return "", fmt.Errorf("%w: role %s may not act while status is %s", apperrors.ErrPermissionDenied, role, current)
	}
	return "", fmt.Errorf("%w: action %s is not legal from status %s", apperrors.ErrIllegalTransition, action, current)
}

// roleActsOn reports whether any legal edge exists for the role at this status.
func roleActsOn(role models.RoleType, status models.Status) bool {
	for e := range transitions {
		if e.from == status && e.role == role {
			return true
		}
	}
	return false
}

// ErrNoStage is returned by StageOf for statuses outside the review chain.
var ErrNoStage = errors.New("status has no owning stage")

// StageOf returns the stage whose reviewer currently holds the course.
func StageOf(status models.Status) (Stage, error) {
	for e := range transitions {
		if e.from == status && e.action != models.ActionAssign {
			for _, st := range allStages {
				if st.ReviewerRole() == e.role {
					return st, nil
				}
			}
		}
	}
	if status == models.StatusUnassigned || status == models.StatusDeptHeadRejected {
		return StageDeptHead, nil
	}
	return 0, ErrNoStage
}

var allStages = []Stage{StageDeptHead, StageDean, StageViceDirector, StageScientificDirector, StageFinance}

// Stages returns the review chain in order.
func Stages() []Stage {
	return allStages
}

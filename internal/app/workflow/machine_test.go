package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkassahun/courseload/internal/app/models"
	"github.com/bkassahun/courseload/internal/pkg/apperrors"
)

func TestApplyFullApprovalChain(t *testing.T) {
	steps := []struct {
		action models.Action
		role   models.RoleType
		want   models.Status
	}{
		{models.ActionAssign, models.RoleDeptHead, models.StatusDeptHeadReview},
		{models.ActionApprove, models.RoleDeptHead, models.StatusDeptHeadApproved},
		{models.ActionApprove, models.RoleDean, models.StatusDeanApproved},
		{models.ActionApprove, models.RoleViceDirector, models.StatusViceDirectorApproved},
		{models.ActionApprove, models.RoleScientificDirector, models.StatusScientificDirectorApproved},
		{models.ActionApprove, models.RoleFinance, models.StatusFinanceApproved},
	}

	current := models.StatusUnassigned
	for _, step := range steps {
		next, err := Apply(current, step.action, step.role)
		require.NoError(t, err, "from %s via %s as %s", current, step.action, step.role)
		assert.Equal(t, step.want, next)
		current = next
	}
}

func TestApplyStartReviewClaims(t *testing.T) {
	next, err := Apply(models.StatusDeptHeadApproved, models.ActionStartReview, models.RoleDean)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeanReview, next)

	// Approving from the claimed review status lands in the same place as
	// approving directly.
	fromReview, err := Apply(models.StatusDeanReview, models.ActionApprove, models.RoleDean)
	require.NoError(t, err)
	direct, err2 := Apply(models.StatusDeptHeadApproved, models.ActionApprove, models.RoleDean)
	require.NoError(t, err2)
	assert.Equal(t, direct, fromReview)
}

func TestApplyRejectionRouting(t *testing.T) {
	// A dean rejection parks the course in the dean's rejected status.
	next, err := Apply(models.StatusDeanReview, models.ActionReject, models.RoleDean)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeanRejected, next)

	// The department head resolves it: re-approving resubmits to the dean.
	next, err = Apply(models.StatusDeanRejected, models.ActionApprove, models.RoleDeptHead)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeptHeadApproved, next)

	// A department-head rejection has no earlier stage to fall back to; the
	// course returns to the unassigned pool.
	next, err = Apply(models.StatusDeptHeadReview, models.ActionReject, models.RoleDeptHead)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnassigned, next)
}

func TestApplyFinanceRejectionReturnsToScientificDirector(t *testing.T) {
	next, err := Apply(models.StatusFinanceReview, models.ActionReject, models.RoleFinance)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinanceRejected, next)

	// The scientific director owns the fallback queue and may resubmit.
	next, err = Apply(models.StatusFinanceRejected, models.ActionApprove, models.RoleScientificDirector)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScientificDirectorApproved, next)

	// Finance itself cannot touch its own rejected status.
	_, err = Apply(models.StatusFinanceRejected, models.ActionApprove, models.RoleFinance)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestApplyWrongRole(t *testing.T) {
	_, err := Apply(models.StatusDeptHeadApproved, models.ActionApprove, models.RoleFinance)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = Apply(models.StatusUnassigned, models.ActionAssign, models.RoleDean)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// Stages cannot approve out of order even with a plausible-looking role.
	_, err = Apply(models.StatusDeanApproved, models.ActionApprove, models.RoleScientificDirector)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestApplyIllegalAction(t *testing.T) {
	// The dean owns DEPT_HEAD_APPROVED but cannot assign from it.
	_, err := Apply(models.StatusDeptHeadApproved, models.ActionAssign, models.RoleDean)
	assert.ErrorIs(t, err, apperrors.ErrIllegalTransition)

	// Terminal status: nobody holds FINANCE_APPROVED.
	_, err = Apply(models.StatusFinanceApproved, models.ActionApprove, models.RoleFinance)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestApplyRejectsUnknownInputs(t *testing.T) {
	_, err := Apply("HALF_APPROVED", models.ActionApprove, models.RoleDean)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = Apply(models.StatusDeanReview, "ESCALATE", models.RoleDean)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = Apply(models.StatusDeanReview, models.ActionApprove, "REGISTRAR")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// RESET moves through the semester-reset flow, never through Apply.
	_, err = Apply(models.StatusDeanReview, models.ActionReset, models.RoleAdmin)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestStageOf(t *testing.T) {
	cases := map[models.Status]Stage{
		models.StatusUnassigned:                 StageDeptHead,
		models.StatusDeptHeadReview:             StageDeptHead,
		models.StatusDeanRejected:               StageDeptHead,
		models.StatusDeptHeadApproved:           StageDean,
		models.StatusDeanReview:                 StageDean,
		models.StatusViceDirectorRejected:       StageDean,
		models.StatusFinanceRejected:            StageScientificDirector,
		models.StatusScientificDirectorApproved: StageFinance,
	}
	for status, want := range cases {
		got, err := StageOf(status)
		require.NoError(t, err, "status %s", status)
		assert.Equal(t, want, got, "status %s", status)
	}

	_, err := StageOf(models.StatusFinanceApproved)
	assert.ErrorIs(t, err, ErrNoStage)
}

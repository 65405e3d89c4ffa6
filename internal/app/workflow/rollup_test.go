package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkassahun/courseload/internal/app/models"
)

func TestCountsTowardLoad(t *testing.T) {
	counted := map[models.Status]bool{
		models.StatusScientificDirectorApproved: true,
		models.StatusFinanceReview:              true,
		models.StatusFinanceApproved:            true,
		models.StatusFinanceRejected:            true,
	}
	for _, status := range models.AllStatuses {
		assert.Equal(t, counted[status], CountsTowardLoad(status), "status %s", status)
	}
}

func TestReachedApproval(t *testing.T) {
	// A course in finance review has passed every content stage.
	for _, stage := range []Stage{StageDeptHead, StageDean, StageViceDirector, StageScientificDirector} {
		assert.True(t, ReachedApproval(models.StatusFinanceReview, stage), "stage %s", stage)
	}
	assert.False(t, ReachedApproval(models.StatusFinanceReview, StageFinance))

	// A dean rejection drops the course below the dean's approval again.
	assert.False(t, ReachedApproval(models.StatusDeanRejected, StageDean))
	assert.False(t, ReachedApproval(models.StatusDeanRejected, StageDeptHead))
}

func TestRollUpAllApproved(t *testing.T) {
	statuses := []models.Status{
		models.StatusFinanceApproved,
		models.StatusFinanceApproved,
	}
	for _, stage := range Stages() {
		assert.Equal(t, RollUpApproved, RollUp(statuses, stage), "stage %s", stage)
	}
}

func TestRollUpAllRejected(t *testing.T) {
	statuses := []models.Status{
		models.StatusDeanRejected,
		models.StatusDeanRejected,
	}
	assert.Equal(t, RollUpRejected, RollUp(statuses, StageDean))
	// For the department head the same courses are simply pending rework.
	assert.Equal(t, RollUpPending, RollUp(statuses, StageDeptHead))
}

func TestRollUpMixtureIsPending(t *testing.T) {
	statuses := []models.Status{
		models.StatusDeanApproved,
		models.StatusDeanRejected,
	}
	assert.Equal(t, RollUpPending, RollUp(statuses, StageDean))
	assert.Equal(t, RollUpApproved, RollUp(statuses[:1], StageDean))
}

func TestRollUpFinanceRejectedIsNeverRejected(t *testing.T) {
	statuses := []models.Status{
		models.StatusFinanceRejected,
		models.StatusFinanceRejected,
	}
	// A finance rejection flags a payment problem, not a content one: the
	// roll-up reports pending on every stage it touches, never rejected.
	assert.Equal(t, RollUpPending, RollUp(statuses, StageScientificDirector))
	assert.Equal(t, RollUpPending, RollUp(statuses, StageFinance))
	// The vice-director approval is untouched by the fallback.
	assert.Equal(t, RollUpApproved, RollUp(statuses, StageViceDirector))
}

func TestRollUpUnassignedIsNeverRejected(t *testing.T) {
	statuses := []models.Status{
		models.StatusUnassigned,
		models.StatusUnassigned,
	}
	// UNASSIGNED is the department head's rejected status, but a course in
	// the pool reads as pending, not rejected, at every stage.
	for _, stage := range Stages() {
		assert.Equal(t, RollUpPending, RollUp(statuses, stage), "stage %s", stage)
	}

	mixed := []models.Status{models.StatusUnassigned, models.StatusDeanRejected}
	assert.Equal(t, RollUpPending, RollUp(mixed, StageDean))
}

func TestRollUpEmptyIsPending(t *testing.T) {
	for _, stage := range Stages() {
		assert.Equal(t, RollUpPending, RollUp(nil, stage), "stage %s", stage)
	}
}

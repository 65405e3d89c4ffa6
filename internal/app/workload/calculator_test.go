package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bkassahun/courseload/internal/app/models"
)

func TestCourseLoadLectureOnly(t *testing.T) {
	c := &models.Course{LectureHours: 3, LectureSections: 2}
	assert.InDelta(t, 6.0, CourseLoad(c), 1e-9)
}

func TestCourseLoadPracticalDiscount(t *testing.T) {
	c := &models.Course{
		LectureHours: 3, LectureSections: 1,
		LabHours: 3, LabSections: 1,
		TutorialHours: 2, TutorialSections: 1,
	}
	// 3 + 3*0.67 + 2*0.67 = 6.35
	assert.InDelta(t, 6.35, CourseLoad(c), 1e-9)
}

func TestCourseLoadZeroAndMissingFields(t *testing.T) {
	assert.Zero(t, CourseLoad(&models.Course{}))
	assert.Zero(t, CourseLoad(nil))

	// Hours without sections contribute nothing.
	c := &models.Course{LectureHours: 3}
	assert.Zero(t, CourseLoad(c))
}

func TestCourseLoadClampsNegativeInputs(t *testing.T) {
	c := &models.Course{
		LectureHours: -3, LectureSections: 2,
		LabHours: 3, LabSections: -1,
	}
	assert.Zero(t, CourseLoad(c))
}

func TestSupplementalHoursTotal(t *testing.T) {
	s := SupplementalHours{HDP: 2, Position: 3, BatchAdvisor: 1}
	assert.InDelta(t, 6.0, s.Total(), 1e-9)

	clamped := SupplementalHours{HDP: -2, Position: 3}
	assert.InDelta(t, 3.0, clamped.Total(), 1e-9)
}

func TestTotalLoadSumsBeforeRounding(t *testing.T) {
	// Each lab contributes 0.67 unrounded; three of them sum to 2.01 before
	// the single final rounding.
	courses := []*models.Course{
		{LabHours: 1, LabSections: 1},
		{LabHours: 1, LabSections: 1},
		{LabHours: 1, LabSections: 1},
	}
	assert.InDelta(t, 2.01, TotalLoad(courses, SupplementalHours{}), 1e-9)
}

func TestTotalLoadWithSupplemental(t *testing.T) {
	courses := []*models.Course{
		{LectureHours: 3, LectureSections: 2},
		{LectureHours: 3, LectureSections: 1, LabHours: 3, LabSections: 1},
	}
	supplemental := SupplementalHours{HDP: 2, BatchAdvisor: 1}
	// 6 + (3 + 2.01) + 3 = 14.01
	assert.InDelta(t, 14.01, TotalLoad(courses, supplemental), 1e-9)
}

func TestOverload(t *testing.T) {
	assert.Zero(t, Overload(0))
	assert.Zero(t, Overload(11.5))
	assert.Zero(t, Overload(StandardFullLoad))
	assert.InDelta(t, 3.0, Overload(15), 1e-9)
	assert.InDelta(t, 2.01, Overload(14.01), 1e-9)
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 2.34, Round2(2.341), 1e-9)
	assert.InDelta(t, 2.35, Round2(2.349), 1e-9)
	assert.InDelta(t, -2.35, Round2(-2.349), 1e-9)
	assert.InDelta(t, 0.67, Round2(0.67), 1e-9)
}

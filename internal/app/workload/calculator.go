// Package workload computes teaching load units from course hour
// configurations and instructor supplemental hours. Everything here is pure:
// no storage, no clock, no configuration.
package workload

import (
	"math"

	"github.com/bkassahun/courseload/internal/app/models"
)

const (
	// StandardFullLoad is the load a full-time instructor carries without
	// overload pay. Load above it is overload.
	StandardFullLoad = 12.0

	// PracticalFactor discounts lab and tutorial contact hours relative to
	// lecture hours. Fixed domain constant, not configurable.
	PracticalFactor = 0.67
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CourseLoad returns the unrounded load of a single course. Missing fields
// are zero values and simply contribute nothing; negative inputs are clamped
// to zero rather than producing negative load.
func CourseLoad(c *models.Course) float64 {
	if c == nil {
		return 0
	}
	lecture := nonNegative(c.LectureHours) * float64(nonNegativeInt(c.LectureSections))
	lab := nonNegative(c.LabHours) * PracticalFactor * float64(nonNegativeInt(c.LabSections))
	tutorial := nonNegative(c.TutorialHours) * PracticalFactor * float64(nonNegativeInt(c.TutorialSections))
	return lecture + lab + tutorial
}

// SupplementalHours are an instructor's fixed per-term hours that count
// toward load independently of courses.
type SupplementalHours struct {
	HDP          float64
	Position     float64
	BatchAdvisor float64
}

// Total returns the sum of the supplemental components, clamped at zero each.
func (s SupplementalHours) Total() float64 {
	return nonNegative(s.HDP) + nonNegative(s.Position) + nonNegative(s.BatchAdvisor)
}

// TotalLoad returns an instructor's total load: the sum of the per-course
// loads plus supplemental hours, rounded to two decimals at the end. Course
// loads are summed before rounding; intermediate values are never rounded.
func TotalLoad(courses []*models.Course, supplemental SupplementalHours) float64 {
	sum := 0.0
	for _, c := range courses {
		sum += CourseLoad(c)
	}
	return Round2(sum + supplemental.Total())
}

// Overload returns the load in excess of the standard full load. There is no
// negative overload: anything at or below the threshold is zero.
func Overload(totalLoad float64) float64 {
	if totalLoad <= StandardFullLoad {
		return 0
	}
	return Round2(totalLoad - StandardFullLoad)
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

func nonNegativeInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

package models

import "time"

// Payment is the finance-department record for one instructor in one
// (academicYear, semester). There is at most one row per triple; repeated
// saves update the existing row.
type Payment struct {
	ID           int64    `json:"id" db:"id"`
	InstructorID int64    `json:"instructorId" db:"instructor_id"`
	AcademicYear int      `json:"academicYear" db:"academic_year"`
	Semester     Semester `json:"semester" db:"semester"`

	BaseAmount        float64 `json:"baseAmount" db:"base_amount"`
	HDPAllowance      float64 `json:"hdpAllowance" db:"hdp_allowance"`
	PositionAllowance float64 `json:"positionAllowance" db:"position_allowance"`
	AdvisorAllowance  float64 `json:"advisorAllowance" db:"advisor_allowance"`
	OverloadAmount    float64 `json:"overloadAmount" db:"overload_amount"`
	TotalAmount       float64 `json:"totalAmount" db:"total_amount"`
	Remarks           string  `json:"remarks,omitempty" db:"remarks"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ComponentSum returns the sum of the payment's component fields. For the
// manual itemized path TotalAmount is exactly this sum.
func (p *Payment) ComponentSum() float64 {
	return p.BaseAmount + p.HDPAllowance + p.PositionAllowance + p.AdvisorAllowance + p.OverloadAmount
}

// FinanceRun is the rate context for one term's finance session: the single
// per-load-unit rate every payment in that run must share.
type FinanceRun struct {
	ID           int64     `json:"id" db:"id"`
	AcademicYear int       `json:"academicYear" db:"academic_year"`
	Semester     Semester  `json:"semester" db:"semester"`
	Rate         float64   `json:"rate" db:"rate"`
	StartedBy    int64     `json:"startedBy" db:"started_by"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

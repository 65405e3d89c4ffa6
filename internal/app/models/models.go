package models

// RoleType defines the user role type. Each reviewing role owns exactly one
// stage of the approval chain; ADMIN owns privileged operations such as the
// semester reset.
type RoleType string

const (
	RoleDeptHead           RoleType = "DEPT_HEAD"
	RoleDean               RoleType = "DEAN"
	RoleViceDirector       RoleType = "VICE_DIRECTOR"
	RoleScientificDirector RoleType = "SCIENTIFIC_DIRECTOR"
	RoleFinance            RoleType = "FINANCE"
	RoleAdmin              RoleType = "ADMIN"
)

// Valid reports whether r is a known role.
func (r RoleType) Valid() bool {
	switch r {
	case RoleDeptHead, RoleDean, RoleViceDirector, RoleScientificDirector, RoleFinance, RoleAdmin:
		return true
	}
	return false
}

// Semester represents an academic term half.
type Semester string

// Semester constants
const (
	SemesterFirst  Semester = "FIRST"
	SemesterSecond Semester = "SECOND"
)

// Valid reports whether s is a known semester.
func (s Semester) Valid() bool {
	return s == SemesterFirst || s == SemesterSecond
}

package domain

import "fmt"

// TeacherRole represents the school role of a staff member
type TeacherRole string

const (
	RoleMentor         TeacherRole = "Mentor"
	RoleTeamLeader     TeacherRole = "TeamLeader"
	RoleDean           TeacherRole = "Dean"
	RoleTeacherSubject TeacherRole = "TeacherSubject"
)

// ParseTeacherRole validates a wire-level role string
func ParseTeacherRole(s string) (TeacherRole, error) {
	switch TeacherRole(s) {
	case RoleMentor:
		return RoleMentor, nil
	case RoleTeamLeader:
		return RoleTeamLeader, nil
	case RoleDean:
		return RoleDean, nil
	case RoleTeacherSubject:
		return RoleTeacherSubject, nil
	default:
		return "", fmt.Errorf("unknown teacher role %q", s)
	}
}

// EligibleRoles lists the roles whose holders may be booked by parents
var EligibleRoles = []TeacherRole{
	RoleMentor,
	RoleTeamLeader,
	RoleDean,
	RoleTeacherSubject,
}

// Teacher labels shown to parents, derived from the class association
const (
	LabelPrimaryMentor  = "Primary Mentor"
	LabelSubjectTeacher = "Subject Teacher"
)

// Student is the read-side projection of a student resolved from an access code
type Student struct {
	ID         int64
	Name       string
	ClassID    int64
	ClassName  string
	SchoolYear string
}

// EligibleTeacher is one bookable teacher for a student, pre-joined with the
// class association that carries the primary-mentor flag
type EligibleTeacher struct {
	TeacherID       int64
	Name            string
	Role            TeacherRole
	IsPrimaryMentor bool
	Label           string
}

// AccessCodeContext is the scoping context derived from a parent access code:
// the student plus the ordered list of teachers the parent may book
type AccessCodeContext struct {
	Student          Student
	EligibleTeachers []EligibleTeacher
}

// IsTeacherEligible returns true if the teacher is in the eligible set
func (c *AccessCodeContext) IsTeacherEligible(teacherID int64) bool {
	for _, t := range c.EligibleTeachers {
		if t.TeacherID == teacherID {
			return true
		}
	}
	return false
}

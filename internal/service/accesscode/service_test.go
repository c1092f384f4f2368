package accesscode

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	studentRepo "github.com/m04kA/PTC-AppointmentService/internal/infra/storage/student"
)

type fakeStudentRepo struct {
	students map[string]*domain.Student
	teachers []*domain.EligibleTeacher
}

func (f *fakeStudentRepo) GetByAccessCode(_ context.Context, code string) (*domain.Student, error) {
	student, ok := f.students[code]
	if !ok {
		return nil, studentRepo.ErrStudentNotFound
	}
	return student, nil
}

func (f *fakeStudentRepo) ListEligibleTeachers(_ context.Context, _ int64, _ string) ([]*domain.EligibleTeacher, error) {
	return f.teachers, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestResolve_OrdersPrimaryMentorFirst(t *testing.T) {
	repo := &fakeStudentRepo{
		students: map[string]*domain.Student{
			"K7KQ2M9X": {ID: 11, Name: "Noor", ClassID: 3, ClassName: "2B", SchoolYear: "2024-2025"},
		},
		// Repository order is alphabetical, the service moves mentors up front.
		teachers: []*domain.EligibleTeacher{
			{TeacherID: 2, Name: "Amir", Role: domain.RoleTeacherSubject},
			{TeacherID: 1, Name: "Bas", Role: domain.RoleMentor, IsPrimaryMentor: true},
			{TeacherID: 3, Name: "Zara", Role: domain.RoleTeacherSubject},
		},
	}

	svc := NewService(repo, nopLogger{})

	result, err := svc.Resolve(context.Background(), "K7KQ2M9X")
	require.NoError(t, err)

	require.Len(t, result.EligibleTeachers, 3)
	assert.Equal(t, "Bas", result.EligibleTeachers[0].Name)
	assert.Equal(t, "Amir", result.EligibleTeachers[1].Name)
	assert.Equal(t, "Zara", result.EligibleTeachers[2].Name)

	assert.Equal(t, domain.LabelPrimaryMentor, result.EligibleTeachers[0].Label)
	assert.Equal(t, domain.LabelSubjectTeacher, result.EligibleTeachers[1].Label)
	assert.Equal(t, domain.LabelSubjectTeacher, result.EligibleTeachers[2].Label)

	assert.Equal(t, int64(11), result.Student.ID)
}

func TestResolve_MultipleMentorsStayAlphabetical(t *testing.T) {
	repo := &fakeStudentRepo{
		students: map[string]*domain.Student{
			"CODE1234": {ID: 1, ClassID: 1, SchoolYear: "2024-2025"},
		},
		teachers: []*domain.EligibleTeacher{
			{TeacherID: 4, Name: "Anne", Role: domain.RoleTeacherSubject},
			{TeacherID: 5, Name: "Daan", Role: domain.RoleMentor, IsPrimaryMentor: true},
			{TeacherID: 6, Name: "Bram", Role: domain.RoleMentor, IsPrimaryMentor: true},
		},
	}

	svc := NewService(repo, nopLogger{})

	result, err := svc.Resolve(context.Background(), "CODE1234")
	require.NoError(t, err)

	names := make([]string, 0, len(result.EligibleTeachers))
	for _, teacher := range result.EligibleTeachers {
		names = append(names, teacher.Name)
	}
	assert.Equal(t, []string{"Bram", "Daan", "Anne"}, names)
}

func TestResolve_UnknownCode(t *testing.T) {
	svc := NewService(&fakeStudentRepo{students: map[string]*domain.Student{}}, nopLogger{})

	_, err := svc.Resolve(context.Background(), "NOPE0000")
	assert.ErrorIs(t, err, ErrAccessCodeNotFound)
}

func TestResolve_EmptyCode(t *testing.T) {
	svc := NewService(&fakeStudentRepo{}, nopLogger{})

	_, err := svc.Resolve(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

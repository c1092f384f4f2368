package resolve_access_code

import (
	"github.com/m04kA/PTC-AppointmentService/internal/domain"
)

// ResolveRequest HTTP request model
type ResolveRequest struct {
	AccessCode string `json:"access_code"`
}

// StudentResponse данные студента по коду доступа
type StudentResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ClassID    int64  `json:"class_id"`
	ClassName  string `json:"class_name"`
	SchoolYear string `json:"school_year"`
}

// EligibleTeacherResponse учитель, доступный для записи
type EligibleTeacherResponse struct {
	TeacherID       int64  `json:"teacher_id"`
	Name            string `json:"name"`
	Role            string `json:"role"`
	IsPrimaryMentor bool   `json:"is_primary_mentor"`
	Label           string `json:"label"`
}

// ResolveResponse HTTP response model
type ResolveResponse struct {
	Student          StudentResponse           `json:"student"`
	EligibleTeachers []EligibleTeacherResponse `json:"eligible_teachers"`
}

// FromDomainContext конвертирует доменный контекст кода доступа в HTTP response
func FromDomainContext(access *domain.AccessCodeContext) *ResolveResponse {
	teachers := make([]EligibleTeacherResponse, 0, len(access.EligibleTeachers))
	for _, teacher := range access.EligibleTeachers {
		teachers = append(teachers, EligibleTeacherResponse{
			TeacherID:       teacher.TeacherID,
			Name:            teacher.Name,
			Role:            string(teacher.Role),
			IsPrimaryMentor: teacher.IsPrimaryMentor,
			Label:           teacher.Label,
		})
	}

	return &ResolveResponse{
		Student: StudentResponse{
			ID:         access.Student.ID,
			Name:       access.Student.Name,
			ClassID:    access.Student.ClassID,
			ClassName:  access.Student.ClassName,
			SchoolYear: access.Student.SchoolYear,
		},
		EligibleTeachers: teachers,
	}
}

package accesscode

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/PTC-AppointmentService/internal/domain"
	studentRepo "github.com/m04kA/PTC-AppointmentService/internal/infra/storage/student"
)

// Service сервис разрешения родительских кодов доступа
type Service struct {
	studentRepo StudentRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса кодов доступа
func NewService(studentRepo StudentRepository, logger Logger) *Service {
	return &Service{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

// Resolve разрешает код доступа в контекст {студент, доступные учителя}
// Порядок учителей детерминированный: сначала основные наставники,
// остальные по алфавиту - UI и тесты полагаются на точный порядок
func (s *Service) Resolve(ctx context.Context, accessCode string) (*domain.AccessCodeContext, error) {
	code := strings.TrimSpace(accessCode)
	if code == "" {
		return nil, fmt.Errorf("%w: access code is required", ErrInvalidInput)
	}

	student, err := s.studentRepo.GetByAccessCode(ctx, code)
	if err != nil {
		if errors.Is(err, studentRepo.ErrStudentNotFound) {
			s.logger.Warn("Resolve: access code not recognized")
			return nil, ErrAccessCodeNotFound
		}
		s.logger.Error("Resolve: failed to look up access code: %v", err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	teachers, err := s.studentRepo.ListEligibleTeachers(ctx, student.ClassID, student.SchoolYear)
	if err != nil {
		s.logger.Error("Resolve: failed to list eligible teachers for class=%d year=%s: %v",
			student.ClassID, student.SchoolYear, err)
		return nil, fmt.Errorf("%w: Resolve - repository error: %v", ErrInternal, err)
	}

	ordered := orderEligibleTeachers(teachers)

	s.logger.Info("Resolve: resolved student=%d class=%d with %d eligible teachers",
		student.ID, student.ClassID, len(ordered))

	return &domain.AccessCodeContext{
		Student:          *student,
		EligibleTeachers: ordered,
	}, nil
}

// orderEligibleTeachers применяет политику порядка выдачи: основные наставники
// первыми, далее по имени. Сортировка стабильная, результат детерминированный
func orderEligibleTeachers(teachers []*domain.EligibleTeacher) []domain.EligibleTeacher {
	ordered := make([]domain.EligibleTeacher, 0, len(teachers))
	for _, t := range teachers {
		teacher := *t
		if teacher.IsPrimaryMentor {
			teacher.Label = domain.LabelPrimaryMentor
		} else {
			teacher.Label = domain.LabelSubjectTeacher
		}
		ordered = append(ordered, teacher)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].IsPrimaryMentor != ordered[j].IsPrimaryMentor {
			return ordered[i].IsPrimaryMentor
		}
		return ordered[i].Name < ordered[j].Name
	})

	return ordered
}

package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AymenBoubertakh/IDL/internal/models"
	"github.com/AymenBoubertakh/IDL/internal/repository"
)

// ErrStudentNotFound is returned when a student lookup misses.
var ErrStudentNotFound = errors.New("student not found")

// StudentService manages student records.
type StudentService interface {
	List(ctx context.Context) ([]models.Student, error)
	Get(ctx context.Context, id int64) (*models.Student, error)
	GetByEmail(ctx context.Context, email string) (*models.Student, error)
	ListByUniversityID(ctx context.Context, universityID int64) ([]models.Student, error)
	ListByUniversityName(ctx context.Context, universityName string) ([]models.Student, error)
	Search(ctx context.Context, keyword string) ([]models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, id int64, student *models.Student) (*models.Student, error)
	AssociateUniversity(ctx context.Context, studentID, universityID int64) (*models.Student, error)
	Delete(ctx context.Context, id int64) error
}

type studentService struct {
	repo           repository.StudentRepository
	universityRepo repository.UniversityRepository
}

// NewStudentService creates a new StudentService instance.
func NewStudentService(repo repository.StudentRepository, universityRepo repository.UniversityRepository) StudentService {
	return &studentService{repo: repo, universityRepo: universityRepo}
}

func (s *studentService) List(ctx context.Context) ([]models.Student, error) {
	return s.repo.FindAll(ctx)
}

func (s *studentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (s *studentService) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	student, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (s *studentService) ListByUniversityID(ctx context.Context, universityID int64) ([]models.Student, error) {
	return s.repo.FindByUniversityID(ctx, universityID)
}

func (s *studentService) ListByUniversityName(ctx context.Context, universityName string) ([]models.Student, error) {
	return s.repo.FindByUniversityName(ctx, universityName)
}

func (s *studentService) Search(ctx context.Context, keyword string) ([]models.Student, error) {
	return s.repo.Search(ctx, keyword)
}

func (s *studentService) Create(ctx context.Context, student *models.Student) error {
	return s.repo.Create(ctx, student)
}

func (s *studentService) Update(ctx context.Context, id int64, student *models.Student) (*models.Student, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.FirstName = student.FirstName
	existing.LastName = student.LastName
	existing.Email = student.Email
	existing.UniversityID = student.UniversityID

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *studentService) AssociateUniversity(ctx context.Context, studentID, universityID int64) (*models.Student, error) {
	student, err := s.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if _, err := s.universityRepo.FindByID(ctx, universityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUniversityNotFound
		}
		return nil, err
	}

	student.UniversityID = &universityID
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	return nil
}

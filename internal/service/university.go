package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/AymenBoubertakh/IDL/internal/models"
	"github.com/AymenBoubertakh/IDL/internal/repository"
)

// ErrUniversityNotFound is returned when a university lookup misses.
var ErrUniversityNotFound = errors.New("university not found")

// UniversityService manages university records.
type UniversityService interface {
	List(ctx context.Context) ([]models.University, error)
	Get(ctx context.Context, id int64) (*models.University, error)
	ListByLocation(ctx context.Context, location string) ([]models.University, error)
	SearchByName(ctx context.Context, name string) ([]models.University, error)
	Create(ctx context.Context, university *models.University) error
	Update(ctx context.Context, id int64, university *models.University) (*models.University, error)
	Delete(ctx context.Context, id int64) error
}

type universityService struct {
	repo repository.UniversityRepository
}

// NewUniversityService creates a new UniversityService instance.
func NewUniversityService(repo repository.UniversityRepository) UniversityService {
	return &universityService{repo: repo}
}

func (s *universityService) List(ctx context.Context) ([]models.University, error) {
	return s.repo.FindAll(ctx)
}

func (s *universityService) Get(ctx context.Context, id int64) (*models.University, error) {
	university, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUniversityNotFound
		}
		return nil, err
	}
	return university, nil
}

func (s *universityService) ListByLocation(ctx context.Context, location string) ([]models.University, error) {
	return s.repo.FindByLocation(ctx, location)
}

func (s *universityService) SearchByName(ctx context.Context, name string) ([]models.University, error) {
	return s.repo.SearchByName(ctx, name)
}

func (s *universityService) Create(ctx context.Context, university *models.University) error {
	return s.repo.Create(ctx, university)
}

func (s *universityService) Update(ctx context.Context, id int64, university *models.University) (*models.University, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = university.Name
	existing.Location = university.Location

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *universityService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUniversityNotFound
		}
		return err
	}
	return nil
}

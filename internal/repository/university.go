package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/AymenBoubertakh/IDL/internal/models"
)

// UniversityRepository defines the interface for university data operations.
type UniversityRepository interface {
	FindAll(ctx context.Context) ([]models.University, error)
	FindByID(ctx context.Context, id int64) (*models.University, error)
	FindByLocation(ctx context.Context, location string) ([]models.University, error)
	SearchByName(ctx context.Context, name string) ([]models.University, error)
	Create(ctx context.Context, university *models.University) error
	Update(ctx context.Context, university *models.University) error
	Delete(ctx context.Context, id int64) error
}

type universityRepository struct {
	db *gorm.DB
}

// NewUniversityRepository creates a new UniversityRepository instance.
func NewUniversityRepository(db *gorm.DB) UniversityRepository {
	return &universityRepository{db: db}
}

func (r *universityRepository) FindAll(ctx context.Context) ([]models.University, error) {
	var universities []models.University
	if err := r.db.WithContext(ctx).Find(&universities).Error; err != nil {
		return nil, fmt.Errorf("failed to list universities: %w", err)
	}
	return universities, nil
}

func (r *universityRepository) FindByID(ctx context.Context, id int64) (*models.University, error) {
	var university models.University
	if err := r.db.WithContext(ctx).First(&university, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find university by id %d: %w", id, err)
	}
	return &university, nil
}

func (r *universityRepository) FindByLocation(ctx context.Context, location string) ([]models.University, error) {
	var universities []models.University
	err := r.db.WithContext(ctx).Where("location = ?", location).Find(&universities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list universities in %s: %w", location, err)
	}
	return universities, nil
}

func (r *universityRepository) SearchByName(ctx context.Context, name string) ([]models.University, error) {
	var universities []models.University
	err := r.db.WithContext(ctx).Where("name ILIKE ?", "%"+name+"%").Find(&universities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search universities with name %s: %w", name, err)
	}
	return universities, nil
}

func (r *universityRepository) Create(ctx context.Context, university *models.University) error {
	if err := r.db.WithContext(ctx).Create(university).Error; err != nil {
		return fmt.Errorf("failed to create university: %w", err)
	}
	return nil
}

func (r *universityRepository) Update(ctx context.Context, university *models.University) error {
	if err := r.db.WithContext(ctx).Save(university).Error; err != nil {
		return fmt.Errorf("failed to update university id %d: %w", university.ID, err)
	}
	return nil
}

func (r *universityRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.University{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete university id %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete university id %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

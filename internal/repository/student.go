package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/AymenBoubertakh/IDL/internal/models"
)

// StudentRepository defines the interface for student data operations.
type StudentRepository interface {
	FindAll(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	FindByUniversityID(ctx context.Context, universityID int64) ([]models.Student, error)
	FindByUniversityName(ctx context.Context, universityName string) ([]models.Student, error)
	Search(ctx context.Context, keyword string) ([]models.Student, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new StudentRepository instance.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) FindAll(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

func (r *studentRepository) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, fmt.Errorf("failed to find student by id %d: %w", id, err)
	}
	return &student, nil
}

func (r *studentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&student).Error; err != nil {
		return nil, fmt.Errorf("failed to find student by email %s: %w", email, err)
	}
	return &student, nil
}

func (r *studentRepository) FindByUniversityID(ctx context.Context, universityID int64) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).Where("university_id = ?", universityID).Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list students for university %d: %w", universityID, err)
	}
	return students, nil
}

func (r *studentRepository) FindByUniversityName(ctx context.Context, universityName string) ([]models.Student, error) {
	var students []models.Student
	err := r.db.WithContext(ctx).
		Joins("JOIN universities ON universities.id = students.university_id").
		Where("universities.name = ?", universityName).
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list students for university %s: %w", universityName, err)
	}
	return students, nil
}

func (r *studentRepository) Search(ctx context.Context, keyword string) ([]models.Student, error) {
	var students []models.Student
	pattern := "%" + keyword + "%"
	err := r.db.WithContext(ctx).
		Where("first_name ILIKE ? OR last_name ILIKE ? OR email ILIKE ?", pattern, pattern, pattern).
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search students with keyword %s: %w", keyword, err)
	}
	return students, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Save(student).Error; err != nil {
		return fmt.Errorf("failed to update student id %d: %w", student.ID, err)
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Student{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete student id %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to delete student id %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}

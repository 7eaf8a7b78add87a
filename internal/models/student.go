// Package models contains data models shared by the services.
package models

import "time"

// Student represents an enrolled student managed by the student service.
type Student struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	FirstName    string    `json:"first_name" gorm:"not null"`
	LastName     string    `json:"last_name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	UniversityID *int64    `json:"university_id" gorm:"column:university_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for the Student model.
func (Student) TableName() string {
	return "students"
}

// University represents an institution students belong to.
type University struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for the University model.
func (University) TableName() string {
	return "universities"
}

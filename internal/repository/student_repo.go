package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentora-labs/mentora-api/internal/models"
)

// StudentRepository reads the enrollment roster. Enrollment writes belong to
// the external enrollment system; Create exists only for seeding.
type StudentRepository interface {
	ListNamesByClassroom(ctx context.Context, classroomID string) ([]string, error)
	Create(ctx context.Context, student *models.Student) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository instantiates a GORM-backed roster reader.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) ListNamesByClassroom(ctx context.Context, classroomID string) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("classroom_id = ?", classroomID).
		Order("created_at ASC").
		Pluck("name", &names).Error
	if err != nil {
		return nil, err
	}

	return names, nil
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

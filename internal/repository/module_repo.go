package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentora-labs/mentora-api/internal/models"
)

// ModuleRepository exposes the read-only course content hierarchy owned by
// the authoring system.
type ModuleRepository interface {
	List(ctx context.Context) ([]models.Module, error)
	GetByID(ctx context.Context, id string) (models.Module, error)
}

type moduleRepository struct {
	db *gorm.DB
}

// NewModuleRepository instantiates a GORM-backed module reader.
func NewModuleRepository(db *gorm.DB) ModuleRepository {
	return &moduleRepository{db: db}
}

func (r *moduleRepository) List(ctx context.Context) ([]models.Module, error) {
	var modules []models.Module
	if err := r.db.WithContext(ctx).Preload("Topics").Order("id ASC").Find(&modules).Error; err != nil {
		return nil, err
	}

	return modules, nil
}

func (r *moduleRepository) GetByID(ctx context.Context, id string) (models.Module, error) {
	var module models.Module
	if err := r.db.WithContext(ctx).Preload("Topics").First(&module, "id = ?", id).Error; err != nil {
		return models.Module{}, err
	}

	return module, nil
}

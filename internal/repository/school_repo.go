package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Rameezuddinmohammed/proxilearn-mvp/internal/models"
)

// SchoolRepository defines persistence operations for schools.
type SchoolRepository interface {
	CreateBatch(ctx context.Context, schools []models.School) error
	List(ctx context.Context, limit int) ([]models.School, error)
}

type schoolRepository struct {
	db *gorm.DB
}

// NewSchoolRepository instantiates a GORM-backed repository.
func NewSchoolRepository(db *gorm.DB) SchoolRepository {
	return &schoolRepository{db: db}
}

func (r *schoolRepository) CreateBatch(ctx context.Context, schools []models.School) error {
	if len(schools) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&schools).Error
}

func (r *schoolRepository) List(ctx context.Context, limit int) ([]models.School, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var schools []models.School
	if err := query.Find(&schools).Error; err != nil {
		return nil, err
	}

	return schools, nil
}

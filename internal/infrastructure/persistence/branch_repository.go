package persistence

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/partner"
	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBranchRepository implements BranchRepository using GORM
type GormBranchRepository struct {
	db *gorm.DB
}

// NewGormBranchRepository creates a new GormBranchRepository
func NewGormBranchRepository(db *gorm.DB) *GormBranchRepository {
	return &GormBranchRepository{db: db}
}

// FindByID finds a branch by its ID
func (r *GormBranchRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Branch, error) {
	var branch partner.Branch
	if err := r.db.WithContext(ctx).First(&branch, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &branch, nil
}

// FindByCode finds a branch by its unique code
func (r *GormBranchRepository) FindByCode(ctx context.Context, code string) (*partner.Branch, error) {
	var branch partner.Branch
	if err := r.db.WithContext(ctx).First(&branch, "code = ?", code).Error; err != nil {
		return nil, translateError(err)
	}
	return &branch, nil
}

// FindAll finds branches matching the filter
func (r *GormBranchRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Branch, error) {
	var branches []partner.Branch
	query := applyPagination(
		r.db.WithContext(ctx).Model(&partner.Branch{}),
		filter,
		PartnerSortFields,
	)

	if err := query.Find(&branches).Error; err != nil {
		return nil, translateError(err)
	}
	return branches, nil
}

// Save creates or updates a branch
func (r *GormBranchRepository) Save(ctx context.Context, branch *partner.Branch) error {
	if err := r.db.WithContext(ctx).Save(branch).Error; err != nil {
		return translateError(err)
	}
	return nil
}

// Ensure GormBranchRepository implements BranchRepository
var _ partner.BranchRepository = (*GormBranchRepository)(nil)

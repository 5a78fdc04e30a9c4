package partner

import (
	"context"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Branch represents a business location. Its short code is embedded
// in document numbers (e.g. INV-MAIN-000042).
type Branch struct {
	shared.BaseAggregateRoot
	Code    string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:varchar(500)"`
	Active  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Branch) TableName() string {
	return "branches"
}

// NewBranch creates a new branch
func NewBranch(code, name string) (*Branch, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_CODE", "Branch code cannot be empty")
	}
	if len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_BRANCH_CODE", "Branch code cannot exceed 20 characters")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_BRANCH_NAME", "Branch name cannot be empty")
	}

	return &Branch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Active:            true,
	}, nil
}

// Deactivate marks the branch as closed
func (b *Branch) Deactivate() {
	b.Active = false
	b.Touch()
	b.IncrementVersion()
}

// BranchRepository defines persistence operations for branches
type BranchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	FindByCode(ctx context.Context, code string) (*Branch, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Branch, error)
	Save(ctx context.Context, branch *Branch) error
}

package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/bizsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DocumentType identifies the kind of document a number is issued for
type DocumentType string

const (
	DocumentTypeInvoice       DocumentType = "INVOICE"
	DocumentTypePurchaseOrder DocumentType = "PURCHASE_ORDER"
	DocumentTypeAdjustment    DocumentType = "ADJUSTMENT"
)

// IsValid returns true if the document type is valid
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeInvoice, DocumentTypePurchaseOrder, DocumentTypeAdjustment:
		return true
	}
	return false
}

// Prefix returns the short prefix embedded in formatted document numbers
func (t DocumentType) Prefix() string {
	switch t {
	case DocumentTypeInvoice:
		return "INV"
	case DocumentTypePurchaseOrder:
		return "PO"
	case DocumentTypeAdjustment:
		return "ADJ"
	}
	return "DOC"
}

// DocumentSequence is the persistent counter backing number generation.
// One row exists per (document type, branch); the value only ever increases,
// so numbers are never reissued even for cancelled documents.
type DocumentSequence struct {
	DocumentType DocumentType `gorm:"type:varchar(30);not null;primaryKey"`
	BranchID     uuid.UUID    `gorm:"type:uuid;not null;primaryKey"`
	Value        int64        `gorm:"not null;default:0"`
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// Generator issues unique, monotonically increasing document numbers.
// Implementations must increment atomically at the storage layer; deriving
// the next number by scanning existing documents races under concurrency.
type Generator interface {
	// Next reserves and returns the next sequence value for (docType, branch).
	// The increment participates in the caller's transaction: an abort
	// releases the value for the next caller, a commit consumes it.
	// Committed documents never share a number.
	Next(ctx context.Context, docType DocumentType, branchID uuid.UUID) (int64, error)
}

// Format renders a sequence value as a human-readable document number,
// e.g. INV-MAIN-000042.
func Format(docType DocumentType, branchCode string, sequence int64) (string, error) {
	if !docType.IsValid() {
		return "", shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Unknown document type")
	}
	if branchCode == "" {
		return "", shared.NewDomainError("INVALID_BRANCH_CODE", "Branch code cannot be empty")
	}
	if sequence <= 0 {
		return "", shared.NewDomainError("INVALID_SEQUENCE", "Sequence value must be positive")
	}
	return fmt.Sprintf("%s-%s-%06d", docType.Prefix(), branchCode, sequence), nil
}

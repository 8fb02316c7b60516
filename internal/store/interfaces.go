package store

import (
	"context"

	"github.com/google/uuid"

	"platform-adapter-service/internal/domain"
)

// CategoryMappingStorer defines the persistence operations used during category resolution.
type CategoryMappingStorer interface {
	// GetCategoryMapping returns ErrCategoryMappingNotFound when no mapping exists.
	GetCategoryMapping(ctx context.Context, userID, sourceCategory, platform string) (*domain.CategoryMapping, error)
	// SaveCategoryMapping upserts on (user, source category, platform).
	SaveCategoryMapping(ctx context.Context, mapping *domain.CategoryMapping) (*domain.CategoryMapping, error)
}

// ListCategoryMappingsParams holds parameters for listing category mappings. Results are
// always restricted to UserID; the empty user id only sees its own mappings.
type ListCategoryMappingsParams struct {
	UserID     string
	Platform   *string
	IsVerified *bool
	Limit      int
	Offset     int
}

// CategoryMappingReviewer defines the operations behind human review of stored mappings.
type CategoryMappingReviewer interface {
	ListCategoryMappings(ctx context.Context, params ListCategoryMappingsParams) ([]domain.CategoryMapping, int, error) // Returns mappings and total count
	// VerifyCategoryMapping returns ErrCategoryMappingNotFound when id does not belong to userID.
	VerifyCategoryMapping(ctx context.Context, userID string, id uuid.UUID, targetCategory string) (*domain.CategoryMapping, error)
}

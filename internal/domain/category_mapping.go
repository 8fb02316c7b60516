package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CategoryMapping records the resolution of a free-text source category into a
// platform category for one user. IsVerified is only ever set by a human review.
type CategoryMapping struct {
	ID              uuid.UUID `json:"id"`
	UserID          string    `json:"user_id"`
	SourceCategory  string    `json:"source_category"`
	Platform        string    `json:"platform"`
	TargetCategory  string    `json:"target_category"`
	ConfidenceScore float64   `json:"confidence_score"`
	IsVerified      bool      `json:"is_verified"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type userIDKey struct{}

// ContextWithUserID attaches the acting user to ctx. Category mappings are scoped per user.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the acting user, or "" when none is attached.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey{}).(string); ok {
		return id
	}
	return ""
}

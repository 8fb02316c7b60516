package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"platform-adapter-service/internal/domain"
)

// Predefined errors for store operations
var (
	ErrCategoryMappingNotFound = errors.New("store: category mapping not found")
	ErrCategoryMappingVerified = errors.New("store: category mapping already verified")
	ErrCategoryMappingInvalid  = errors.New("store: category mapping violates a constraint")
)

const mappingColumns = `id, user_id, source_category, platform, target_category, confidence_score, is_verified, created_at, updated_at`

// PostgresStore implements CategoryMappingStorer and CategoryMappingReviewer using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgresStore instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMapping(row rowScanner) (*domain.CategoryMapping, error) {
	var m domain.CategoryMapping
	err := row.Scan(
		&m.ID, &m.UserID, &m.SourceCategory, &m.Platform, &m.TargetCategory,
		&m.ConfidenceScore, &m.IsVerified, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *PostgresStore) GetCategoryMapping(ctx context.Context, userID, sourceCategory, platform string) (*domain.CategoryMapping, error) {
	query := `
		SELECT ` + mappingColumns + `
		FROM category_mappings
		WHERE user_id = $1 AND source_category = $2 AND platform = $3;
	`
	m, err := scanMapping(s.db.QueryRowContext(ctx, query, userID, sourceCategory, platform))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryMappingNotFound
		}
		return nil, fmt.Errorf("store: GetCategoryMapping failed to scan row: %w", err)
	}
	return m, nil
}

// SaveCategoryMapping upserts on (user_id, source_category, platform). An unverified
// candidate never replaces a verified row; that case returns ErrCategoryMappingVerified.
func (s *PostgresStore) SaveCategoryMapping(ctx context.Context, mapping *domain.CategoryMapping) (*domain.CategoryMapping, error) {
	query := `
		INSERT INTO category_mappings (id, user_id, source_category, platform, target_category, confidence_score, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, source_category, platform) DO UPDATE
		SET target_category = EXCLUDED.target_category,
			confidence_score = EXCLUDED.confidence_score,
			is_verified = EXCLUDED.is_verified,
			updated_at = CURRENT_TIMESTAMP
		WHERE NOT category_mappings.is_verified OR EXCLUDED.is_verified
		RETURNING ` + mappingColumns + `;
	`
	id := mapping.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	saved, err := scanMapping(s.db.QueryRowContext(ctx, query,
		id, mapping.UserID, mapping.SourceCategory, mapping.Platform,
		mapping.TargetCategory, mapping.ConfidenceScore, mapping.IsVerified,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryMappingVerified
		}
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23514" { // Check violation
			return nil, fmt.Errorf("%w: %s", ErrCategoryMappingInvalid, pqErr.Constraint)
		}
		return nil, fmt.Errorf("store: SaveCategoryMapping failed to scan row: %w", err)
	}
	return saved, nil
}

func (s *PostgresStore) ListCategoryMappings(ctx context.Context, params ListCategoryMappingsParams) ([]domain.CategoryMapping, int, error) {
	queryArgs := []interface{}{params.UserID}
	whereClauses := []string{"user_id = $1"}
	argID := 2

	if params.Platform != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("platform = $%d", argID))
		queryArgs = append(queryArgs, *params.Platform)
		argID++
	}
	if params.IsVerified != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("is_verified = $%d", argID))
		queryArgs = append(queryArgs, *params.IsVerified)
		argID++
	}

	whereCondition := " WHERE " + strings.Join(whereClauses, " AND ")

	countQuery := "SELECT COUNT(*) FROM category_mappings" + whereCondition
	var totalCount int
	if err := s.db.QueryRowContext(ctx, countQuery, queryArgs...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("store: ListCategoryMappings failed to count mappings: %w", err)
	}
	if totalCount == 0 {
		return []domain.CategoryMapping{}, 0, nil
	}

	dataQuery := fmt.Sprintf("SELECT %s FROM category_mappings%s ORDER BY confidence_score DESC, created_at DESC LIMIT $%d OFFSET $%d",
		mappingColumns, whereCondition, argID, argID+1)
	rows, err := s.db.QueryContext(ctx, dataQuery, append(queryArgs, params.Limit, params.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListCategoryMappings failed to query mappings: %w", err)
	}
	defer rows.Close()

	mappings := make([]domain.CategoryMapping, 0, params.Limit)
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("store: ListCategoryMappings failed to scan mapping row: %w", err)
		}
		mappings = append(mappings, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("store: ListCategoryMappings iteration error: %w", err)
	}
	return mappings, totalCount, nil
}

// VerifyCategoryMapping records a human review: the target is confirmed (or corrected)
// and the mapping becomes authoritative for later resolutions. Only the owning user can
// verify a mapping.
func (s *PostgresStore) VerifyCategoryMapping(ctx context.Context, userID string, id uuid.UUID, targetCategory string) (*domain.CategoryMapping, error) {
	query := `
		UPDATE category_mappings
		SET target_category = $1, confidence_score = 1.0, is_verified = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2 AND user_id = $3
		RETURNING ` + mappingColumns + `;
	`
	m, err := scanMapping(s.db.QueryRowContext(ctx, query, targetCategory, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryMappingNotFound
		}
		return nil, fmt.Errorf("store: VerifyCategoryMapping failed to scan row: %w", err)
	}
	return m, nil
}

// Ping checks the database connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/williamscesar21/RikoApi/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// RatingRepo implements ports.RatingRepository. Every score lands in one flat
// table keyed by (entity kind, entity id) so the aggregate can always be
// recomputed from the raw rows.
type RatingRepo struct {
	pool Pool
}

// NewRatingRepo creates a new RatingRepo.
func NewRatingRepo(pool Pool) *RatingRepo {
	return &RatingRepo{pool: pool}
}

// Append writes one score row inside the caller's transaction.
func (r *RatingRepo) Append(ctx context.Context, tx pgx.Tx, entity domain.RatedEntity, entityID uuid.UUID, score int) error {
	query := `INSERT INTO ratings (id, entity_kind, entity_id, score, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, query, uuid.New(), string(entity), entityID, score, time.Now())
	if err != nil {
		return fmt.Errorf("insert rating: %w", err)
	}
	return nil
}

// ListScores returns every score for one entity, inside the caller's
// transaction so the recomputed aggregate includes the row just appended.
func (r *RatingRepo) ListScores(ctx context.Context, tx pgx.Tx, entity domain.RatedEntity, entityID uuid.UUID) ([]int, error) {
	query := `SELECT score FROM ratings WHERE entity_kind = $1 AND entity_id = $2 ORDER BY created_at`

	rows, err := tx.Query(ctx, query, string(entity), entityID)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	scores := []int{}
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ratings: %w", err)
	}
	return scores, nil
}

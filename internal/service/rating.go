package service

import (
	"context"
	"fmt"

	"github.com/williamscesar21/RikoApi/internal/core/domain"
	"github.com/williamscesar21/RikoApi/internal/core/ports"
	"github.com/williamscesar21/RikoApi/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// appendAndRecompute appends one score and recomputes the entity's aggregate
// from the full score list. The score row, the recompute read and the
// aggregate write all share one transaction, so the stored average can never
// drift from the stored scores.
func appendAndRecompute(
	ctx context.Context,
	transactor ports.DBTransactor,
	ratings ports.RatingRepository,
	entity domain.RatedEntity,
	entityID uuid.UUID,
	score int,
	update func(context.Context, pgx.Tx, domain.RatingSummary) error,
) (*domain.RatingSummary, error) {
	if !domain.ValidScore(score) {
		return nil, apperror.ErrInvalidRating()
	}

	dbTx, err := transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := ratings.Append(ctx, dbTx, entity, entityID, score); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("append rating: %w", err))
	}

	scores, err := ratings.ListScores(ctx, dbTx, entity, entityID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list ratings: %w", err))
	}

	summary := recomputeRating(scores)
	if err := update(ctx, dbTx, summary); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update rating aggregate: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}
	return &summary, nil
}

// recomputeRating derives the aggregate from the raw score list.
func recomputeRating(scores []int) domain.RatingSummary {
	if len(scores) == 0 {
		return domain.RatingSummary{}
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return domain.RatingSummary{
		Count:   int64(len(scores)),
		Average: float64(sum) / float64(len(scores)),
	}
}

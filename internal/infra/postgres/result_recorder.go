package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"trivia-quiz/internal/domain"
)

// ResultRecorder appends completed sessions to quiz_results.
type ResultRecorder struct {
	pool *pgxpool.Pool
}

func NewResultRecorder(pool *pgxpool.Pool) *ResultRecorder {
	return &ResultRecorder{pool: pool}
}

func (r *ResultRecorder) RecordResult(ctx context.Context, result domain.Result) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO quiz_results (player_id, category_name, requested_difficulty, actual_difficulty, score, total, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		result.PlayerID,
		result.CategoryName,
		string(result.RequestedDifficulty),
		string(result.ActualDifficulty),
		result.Score,
		result.Total,
		result.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("insert result: %w", err)
	}
	return nil
}

// Recent returns up to limit results, newest first.
func (r *ResultRecorder) Recent(ctx context.Context, limit int) ([]domain.Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx,
		`SELECT player_id, category_name, requested_difficulty, actual_difficulty, score, total, completed_at
		 FROM quiz_results ORDER BY completed_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var results []domain.Result
	for rows.Next() {
		var res domain.Result
		var requested, actual string
		if err := rows.Scan(&res.PlayerID, &res.CategoryName, &requested, &actual, &res.Score, &res.Total, &res.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		res.RequestedDifficulty = domain.Difficulty(requested)
		res.ActualDifficulty = domain.Difficulty(actual)
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

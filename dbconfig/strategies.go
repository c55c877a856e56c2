package dbconfig

import (
	"context"
	"database/sql"

	"github.com/hookenful/sol-trade-sdk/dbconfig/models"
)

// GetFeeStrategies returns all fee strategy rows for a named preset, optionally filtering by active status.
//
// Parameters:
// - ctx: the context for managing the request.
// - preset: the preset name grouping the rows.
// - activeOnly: a boolean flag to filter only active rows.
//
// Returns:
// - []models.FeeStrategy: a slice of fee strategy models.
// - error: an error if the database operation fails.
func (r *DBConfig) GetFeeStrategies(ctx context.Context, preset string, activeOnly bool) ([]models.FeeStrategy, error) {
	if preset == "" {
		return nil, ErrInvalidPresetName
	}

	db, err := sql.Open("postgres", r.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	query := `
		SELECT
			id,
			preset,
			swqos_type,
			trade_type,
			cu_limit,
			cu_price,
			tip_sol,
			active,
			created_at,
			updated_at
		FROM fee_strategies
		WHERE preset = $1
	`

	args := []interface{}{preset}
	if activeOnly {
		query += " AND active = $2"
		args = append(args, true)
	}

	query += " ORDER BY swqos_type ASC, trade_type ASC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer rows.Close()

	var strategies []models.FeeStrategy
	for rows.Next() {
		var strategy models.FeeStrategy

		err := rows.Scan(
			&strategy.ID,
			&strategy.Preset,
			&strategy.SwqosType,
			&strategy.TradeType,
			&strategy.CuLimit,
			&strategy.CuPrice,
			&strategy.TipSol,
			&strategy.Active,
			&strategy.CreatedAt,
			&strategy.UpdatedAt,
		)
		if err != nil {
			return nil, ErrDatabaseConnect
		}

		strategies = append(strategies, strategy)
	}

	if err = rows.Err(); err != nil {
		return nil, ErrDatabaseConnect
	}

	return strategies, nil
}

package dbconfig

import (
	"context"
	"database/sql"

	"github.com/hookenful/sol-trade-sdk/dbconfig/models"
)

// GetEndpoints returns all stored submission endpoints, optionally filtering by active status.
//
// Parameters:
// - ctx: the context for managing the request.
// - activeOnly: a boolean flag to filter only active endpoints.
//
// Returns:
// - []models.Endpoint: a slice of endpoint models.
// - error: an error if the database operation fails.
func (r *DBConfig) GetEndpoints(ctx context.Context, activeOnly bool) ([]models.Endpoint, error) {
	db, err := sql.Open("postgres", r.dbConnStr)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer db.Close()

	query := `
		SELECT
			id,
			swqos_type,
			url,
			auth_token,
			swqos_only,
			active,
			created_at,
			updated_at
		FROM swqos_endpoints
	`

	var args []interface{}
	if activeOnly {
		query += " WHERE active = $1"
		args = append(args, true)
	}

	query += " ORDER BY created_at DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ErrDatabaseConnect
	}
	defer rows.Close()

	var endpoints []models.Endpoint
	for rows.Next() {
		var endpoint models.Endpoint
		var authToken sql.NullString

		err := rows.Scan(
			&endpoint.ID,
			&endpoint.SwqosType,
			&endpoint.URL,
			&authToken,
			&endpoint.SwqosOnly,
			&endpoint.Active,
			&endpoint.CreatedAt,
			&endpoint.UpdatedAt,
		)
		if err != nil {
			return nil, ErrDatabaseConnect
		}

		if authToken.Valid {
			endpoint.AuthToken = authToken.String
		}

		endpoints = append(endpoints, endpoint)
	}

	if err = rows.Err(); err != nil {
		return nil, ErrDatabaseConnect
	}

	return endpoints, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/ltcdata/insurance-api/internal/logger"
	"github.com/ltcdata/insurance-api/internal/query"
	"github.com/ltcdata/insurance-api/models"
)

const breakdownLimit = 20

// datasetRepository is the PostgreSQL-backed implementation of
// [DatasetRepository]. It renders query descriptions into parameterised SQL
// and scans result sets into generic rows keyed by column name.
type datasetRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDatasetRepository constructs a [DatasetRepository] backed by the
// provided database connection and logger.
func NewDatasetRepository(db *DB, logger *logger.Logger) DatasetRepository {
	logger.Debug().Msg("creating dataset repository")
	return &datasetRepository{
		db:     db,
		logger: logger,
	}
}

// List executes a resolved list query and returns the matching rows in the
// description's projection order.
func (r *datasetRepository) List(ctx context.Context, qd query.QueryDescription) ([]models.Row, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildListQuery(qd)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.List").Msg("error building list query")
		return nil, err
	}

	rows, err := r.db.queryWithRetry(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.List").Msg("error executing list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result, err := scanGenericRows(rows)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.List").Msg("error scanning list rows")
		return nil, err
	}

	return result, nil
}

// GetByID fetches a single record by primary identifier within the caller's
// carrier scope. A row hidden by the scope is indistinguishable from a row
// that does not exist: both return [ErrRecordNotFound].
func (r *datasetRepository) GetByID(ctx context.Context, schema *query.Schema, id int64, scope query.ScopePredicate) (models.Row, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildGetByIDQuery(schema, id, scope)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.GetByID").Msg("error building lookup query")
		return nil, err
	}

	rows, err := r.db.queryWithRetry(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.GetByID").Msg("error executing lookup query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	result, err := scanGenericRows(rows)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.GetByID").Msg("error scanning lookup row")
		return nil, err
	}
	if len(result) == 0 {
		return nil, ErrRecordNotFound
	}

	return result[0], nil
}

// PolicySummary computes aggregate policy statistics within scope.
func (r *datasetRepository) PolicySummary(ctx context.Context, scope query.ScopePredicate) (models.PolicySummary, error) {
	log := logger.FromContext(ctx)

	var summary models.PolicySummary

	builder := psql.Select(
		"COUNT(*)",
		"COALESCE(SUM(ANNUALIZED_PREMIUM), 0)",
		"COALESCE(SUM(LIFETIME_COLLECTED_PREMIUM), 0)",
		"COALESCE(AVG(ANNUALIZED_PREMIUM), 0)",
	).From(query.Policies.Table())
	builder = applyScope(builder, scope, query.Policies.CarrierField())

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return models.PolicySummary{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, sqlQuery, args...)
	err = row.Scan(&summary.TotalPolicies, &summary.TotalAnnualizedPremium, &summary.TotalLifetimePremium, &summary.AvgAnnualizedPremium)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.PolicySummary").Msg("error scanning policy totals")
		return models.PolicySummary{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if summary.PoliciesByState, err = r.groupCount(ctx, query.Policies, "INSURED_STATE", scope, breakdownLimit); err != nil {
		return models.PolicySummary{}, err
	}
	if summary.PoliciesByCarrier, err = r.groupCount(ctx, query.Policies, "CARRIER_NAME", scope, 0); err != nil {
		return models.PolicySummary{}, err
	}

	return summary, nil
}

// ClaimsSummary computes aggregate claims statistics within scope.
func (r *datasetRepository) ClaimsSummary(ctx context.Context, scope query.ScopePredicate) (models.ClaimsSummary, error) {
	log := logger.FromContext(ctx)

	var summary models.ClaimsSummary

	builder := psql.Select(
		"COUNT(*)",
		"COALESCE(AVG(RFB_PROCESS_TO_DECISION_TAT), 0)",
	).From(query.Claims.Table())
	builder = applyScope(builder, scope, query.Claims.CarrierField())

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return models.ClaimsSummary{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, sqlQuery, args...)
	if err = row.Scan(&summary.TotalClaims, &summary.AvgTurnaround); err != nil {
		log.Err(err).Str("func", "*datasetRepository.ClaimsSummary").Msg("error scanning claims totals")
		return models.ClaimsSummary{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if summary.DecisionsBreakdown, err = r.groupCount(ctx, query.Claims, "DECISION", scope, 0); err != nil {
		return models.ClaimsSummary{}, err
	}
	if summary.ClaimsByState, err = r.groupCount(ctx, query.Claims, "LIFE_STATE", scope, breakdownLimit); err != nil {
		return models.ClaimsSummary{}, err
	}
	if summary.ClaimsByCarrier, err = r.groupCount(ctx, query.Claims, "CARRIER_NAME", scope, 0); err != nil {
		return models.ClaimsSummary{}, err
	}

	return summary, nil
}

// groupCount returns per-value row counts for one column, NULLs excluded,
// largest groups first.
func (r *datasetRepository) groupCount(ctx context.Context, schema *query.Schema, column string, scope query.ScopePredicate, limit uint64) (map[string]int64, error) {
	log := logger.FromContext(ctx)

	builder := psql.Select(column, "COUNT(*)").
		From(schema.Table()).
		Where(sq.NotEq{column: nil})
	builder = applyScope(builder, scope, schema.CarrierField())
	builder = builder.GroupBy(column).OrderBy("COUNT(*) DESC")
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	sqlQuery, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.queryWithRetry(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).Str("func", "*datasetRepository.groupCount").Str("column", column).Msg("error executing breakdown query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	breakdown := make(map[string]int64)
	for rows.Next() {
		var value string
		var count int64
		if err := rows.Scan(&value, &count); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		breakdown[value] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return breakdown, nil
}

// scanGenericRows scans every row into a map keyed by column name. Byte
// slices become strings so JSON encoding does not base64 them.
func scanGenericRows(rows *sql.Rows) ([]models.Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	result := make([]models.Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		row := make(models.Row, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return result, nil
}

func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

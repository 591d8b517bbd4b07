package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/ltcdata/insurance-api/internal/logger"
	"github.com/ltcdata/insurance-api/internal/query"
	"github.com/ltcdata/insurance-api/internal/store"
	"github.com/ltcdata/insurance-api/models"
)

// datasetService holds the list/lookup pipeline shared by the policy and
// claims services: validate the raw parameters against the entity allow-list,
// resolve the caller's carrier scope, compose the query description and hand
// it to the repository.
//
// A denied scope short-circuits before any database work. For lists this
// yields an empty page, for lookups a not-found; in neither case is the
// scope's existence revealed to the caller.
type datasetService struct {
	schema     *query.Schema
	repository store.DatasetRepository
	limits     query.Limits
	logger     *logger.Logger
}

func (s *datasetService) list(ctx context.Context, principal models.Principal, params url.Values) (models.ListResponse, error) {
	log := logger.FromContext(ctx)

	req, err := query.ParseRequest(s.schema, params, s.limits)
	if err != nil {
		log.Warn().Err(err).Str("entity", s.schema.Entity()).Msg("rejected list request")
		return models.ListResponse{}, err
	}

	scope := query.ResolveScope(principal.Role, principal.CarrierAccess)
	if scope.Denied() {
		log.Warn().
			Int64("user_id", principal.UserID).
			Str("entity", s.schema.Entity()).
			Msg("carrier scope denies access, returning empty result")
		return models.ListResponse{
			Data:   []models.Row{},
			Limit:  req.Page.Limit,
			Offset: req.Page.Offset,
		}, nil
	}

	qd := query.Build(s.schema, req, scope)

	rows, err := s.repository.List(ctx, qd)
	if err != nil {
		log.Err(err).Str("entity", s.schema.Entity()).Msg("list query failed")
		return models.ListResponse{}, fmt.Errorf("list query failed: %w", err)
	}

	for _, row := range rows {
		serializeRow(row)
	}

	return models.ListResponse{
		Data:   rows,
		Limit:  qd.Limit,
		Offset: qd.Offset,
		Count:  len(rows),
	}, nil
}

func (s *datasetService) get(ctx context.Context, principal models.Principal, id int64) (models.Row, error) {
	log := logger.FromContext(ctx)

	scope := query.ResolveScope(principal.Role, principal.CarrierAccess)
	if scope.Denied() {
		log.Warn().
			Int64("user_id", principal.UserID).
			Str("entity", s.schema.Entity()).
			Int64("id", id).
			Msg("carrier scope denies access to record lookup")
		return nil, store.ErrRecordNotFound
	}

	row, err := s.repository.GetByID(ctx, s.schema, id, scope)
	if err != nil {
		return nil, err
	}

	serializeRow(row)
	return row, nil
}

// serializeRow converts timestamp values to RFC 3339 strings in place so the
// JSON encoding matches across date and datetime warehouse columns.
func serializeRow(row models.Row) {
	for key, value := range row {
		if t, ok := value.(time.Time); ok {
			row[key] = t.Format(time.RFC3339)
		}
	}
}

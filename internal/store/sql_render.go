package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/ltcdata/insurance-api/internal/query"
)

// psql is the statement builder shared by all rendered queries. Every value
// reaches the database as a $n bind parameter; identifiers (table, columns,
// sort field) come exclusively from the server-defined allow-lists.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListQuery renders a resolved description into a parameterised SELECT.
func buildListQuery(qd query.QueryDescription) (string, []any, error) {
	if len(qd.Columns) == 0 {
		return "", nil, fmt.Errorf("%w: empty projection", ErrBuildingSQLQuery)
	}

	builder := psql.Select(qd.Columns...).From(qd.Table)
	builder = applyScope(builder, qd.Scope, qd.ScopeColumn)

	for _, f := range qd.Filters {
		cond, err := filterCondition(f)
		if err != nil {
			return "", nil, err
		}
		builder = builder.Where(cond)
	}

	direction := "ASC"
	if qd.SortDesc {
		direction = "DESC"
	}
	builder = builder.
		OrderBy(qd.SortBy + " " + direction).
		Limit(uint64(qd.Limit)).
		Offset(uint64(qd.Offset))

	return builder.ToSql()
}

// buildGetByIDQuery renders a primary-identifier lookup restricted to the
// caller's carrier scope.
func buildGetByIDQuery(schema *query.Schema, id int64, scope query.ScopePredicate) (string, []any, error) {
	builder := psql.Select(schema.Columns()...).
		From(schema.Table()).
		Where(sq.Eq{schema.IDField(): id})
	builder = applyScope(builder, scope, schema.CarrierField())

	return builder.ToSql()
}

// applyScope appends the visibility predicate. An unrestricted scope adds
// nothing; a denied scope adds a contradiction so the query matches no rows.
func applyScope(builder sq.SelectBuilder, scope query.ScopePredicate, column string) sq.SelectBuilder {
	switch {
	case scope.Unrestricted():
		return builder
	case scope.Denied():
		return builder.Where(sq.Expr("1 = 0"))
	default:
		return builder.Where(sq.Eq{column: scope.Carriers()})
	}
}

// filterCondition maps one validated filter to a squirrel condition.
func filterCondition(f query.Filter) (sq.Sqlizer, error) {
	switch f.Op {
	case query.OpEqual:
		return sq.Eq{f.Field: f.Values[0]}, nil

	case query.OpIn:
		return sq.Eq{f.Field: f.Values}, nil

	case query.OpIsNull:
		return sq.Eq{f.Field: nil}, nil

	case query.OpContains:
		pattern, ok := f.Values[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: contains filter on non-string value", ErrBuildingSQLQuery)
		}
		return sq.ILike{f.Field: "%" + escapeLike(pattern) + "%"}, nil

	case query.OpRange:
		conds := sq.And{}
		if f.Min != nil {
			conds = append(conds, sq.GtOrEq{f.Field: f.Min})
		}
		if f.Max != nil {
			conds = append(conds, sq.LtOrEq{f.Field: f.Max})
		}
		if len(conds) == 0 {
			return nil, fmt.Errorf("%w: range filter without bounds", ErrBuildingSQLQuery)
		}
		return conds, nil

	default:
		return nil, fmt.Errorf("%w: unsupported filter operator %q", ErrBuildingSQLQuery, f.Op)
	}
}

// escapeLike neutralises LIKE wildcards in user input so a substring search
// matches the literal characters the caller typed.
func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

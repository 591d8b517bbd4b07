package query

// QueryDescription is the fully resolved, immutable description of one list
// query: target table, projection, scope predicate plus user filters, sort
// clause and pagination window. It is created per request, handed to the
// execution layer exactly once, and discarded.
//
// Filter and scope values live in the description as typed Go values; the
// execution layer binds each of them as a query parameter. No user input is
// ever part of the description's identifiers: Table, Columns, ScopeColumn
// and SortBy all come from the server-defined schema.
type QueryDescription struct {
	// Table is the warehouse table to read.
	Table string

	// Columns is the projection, in canonical allow-list order when the
	// caller did not request specific fields.
	Columns []string

	// Scope is the resolved visibility predicate, applied to ScopeColumn
	// and AND-combined with Filters.
	Scope ScopePredicate

	// ScopeColumn is the carrier column Scope restricts on.
	ScopeColumn string

	// Filters are the user-supplied conditions in the allow-list's
	// canonical field order, which keeps identical inputs producing
	// identical descriptions.
	Filters []Filter

	// SortBy and SortDesc define the ORDER BY clause. SortBy is always
	// set: it falls back to the entity's primary identifier so repeated
	// pages of the same query neither skip nor duplicate rows.
	SortBy   string
	SortDesc bool

	// Limit and Offset are the resolved pagination window.
	Limit  int
	Offset int
}

// Build composes a validated request and a resolved scope predicate into a
// QueryDescription for the given entity.
//
// User filters can only narrow the scope predicate, never widen it: the two
// are combined with AND by the execution layer and the scope is not derived
// from request input. A denied scope still yields a valid description, one
// that matches zero rows, so downstream behavior is an empty result set and
// not an error.
//
// Build is deterministic: identical inputs always yield an identical
// description.
func Build(schema *Schema, req Request, scope ScopePredicate) QueryDescription {
	qd := QueryDescription{
		Table:       schema.Table(),
		Scope:       scope,
		ScopeColumn: schema.CarrierField(),
		SortBy:      schema.IDField(),
		SortDesc:    req.Sort.Desc,
		Limit:       req.Page.Limit,
		Offset:      req.Page.Offset,
	}

	if len(req.Projection.Fields) > 0 {
		qd.Columns = make([]string, len(req.Projection.Fields))
		copy(qd.Columns, req.Projection.Fields)
	} else {
		qd.Columns = schema.Columns()
	}

	if req.Sort.Field != "" {
		qd.SortBy = req.Sort.Field
	}

	// Canonical order makes the description independent of parameter order.
	for _, field := range schema.Fields() {
		if f, ok := req.Filters.Get(field.Name); ok {
			qd.Filters = append(qd.Filters, f)
		}
	}

	return qd
}

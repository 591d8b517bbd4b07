package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Reserved query parameters. Everything else is treated as a filter on an
// allow-listed field.
const (
	paramSortBy    = "sort_by"
	paramSortOrder = "sort_order"
	paramLimit     = "limit"
	paramOffset    = "offset"
	paramFields    = "fields"
)

// nullLiteral selects a NULL check instead of an equality match.
const nullLiteral = "null"

// dateLayout is the accepted wire format for date values.
const dateLayout = "2006-01-02"

// Range-bound prefixes. "min_"/"from_" set the lower bound, "max_"/"to_"
// the upper bound of a range filter on the remaining field name.
var (
	lowerBoundPrefixes = []string{"min_", "from_"}
	upperBoundPrefixes = []string{"max_", "to_"}
)

// FilterOp identifies how a filter's values are matched.
type FilterOp string

const (
	// OpEqual matches rows whose column equals the single value.
	OpEqual FilterOp = "eq"

	// OpIn matches rows whose column equals any of the values.
	OpIn FilterOp = "in"

	// OpRange matches rows whose column lies between Min and Max
	// (either bound may be open).
	OpRange FilterOp = "range"

	// OpIsNull matches rows whose column is NULL.
	OpIsNull FilterOp = "is_null"

	// OpContains matches rows whose column contains the value as a
	// case-insensitive substring. Only produced for searchable fields.
	OpContains FilterOp = "contains"
)

// Filter is one typed, validated condition on a single allow-listed field.
type Filter struct {
	// Field is the canonical column name.
	Field string

	// Op selects the match semantics.
	Op FilterOp

	// Values holds the coerced values for OpEqual, OpIn and OpContains.
	Values []any

	// Min and Max are the coerced range bounds for OpRange; a nil bound
	// is open.
	Min any
	Max any
}

// FilterRequest maps canonical field names to their validated filters.
// At most one filter exists per field.
type FilterRequest struct {
	filters map[string]Filter
}

// Get returns the filter for the given field, if any.
func (fr FilterRequest) Get(field string) (Filter, bool) {
	f, ok := fr.filters[canonical(field)]
	return f, ok
}

// Len returns the number of filtered fields.
func (fr FilterRequest) Len() int { return len(fr.filters) }

// SortSpec names the sort column and direction. A zero Field means "use the
// entity's primary identifier".
type SortSpec struct {
	Field string
	Desc  bool
}

// PageSpec is the resolved pagination window. Limit is already defaulted and
// clamped by validation.
type PageSpec struct {
	Limit  int
	Offset int
}

// ProjectionSpec is the ordered set of requested output columns. An empty
// Fields slice means "all allow-listed fields in canonical order".
type ProjectionSpec struct {
	Fields []string
}

// Request bundles the four validated parts of a list query.
type Request struct {
	Filters    FilterRequest
	Sort       SortSpec
	Page       PageSpec
	Projection ProjectionSpec
}

// Limits carries the configured pagination bounds. Zero values fall back to
// the documented defaults (100/1000).
type Limits struct {
	DefaultLimit int
	MaxLimit     int
}

func (l Limits) defaultLimit() int {
	if l.DefaultLimit > 0 {
		return l.DefaultLimit
	}
	return 100
}

func (l Limits) maxLimit() int {
	if l.MaxLimit > 0 {
		return l.MaxLimit
	}
	return 1000
}

// ParseRequest validates and types raw query parameters against the
// entity's allow-list.
//
// Every non-reserved parameter must name an allow-listed field, directly or
// through a range-bound prefix; unknown names fail with ErrFieldNotAllowed
// rather than being ignored. Values are coerced per the field's declared
// type, comma-separated values become set-membership filters with each
// element coerced independently, and the literal "null" selects a NULL
// check. A limit above the configured ceiling is clamped, never rejected;
// negative limit or offset fails with ErrInvalidPagination.
//
// ParseRequest is a pure function: identical inputs produce identical
// results and identical errors.
func ParseRequest(schema *Schema, params url.Values, limits Limits) (Request, error) {
	req := Request{
		Filters: FilterRequest{filters: make(map[string]Filter)},
	}

	// Deterministic iteration: url.Values is a map.
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch strings.ToLower(key) {
		case paramSortBy, paramSortOrder, paramLimit, paramOffset, paramFields:
			continue
		}

		raw := strings.TrimSpace(params.Get(key))
		if raw == "" {
			continue
		}

		if err := parseFilterParam(schema, req.Filters.filters, key, raw); err != nil {
			return Request{}, err
		}
	}

	if err := checkRangeBounds(req.Filters.filters); err != nil {
		return Request{}, err
	}

	sortSpec, err := parseSort(schema, params)
	if err != nil {
		return Request{}, err
	}
	req.Sort = sortSpec

	page, err := parsePage(params, limits)
	if err != nil {
		return Request{}, err
	}
	req.Page = page

	projection, err := parseProjection(schema, params)
	if err != nil {
		return Request{}, err
	}
	req.Projection = projection

	return req, nil
}

// parseFilterParam resolves one non-reserved parameter into a filter entry.
func parseFilterParam(schema *Schema, filters map[string]Filter, key, raw string) error {
	if field, ok := schema.Field(key); ok {
		filter, err := buildDirectFilter(field, raw)
		if err != nil {
			return err
		}
		if existing, dup := filters[field.Name]; dup {
			return conflictingFilters(field.Name, existing.Op, filter.Op)
		}
		filters[field.Name] = filter
		return nil
	}

	if bound, baseName, ok := splitRangeParam(key); ok {
		if field, found := schema.Field(baseName); found {
			return mergeRangeBound(filters, field, bound, key, raw)
		}
	}

	return fieldNotAllowed(key)
}

type rangeBound int

const (
	lowerBound rangeBound = iota
	upperBound
)

// splitRangeParam strips a recognised range prefix from the parameter name.
func splitRangeParam(key string) (rangeBound, string, bool) {
	lowered := strings.ToLower(key)
	for _, p := range lowerBoundPrefixes {
		if strings.HasPrefix(lowered, p) && len(key) > len(p) {
			return lowerBound, key[len(p):], true
		}
	}
	for _, p := range upperBoundPrefixes {
		if strings.HasPrefix(lowered, p) && len(key) > len(p) {
			return upperBound, key[len(p):], true
		}
	}
	return 0, "", false
}

// buildDirectFilter types a bare field parameter: NULL check, set
// membership, substring match or equality.
func buildDirectFilter(field Field, raw string) (Filter, error) {
	if strings.EqualFold(raw, nullLiteral) {
		return Filter{Field: field.Name, Op: OpIsNull}, nil
	}

	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		values := make([]any, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := coerceValue(field, part)
			if err != nil {
				return Filter{}, err
			}
			values = append(values, v)
		}
		if len(values) == 0 {
			return Filter{}, invalidFieldValue(field.Name, raw, expectedFor(field))
		}
		return Filter{Field: field.Name, Op: OpIn, Values: values}, nil
	}

	v, err := coerceValue(field, raw)
	if err != nil {
		return Filter{}, err
	}

	op := OpEqual
	if field.Searchable && field.Type == TypeString {
		op = OpContains
	}
	return Filter{Field: field.Name, Op: op, Values: []any{v}}, nil
}

// mergeRangeBound folds a min_/max_/from_/to_ parameter into the field's
// range filter, creating it on first sight.
func mergeRangeBound(filters map[string]Filter, field Field, bound rangeBound, key, raw string) error {
	if field.Type != TypeInteger && field.Type != TypeDecimal && field.Type != TypeDate {
		return invalidFieldValue(key, raw, "range filter on a numeric or date field")
	}

	v, err := coerceValue(field, raw)
	if err != nil {
		// report under the parameter name the caller actually sent
		verr := err.(*ValidationError)
		verr.Field = key
		return verr
	}

	filter, exists := filters[field.Name]
	if exists && filter.Op != OpRange {
		return conflictingFilters(field.Name, filter.Op, OpRange)
	}
	if !exists {
		filter = Filter{Field: field.Name, Op: OpRange}
	}

	switch bound {
	case lowerBound:
		filter.Min = v
	case upperBound:
		filter.Max = v
	}

	filters[field.Name] = filter
	return nil
}

// checkRangeBounds enforces min <= max on every closed range.
func checkRangeBounds(filters map[string]Filter) error {
	fields := make([]string, 0, len(filters))
	for name := range filters {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	for _, name := range fields {
		f := filters[name]
		if f.Op != OpRange || f.Min == nil || f.Max == nil {
			continue
		}
		if boundsInverted(f.Min, f.Max) {
			return invalidRange(name, fmt.Sprintf("%v > %v", f.Min, f.Max))
		}
	}
	return nil
}

func boundsInverted(min, max any) bool {
	switch lo := min.(type) {
	case int64:
		hi, ok := max.(int64)
		return ok && lo > hi
	case float64:
		hi, ok := max.(float64)
		return ok && lo > hi
	case time.Time:
		hi, ok := max.(time.Time)
		return ok && lo.After(hi)
	}
	return false
}

func parseSort(schema *Schema, params url.Values) (SortSpec, error) {
	spec := SortSpec{}

	if raw := strings.TrimSpace(params.Get(paramSortBy)); raw != "" {
		field, ok := schema.Field(raw)
		if !ok {
			return SortSpec{}, fieldNotAllowed(raw)
		}
		spec.Field = field.Name
	}

	switch raw := strings.ToLower(strings.TrimSpace(params.Get(paramSortOrder))); raw {
	case "", "asc":
		spec.Desc = false
	case "desc":
		spec.Desc = true
	default:
		return SortSpec{}, invalidFieldValue(paramSortOrder, params.Get(paramSortOrder), `"asc" or "desc"`)
	}

	return spec, nil
}

func parsePage(params url.Values, limits Limits) (PageSpec, error) {
	page := PageSpec{Limit: limits.defaultLimit()}

	if raw := strings.TrimSpace(params.Get(paramLimit)); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return PageSpec{}, invalidPagination(paramLimit, raw)
		}
		switch {
		case limit == 0:
			// zero means unspecified: keep the default
		case limit > limits.maxLimit():
			page.Limit = limits.maxLimit()
		default:
			page.Limit = limit
		}
	}

	if raw := strings.TrimSpace(params.Get(paramOffset)); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return PageSpec{}, invalidPagination(paramOffset, raw)
		}
		page.Offset = offset
	}

	return page, nil
}

func parseProjection(schema *Schema, params url.Values) (ProjectionSpec, error) {
	raw := strings.TrimSpace(params.Get(paramFields))
	if raw == "" {
		return ProjectionSpec{}, nil
	}

	seen := make(map[string]struct{})
	fields := make([]string, 0, 8)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		field, ok := schema.Field(part)
		if !ok {
			return ProjectionSpec{}, fieldNotAllowed(part)
		}
		if _, dup := seen[field.Name]; dup {
			continue
		}
		seen[field.Name] = struct{}{}
		fields = append(fields, field.Name)
	}

	return ProjectionSpec{Fields: fields}, nil
}

// coerceValue converts a raw string to the field's declared type.
func coerceValue(field Field, raw string) (any, error) {
	switch field.Type {
	case TypeString:
		return raw, nil
	case TypeInteger:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, invalidFieldValue(field.Name, raw, expectedFor(field))
		}
		return v, nil
	case TypeDecimal:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, invalidFieldValue(field.Name, raw, expectedFor(field))
		}
		return v, nil
	case TypeDate:
		v, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, invalidFieldValue(field.Name, raw, expectedFor(field))
		}
		return v, nil
	case TypeEnum:
		for _, allowed := range field.Enum {
			if strings.EqualFold(allowed, raw) {
				return allowed, nil
			}
		}
		return nil, invalidFieldValue(field.Name, raw, expectedFor(field))
	}
	return nil, invalidFieldValue(field.Name, raw, expectedFor(field))
}

func expectedFor(field Field) string {
	if field.Type == TypeEnum {
		return "one of " + strings.Join(field.Enum, ", ")
	}
	return string(field.Type)
}

func conflictingFilters(field string, a, b FilterOp) *ValidationError {
	return invalidFieldValue(field, "", fmt.Sprintf("a single filter per field, got %s and %s", a, b))
}

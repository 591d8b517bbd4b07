package query

import (
	"fmt"
	"strings"
)

// FieldType is the declared type of an allow-listed field. It drives value
// coercion during validation and decides which filter operators apply.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInteger FieldType = "integer"
	TypeDecimal FieldType = "decimal"
	TypeDate    FieldType = "date"
	TypeEnum    FieldType = "enum"
)

// Field describes one allow-listed column of an entity.
type Field struct {
	// Name is the canonical column name (upper case, as stored in the
	// warehouse).
	Name string

	// Type determines how raw string values are coerced.
	Type FieldType

	// Enum lists the accepted values when Type is TypeEnum.
	Enum []string

	// Searchable marks string fields whose equality filter is interpreted
	// as a case-insensitive substring match instead of an exact match.
	Searchable bool
}

// Schema is the fixed, server-defined allow-list for one entity. It owns the
// canonical field order, the primary identifier used as the default sort
// field, and the column the carrier scope predicate restricts on.
//
// Schemas are built once at startup and never mutated afterwards, so they
// are safe for concurrent use.
type Schema struct {
	entity       string
	table        string
	idField      string
	carrierField string
	fields       []Field
	byName       map[string]int
}

// NewSchema builds a Schema from an ordered field list. Field names are
// canonicalized to upper case. It returns an error when the field list is
// empty, contains duplicates, or when idField or carrierField is not part
// of the list.
func NewSchema(entity, table, idField, carrierField string, fields []Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("schema %s: empty field list", entity)
	}

	s := &Schema{
		entity:       entity,
		table:        table,
		idField:      canonical(idField),
		carrierField: canonical(carrierField),
		fields:       make([]Field, 0, len(fields)),
		byName:       make(map[string]int, len(fields)),
	}

	for _, f := range fields {
		f.Name = canonical(f.Name)
		if _, exists := s.byName[f.Name]; exists {
			return nil, fmt.Errorf("schema %s: duplicate field %q", entity, f.Name)
		}
		s.byName[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}

	if _, ok := s.byName[s.idField]; !ok {
		return nil, fmt.Errorf("schema %s: id field %q not in field list", entity, idField)
	}
	if _, ok := s.byName[s.carrierField]; !ok {
		return nil, fmt.Errorf("schema %s: carrier field %q not in field list", entity, carrierField)
	}

	return s, nil
}

// mustSchema is NewSchema for the static entity definitions; a bad static
// definition is a programmer error.
func mustSchema(entity, table, idField, carrierField string, fields []Field) *Schema {
	s, err := NewSchema(entity, table, idField, carrierField, fields)
	if err != nil {
		panic(err)
	}
	return s
}

// Entity returns the entity name the schema describes (e.g. "policies").
func (s *Schema) Entity() string { return s.entity }

// Table returns the warehouse table the schema maps to.
func (s *Schema) Table() string { return s.table }

// IDField returns the primary identifier field, used as the default sort
// column so that pagination is deterministic.
func (s *Schema) IDField() string { return s.idField }

// CarrierField returns the column carrier-level scoping restricts on.
func (s *Schema) CarrierField() string { return s.carrierField }

// Field looks up an allow-listed field by name, case-insensitively.
func (s *Schema) Field(name string) (Field, bool) {
	idx, ok := s.byName[canonical(name)]
	if !ok {
		return Field{}, false
	}
	return s.fields[idx], true
}

// Columns returns all allow-listed column names in canonical order.
func (s *Schema) Columns() []string {
	cols := make([]string, len(s.fields))
	for i, f := range s.fields {
		cols[i] = f.Name
	}
	return cols
}

// Fields returns a copy of the allow-listed fields in canonical order.
func (s *Schema) Fields() []Field {
	fields := make([]Field, len(s.fields))
	copy(fields, s.fields)
	return fields
}

func canonical(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

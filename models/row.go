package models

// Row is a single warehouse record keyed by column name. The column set is
// dynamic because callers can project any subset of an entity's allow-listed
// fields, so rows are carried as maps rather than fixed structs.
type Row map[string]any

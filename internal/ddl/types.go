package ddl

// Type is a portable column type, mapped to SQL per Dialect.
type Type int

const (
	Integer Type = iota
	BigInt
	Real
	Text
	Timestamp
)

// ColumnDef describes a single column.
//
// References is "table(column)" for a foreign key, or empty.
type ColumnDef struct {
	Name       string
	Type       Type
	Nullable   bool
	PrimaryKey bool
	References string
}

// TableDef is a table name and its ordered columns.
type TableDef struct {
	Name    string
	Columns []ColumnDef
}

// ColumnNames returns the column names in order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

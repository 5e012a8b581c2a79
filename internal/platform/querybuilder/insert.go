package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

type InsertBuilder struct {
	table          string
	columns        []string
	rows           [][]any
	conflictTarget []string
	conflictWhere  string
	updateColumns  []string
	doNothing      bool
	returning      []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// OnConflict names the unique key an upsert resolves on.
func (b *InsertBuilder) OnConflict(columns ...string) *InsertBuilder {
	b.conflictTarget = append([]string(nil), columns...)
	return b
}

// ConflictWhere is the predicate of a partial unique index, e.g. "deleted_at IS NULL".
func (b *InsertBuilder) ConflictWhere(predicate string) *InsertBuilder {
	b.conflictWhere = strings.TrimSpace(predicate)
	return b
}

// DoUpdate overwrites the given columns from EXCLUDED when the key conflicts.
func (b *InsertBuilder) DoUpdate(columns ...string) *InsertBuilder {
	b.updateColumns = append([]string(nil), columns...)
	b.doNothing = false
	return b
}

func (b *InsertBuilder) DoNothing() *InsertBuilder {
	b.updateColumns = nil
	b.doNothing = true
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}
	if (len(b.updateColumns) > 0 || b.doNothing) && len(b.conflictTarget) == 0 {
		return "", nil, fmt.Errorf("conflict target is required for upsert")
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO ")
	buf.WriteString(b.table)
	buf.WriteString(" (")
	buf.WriteString(strings.Join(b.columns, ", "))
	buf.WriteString(") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	argIndex := 1
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			writeArg(&buf, value, &args, &argIndex)
		}
		buf.WriteString(")")
	}

	if len(b.conflictTarget) > 0 {
		buf.WriteString(" ON CONFLICT (")
		buf.WriteString(strings.Join(b.conflictTarget, ", "))
		buf.WriteString(")")
		if b.conflictWhere != "" {
			buf.WriteString(" WHERE ")
			buf.WriteString(b.conflictWhere)
		}
		switch {
		case len(b.updateColumns) > 0:
			buf.WriteString(" DO UPDATE SET ")
			for i, col := range b.updateColumns {
				if i > 0 {
					buf.WriteString(", ")
				}
				buf.WriteString(col)
				buf.WriteString(" = EXCLUDED.")
				buf.WriteString(col)
			}
		default:
			buf.WriteString(" DO NOTHING")
		}
	}
	if len(b.returning) > 0 {
		buf.WriteString(" RETURNING ")
		buf.WriteString(strings.Join(b.returning, ", "))
	}

	return buf.String(), args, nil
}

// InsertModels builds a multi-row insert from structs tagged with `db`.
// Every model must have the same type.
func InsertModels[T any](table string, models []T) (*InsertBuilder, error) {
	if len(models) == 0 {
		return nil, fmt.Errorf("at least one model is required")
	}

	b := InsertInto(table)
	for i, model := range models {
		cols, vals, err := columnsAndValues(model)
		if err != nil {
			return nil, fmt.Errorf("model %d: %w", i, err)
		}
		if i == 0 {
			b.Columns(cols...)
		}
		b.Values(vals...)
	}
	return b, nil
}

func columnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct")
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, opts, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" || strings.Contains(opts, "readonly") {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model has no db columns")
	}
	return cols, vals, nil
}

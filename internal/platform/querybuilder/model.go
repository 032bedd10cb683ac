package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

// InsertModel builds an INSERT from the db-tagged fields of a row struct.
// Fields tagged `db:"id,omitinsert"` are skipped so serial keys come back via RETURNING.
func InsertModel(table string, model any) *InsertBuilder {
	cols, vals, err := columnsAndValuesFromModel(model)
	b := InsertInto(table)
	if err != nil {
		b.err = fmt.Errorf("insert %s: %w", table, err)
		return b
	}
	return b.Columns(cols...).Values(vals...)
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
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
		if field.PkgPath != "" {
			continue
		}
		parts := strings.Split(strings.TrimSpace(field.Tag.Get("db")), ",")
		col := strings.TrimSpace(parts[0])
		if col == "" || col == "-" || hasOption(parts[1:], "omitinsert") {
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

func hasOption(options []string, want string) bool {
	for _, opt := range options {
		if strings.TrimSpace(opt) == want {
			return true
		}
	}
	return false
}

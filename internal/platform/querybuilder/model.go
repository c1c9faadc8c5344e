package querybuilder

import (
	"errors"
	"reflect"
	"strings"
)

// InsertModel inserts the exported db-tagged fields of a struct, in field order.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	v := reflect.Indirect(reflect.ValueOf(model))
	if !v.IsValid() {
		return "", nil, errors.New("insert model cannot be nil")
	}
	if v.Kind() != reflect.Struct {
		return "", nil, errors.New("insert model must be a struct")
	}

	b := InsertInto(table).Suffix(suffix)
	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(f.Tag.Get("db"), ",")
		if col = strings.TrimSpace(col); col == "" || col == "-" {
			continue
		}
		b.columns = append(b.columns, col)
		b.values = append(b.values, v.Field(i).Interface())
	}
	if len(b.columns) == 0 {
		return "", nil, errors.New("insert model has no db columns")
	}
	return b.ToSQL()
}

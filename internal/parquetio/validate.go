package parquetio

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/Murtazakhalid-BSCE22004/shaukat-pro-dash-sub000/internal/model"
)

// ValidateSchema checks that a visit file carries the required columns and
// at least one fee column.
func ValidateSchema(schema *parquet.Schema) error {
	columns := make(map[string]bool)
	for _, field := range schema.Fields() {
		columns[strings.ToLower(field.Name())] = true
	}

	for _, col := range model.RequiredVisitColumns {
		if !columns[col] {
			return fmt.Errorf("missing required column: %s", col)
		}
	}

	feeCols := model.FeeColumns()
	for _, col := range feeCols {
		if columns[col] {
			return nil
		}
	}
	return fmt.Errorf("no fee columns found; need at least one of: %s",
		strings.Join(feeCols, ", "))
}

package parquetio

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"
)

// WriteFile writes rows to a new Parquet file at path, replacing any
// existing file. T's parquet struct tags define the schema.
func WriteFile[T any](path string, rows []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	w := parquet.NewGenericWriter[T](f)
	if _, err := w.Write(rows); err != nil {
		f.Close()
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return f.Close()
}

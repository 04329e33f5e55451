package ingestion

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/projectinbox/core"
)

// LoadSourceFile reads a JSON array of project rows from path.
func LoadSourceFile(path string) ([]core.SourceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := DecodeSource(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// DecodeSource decodes a JSON array of project rows and validates every row.
// One invalid row rejects the whole source.
func DecodeSource(r io.Reader) ([]core.SourceRow, error) {
	var rows []core.SourceRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}

	for i := range rows {
		if err := core.ValidateSourceRow(&rows[i]); err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrInvalidSource, i, err)
		}
	}
	return rows, nil
}

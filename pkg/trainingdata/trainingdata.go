// Package trainingdata inspects training CSV files before they are uploaded.
// The backend rejects a file whose header lacks the unstructured-text column
// or has no label column besides it; Inspect reports the same conditions
// locally so a user does not wait for an upload to find out.
package trainingdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrMissingColumn is returned when the unstructured column is absent.
	ErrMissingColumn = errors.New("unstructured column not found")
	// ErrTooFewColumns is returned when the header has no label column.
	ErrTooFewColumns = errors.New("not enough columns")
	// ErrNoRows is returned when the file has a header but no data.
	ErrNoRows = errors.New("no data rows")
)

// Header summarizes a training CSV.
type Header struct {
	Columns            []string
	UnstructuredColumn string
	// Labels are the entity labels the trained model will learn: every
	// column except the unstructured one, in file order.
	Labels []string
	Rows   int
}

const utf8BOM = "\ufeff"

// Inspect reads a comma-separated file from r and checks it against the
// backend's rules for the given unstructured column.
func Inspect(r io.Reader, unstructuredColumn string) (*Header, error) {
	cr := csv.NewReader(r)

	columns, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("training file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(columns) > 0 {
		columns[0] = strings.TrimPrefix(columns[0], utf8BOM)
	}

	h := &Header{
		Columns:            columns,
		UnstructuredColumn: unstructuredColumn,
	}

	found := false
	for _, c := range columns {
		if c == unstructuredColumn {
			found = true
			continue
		}
		h.Labels = append(h.Labels, c)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, unstructuredColumn)
	}
	if len(columns) <= 1 {
		return nil, fmt.Errorf("%w: expected %q and at least another column", ErrTooFewColumns, unstructuredColumn)
	}

	for {
		_, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", h.Rows+1, err)
		}
		h.Rows++
	}
	if h.Rows == 0 {
		return nil, ErrNoRows
	}
	return h, nil
}

// InspectFile is Inspect over the file at path. The backend also requires a
// ".csv" extension, which is checked here.
func InspectFile(path, unstructuredColumn string) (*Header, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".csv") {
		return nil, fmt.Errorf("training file %q must have a .csv extension", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open training file: %w", err)
	}
	defer f.Close()

	return Inspect(f, unstructuredColumn)
}

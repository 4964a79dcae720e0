package trainingdata

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInspect_OK(t *testing.T) {
	data := "\ufeffaddress,BUILDING_NO,CITY\n" +
		"\"221 B, Baker Street, London\",221,London\n" +
		"10 Downing Street London,10,London\n"

	h, err := Inspect(strings.NewReader(data), "address")
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if h.Rows != 2 {
		t.Fatalf("Rows = %d, want 2", h.Rows)
	}
	if len(h.Labels) != 2 || h.Labels[0] != "BUILDING_NO" || h.Labels[1] != "CITY" {
		t.Fatalf("Labels = %v", h.Labels)
	}
	if h.Columns[0] != "address" {
		t.Fatalf("BOM not stripped: %q", h.Columns[0])
	}
}

func TestInspect_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		column string
		want   error
	}{
		{name: "missing column", data: "text,CITY\nx,y\n", column: "address", want: ErrMissingColumn},
		{name: "single column", data: "address\nx\n", column: "address", want: ErrTooFewColumns},
		{name: "header only", data: "address,CITY\n", column: "address", want: ErrNoRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inspect(strings.NewReader(tt.data), tt.column)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Inspect() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestInspect_Malformed(t *testing.T) {
	if _, err := Inspect(strings.NewReader(""), "address"); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Inspect(strings.NewReader("address,CITY\nx,y,z\n"), "address"); err == nil {
		t.Fatal("expected error for ragged row")
	}
}

func TestInspectFile(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "train.CSV")
	if err := os.WriteFile(good, []byte("address,CITY\nLondon road,London\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := InspectFile(good, "address"); err != nil {
		t.Fatalf("InspectFile() error = %v", err)
	}

	if _, err := InspectFile(filepath.Join(dir, "train.txt"), "address"); err == nil {
		t.Fatal("expected error for non-csv extension")
	}
	if _, err := InspectFile(filepath.Join(dir, "absent.csv"), "address"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

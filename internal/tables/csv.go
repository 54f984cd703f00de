package tables

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// LoadCSV reads a position-independent raw table from a CSV file, the
// same shape internal/repository hands back from a database query
// (§6.1: "modeled here as a read-only collaborator returning three
// tabular inputs" — a file is just another collaborator for it).
func LoadCSV(path string) (RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return RawTable{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return RawTable{}, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	var t RawTable
	t.Columns = header
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return RawTable{}, fmt.Errorf("failed to read row of %s: %w", path, err)
		}
		t.Rows = append(t.Rows, record)
	}
	return t, nil
}

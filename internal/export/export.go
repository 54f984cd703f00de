// Package export writes a solved schedule to the two formats of §6.2
// (long and wide) in CSV, XLSX and PDF, following the same
// headers/values-table pattern and the same library choices the teacher
// uses for its report writers.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/salsaesp/shiftsat/internal/engine"
	"github.com/salsaesp/shiftsat/internal/model"
)

// table is the headers/values pair every writer below consumes,
// mirroring the teacher's reportRow.
type table struct {
	headers []string
	values  [][]string
}

// Long builds the long-format table of §6.2: one row per (worker, day,
// status) assignment.
func Long(result *engine.Result) table {
	t := table{headers: []string{"worker", "day", "status"}}
	rows := append([]engine.Assignment(nil), result.Schedule...)
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Worker != rows[j].Worker {
			return rows[i].Worker < rows[j].Worker
		}
		return rows[i].Day < rows[j].Day
	})
	for _, a := range rows {
		t.values = append(t.values, []string{
			strconv.Itoa(a.Worker),
			strconv.Itoa(a.Day),
			string(a.Status),
		})
	}
	return t
}

// Wide builds the wide-format table of §6.2: column 0 is the worker id,
// columns 1..N are one per horizon day in chronological order.
func Wide(result *engine.Result, horizon *model.Horizon) table {
	byWorkerDay := make(map[int]map[int]model.Status)
	for _, a := range result.Schedule {
		if byWorkerDay[a.Worker] == nil {
			byWorkerDay[a.Worker] = make(map[int]model.Status)
		}
		byWorkerDay[a.Worker][a.Day] = a.Status
	}

	workers := make([]int, 0, len(byWorkerDay))
	for w := range byWorkerDay {
		workers = append(workers, w)
	}
	sort.Ints(workers)

	t := table{headers: append([]string{"worker"}, dayHeaders(horizon)...)}
	for _, w := range workers {
		row := make([]string, 0, len(horizon.Days)+1)
		row = append(row, strconv.Itoa(w))
		for _, d := range horizon.Days {
			s, ok := byWorkerDay[w][d]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, string(s))
		}
		t.values = append(t.values, row)
	}
	return t
}

func dayHeaders(h *model.Horizon) []string {
	headers := make([]string, len(h.Days))
	for i, d := range h.Days {
		headers[i] = strconv.Itoa(d)
	}
	return headers
}

// CSV serializes a table as semicolon-delimited CSV, matching the
// teacher's report writer convention.
func CSV(t table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'
	if err := w.Write(t.headers); err != nil {
		return nil, err
	}
	for _, row := range t.values {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// XLSX serializes a table as a single-sheet spreadsheet.
func XLSX(t table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Schedule"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	for i, h := range t.headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for rowIdx, row := range t.values {
		for colIdx, val := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, val)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PDF renders a table as a landscape A4 grid, truncating long cells.
func PDF(t table, title string) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	numCols := len(t.headers)
	if numCols == 0 {
		numCols = 1
	}
	pageWidth := 277.0
	colWidth := pageWidth / float64(numCols)
	if colWidth > 20 {
		colWidth = 20
	}

	pdf.SetFont("Helvetica", "B", 7)
	for _, h := range t.headers {
		pdf.CellFormat(colWidth, 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 7)
	for _, row := range t.values {
		for i, val := range row {
			if i >= numCols {
				break
			}
			if len(val) > 12 {
				val = val[:9] + "..."
			}
			pdf.CellFormat(colWidth, 5, val, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render schedule PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFiles renders t as baseName.csv, baseName.xlsx and baseName.pdf
// under dir, the one place all three writers are exercised together.
func WriteFiles(t table, dir, baseName, title string) error {
	csvBytes, err := CSV(t)
	if err != nil {
		return fmt.Errorf("failed to render %s.csv: %w", baseName, err)
	}
	xlsxBytes, err := XLSX(t)
	if err != nil {
		return fmt.Errorf("failed to render %s.xlsx: %w", baseName, err)
	}
	pdfBytes, err := PDF(t, title)
	if err != nil {
		return fmt.Errorf("failed to render %s.pdf: %w", baseName, err)
	}

	files := map[string][]byte{
		baseName + ".csv":  csvBytes,
		baseName + ".xlsx": xlsxBytes,
		baseName + ".pdf":  pdfBytes,
	}
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

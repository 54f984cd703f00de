package repository

import (
	"context"
	"fmt"

	"github.com/salsaesp/shiftsat/internal/tables"
)

// LoadCalendar reads the calendar table for one store section, ordered
// by worker then day, returning it as a position-independent RawTable.
func (db *DB) LoadCalendar(ctx context.Context, section string) (tables.RawTable, error) {
	return db.loadRawTable(ctx, fmt.Sprintf(
		`SELECT colaborador, data, ww, wd, tipo_turno, dia_tipo FROM scheduling_calendar WHERE section = $1 ORDER BY colaborador, data`,
	), section)
}

// LoadEmployees reads the employee table for one store section.
func (db *DB) LoadEmployees(ctx context.Context, section string) (tables.RawTable, error) {
	return db.loadRawTable(ctx, `
		SELECT matricula, tipo_contrato, ciclo, l_total, l_dom, l_dom_salsa,
		       c2d, c3d, l_d, cxx, vz, l_res, l_res2
		FROM scheduling_employee WHERE section = $1 ORDER BY matricula`, section)
}

// LoadDemand reads the demand table for one store section.
func (db *DB) LoadDemand(ctx context.Context, section string) (tables.RawTable, error) {
	return db.loadRawTable(ctx, `
		SELECT data, turno, min_turno, max_turno, pess_obj, wday
		FROM scheduling_demand WHERE section = $1 ORDER BY data`, section)
}

// loadRawTable executes a query through the pgx pool and stringifies
// every cell, matching the position-independent, string-addressed shape
// internal/tables expects from any data source (DB, CSV, or test fixture).
func (db *DB) loadRawTable(ctx context.Context, query string, args ...any) (tables.RawTable, error) {
	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return tables.RawTable{}, fmt.Errorf("scheduling data query failed: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = string(f.Name)
	}

	var out tables.RawTable
	out.Columns = columns
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return tables.RawTable{}, fmt.Errorf("scheduling data row scan failed: %w", err)
		}
		row := make([]string, len(values))
		for i, v := range values {
			if v == nil {
				row[i] = ""
				continue
			}
			row[i] = fmt.Sprintf("%v", v)
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return tables.RawTable{}, fmt.Errorf("scheduling data iteration failed: %w", err)
	}
	return out, nil
}

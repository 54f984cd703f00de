package tables_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salsaesp/shiftsat/internal/model"
	"github.com/salsaesp/shiftsat/internal/tables"
)

func TestParseCalendarTable_HappyPath(t *testing.T) {
	raw := tables.RawTable{
		Columns: []string{"colaborador", "data", "ww", "wd", "tipo_turno", "dia_tipo"},
		Rows: [][]string{
			{"101", "2026-01-04", "1", "Sun", "m", "domYf"},
			{"101", "2026-01-05", "1", "Mon", "t", ""},
		},
	}

	rows, warnings, err := tables.ParseCalendarTable(raw)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 2)
	assert.Equal(t, 101, rows[0].Worker)
	assert.Equal(t, "Sun", rows[0].Weekday)
	assert.Equal(t, "domYf", rows[0].DayType)
	assert.Equal(t, "M", rows[0].ShiftLabel, "shift labels are upper-cased")
}

func TestParseCalendarTable_MissingColumn(t *testing.T) {
	raw := tables.RawTable{
		Columns: []string{"colaborador", "data", "ww", "wd", "tipo_turno"},
		Rows:    [][]string{{"101", "2026-01-04", "1", "Sun", "M"}},
	}

	_, _, err := tables.ParseCalendarTable(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dia_tipo")
}

func TestParseCalendarTable_BadDate(t *testing.T) {
	raw := tables.RawTable{
		Columns: []string{"colaborador", "data", "ww", "wd", "tipo_turno", "dia_tipo"},
		Rows:    [][]string{{"101", "not-a-date", "1", "Sun", "M", ""}},
	}

	_, _, err := tables.ParseCalendarTable(raw)
	require.Error(t, err)
}

func TestParseCalendarTable_MissingWeekWarns(t *testing.T) {
	raw := tables.RawTable{
		Columns: []string{"colaborador", "data", "ww", "wd", "tipo_turno", "dia_tipo"},
		Rows:    [][]string{{"101", "2026-01-04", "", "Sun", "M", ""}},
	}

	rows, warnings, err := tables.ParseCalendarTable(raw)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "ww", warnings[0].Column)
	assert.Equal(t, 0, rows[0].Week)
}

func TestParseEmployeeTable_NaNQuotaZeroFilledWithWarning(t *testing.T) {
	raw := tables.RawTable{
		Columns: []string{"matricula", "tipo_contrato", "ciclo", "l_total", "l_dom", "l_dom_salsa", "c2d", "c3d", "l_d", "cxx", "vz", "l_res", "l_res2"},
		Rows: [][]string{
			{"7", "5", "ordinary", "nan", "10", "0", "2", "0", "0", "0", "0", "0", "0"},
		},
	}

	rows, warnings, err := tables.ParseEmployeeTable(raw)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0, rows[0].LTotal)
	require.Len(t, warnings, 1)
	assert.Equal(t, "l_total", warnings[0].Column)
}

func TestParseEmployeeTable_RejectsUnknownContractType(t *testing.T) {
	raw := tables.RawTable{
		Columns: []string{"matricula", "tipo_contrato", "ciclo", "l_total", "l_dom", "l_dom_salsa", "c2d", "c3d", "l_d", "cxx", "vz", "l_res", "l_res2"},
		Rows: [][]string{
			{"7", "3", "ordinary", "0", "0", "0", "0", "0", "0", "0", "0", "0", "0"},
		},
	}

	_, _, err := tables.ParseEmployeeTable(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tipo_contrato")
}

func TestParseEmployeeTable_ToleratesFractionalQuota(t *testing.T) {
	raw := tables.RawTable{
		Columns: []string{"matricula", "tipo_contrato", "ciclo", "l_total", "l_dom", "l_dom_salsa", "c2d", "c3d", "l_d", "cxx", "vz", "l_res", "l_res2"},
		Rows: [][]string{
			{"7", "4", "ordinary", "52.4", "0", "0", "0", "0", "0", "0", "0", "0", "0"},
		},
	}

	rows, _, err := tables.ParseEmployeeTable(raw)
	require.NoError(t, err)
	assert.Equal(t, 52, rows[0].LTotal)
}

func TestParseDemandTable_RoundsFractionalTargets(t *testing.T) {
	raw := tables.RawTable{
		Columns: []string{"data", "turno", "min_turno", "max_turno", "pess_obj", "wday"},
		Rows: [][]string{
			{"2026-01-05", "m", "1.2", "3.6", "2.5", "1"},
		},
	}

	rows, _, err := tables.ParseDemandTable(raw)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, model.Status("M"), rows[0].Shift)
	assert.Equal(t, 1, rows[0].MinWorker)
	assert.Equal(t, 4, rows[0].MaxWorker)
	assert.Equal(t, 3, rows[0].PessObj, "2.5 rounds away from zero per math.Round")
}

func TestRawTable_ColumnIndexIsCaseInsensitive(t *testing.T) {
	raw := tables.RawTable{Columns: []string{"Data", "WW"}}
	idx, ok := raw.ColumnIndex("data")
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = raw.ColumnIndex("missing")
	assert.False(t, ok)
}

func TestRawTable_CellDefensiveAgainstRaggedRows(t *testing.T) {
	raw := tables.RawTable{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]string{{"x"}},
	}
	assert.Equal(t, "x", raw.Cell(0, 0))
	assert.Equal(t, "", raw.Cell(0, 2))
}

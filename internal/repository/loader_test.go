package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salsaesp/shiftsat/internal/tables"
	"github.com/salsaesp/shiftsat/internal/testutil"
)

// cellByName resolves col case-insensitively and returns the cell value,
// failing the test if the column is absent.
func cellByName(t *testing.T, raw tables.RawTable, row int, col string) string {
	t.Helper()
	idx, ok := raw.ColumnIndex(col)
	require.True(t, ok, "column %q not found", col)
	return raw.Cell(row, idx)
}

func TestLoadCalendar_ReturnsOnlyTheRequestedSectionOrderedByWorkerThenDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO scheduling_calendar (section, colaborador, data, ww, wd, tipo_turno, dia_tipo) VALUES
		('store-a', 2, '2026-01-02', 1, 'Fri', 'M', 'normal'),
		('store-a', 1, '2026-01-02', 1, 'Fri', 'T', 'normal'),
		('store-a', 1, '2026-01-01', 1, 'Thu', 'M', 'feriado'),
		('store-b', 1, '2026-01-01', 1, 'Thu', 'M', 'normal')`)
	require.NoError(t, err)

	raw, err := db.LoadCalendar(ctx, "store-a")
	require.NoError(t, err)

	require.Equal(t, []string{"colaborador", "data", "ww", "wd", "tipo_turno", "dia_tipo"}, raw.Columns)
	require.Len(t, raw.Rows, 3)
	assert.Equal(t, "1", cellByName(t, raw, 0, "colaborador"), "worker 1's Jan 1 row sorts before worker 1's Jan 2 row")
	assert.Equal(t, "2026-01-01", cellByName(t, raw, 0, "data")[:10])
	assert.Equal(t, "2", cellByName(t, raw, 2, "colaborador"), "worker 2 sorts after worker 1")
}

func TestLoadEmployees_ReturnsOnlyTheRequestedSectionOrderedByMatricula(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO scheduling_employee (section, matricula, tipo_contrato, ciclo, l_total, l_dom) VALUES
		('store-a', 2, 5, 'ordinary', 24, 12),
		('store-a', 1, 5, 'ordinary', 22, 10),
		('store-b', 1, 5, 'ordinary', 22, 10)`)
	require.NoError(t, err)

	raw, err := db.LoadEmployees(ctx, "store-a")
	require.NoError(t, err)

	require.Len(t, raw.Rows, 2)
	assert.Equal(t, "1", cellByName(t, raw, 0, "matricula"))
	assert.Equal(t, "2", cellByName(t, raw, 1, "matricula"))
}

func TestLoadDemand_ReturnsOnlyTheRequestedSectionOrderedByDate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	_, err := db.Pool.Exec(ctx, `
		INSERT INTO scheduling_demand (section, data, turno, min_turno, max_turno, pess_obj, wday) VALUES
		('store-a', '2026-01-02', 'M', 1, 3, 2, 5),
		('store-a', '2026-01-01', 'M', 1, 3, 2, 4),
		('store-b', '2026-01-01', 'M', 1, 3, 2, 4)`)
	require.NoError(t, err)

	raw, err := db.LoadDemand(ctx, "store-a")
	require.NoError(t, err)

	require.Len(t, raw.Rows, 2)
	assert.Equal(t, "2026-01-01", cellByName(t, raw, 0, "data")[:10])
	assert.Equal(t, "2026-01-02", cellByName(t, raw, 1, "data")[:10])
}

func TestLoadCalendar_UnknownSectionReturnsEmptyTable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	raw, err := db.LoadCalendar(ctx, "nonexistent-section")
	require.NoError(t, err)
	assert.Empty(t, raw.Rows)
}

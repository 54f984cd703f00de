package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salsaesp/shiftsat/internal/engine"
	"github.com/salsaesp/shiftsat/internal/export"
	"github.com/salsaesp/shiftsat/internal/model"
)

func sampleResult() *engine.Result {
	return &engine.Result{
		Schedule: []engine.Assignment{
			{Worker: 2, Day: 1, Status: model.StatusMorning},
			{Worker: 1, Day: 2, Status: model.StatusAfternoon},
			{Worker: 1, Day: 1, Status: model.StatusOff},
		},
	}
}

func TestLong_SortsByWorkerThenDay(t *testing.T) {
	csvBytes, err := export.CSV(export.Long(sampleResult()))
	require.NoError(t, err)
	got := string(csvBytes)

	assert.Equal(t,
		"worker;day;status\n1;1;L\n1;2;T\n2;1;M\n",
		got,
	)
}

func TestWide_OneRowPerWorkerOneColumnPerDay(t *testing.T) {
	h := model.NewHorizon(2026, []int{1, 2, 3}, 4, map[int][]int{1: {1, 2, 3}}, nil, nil, nil)
	csvBytes, err := export.CSV(export.Wide(sampleResult(), h))
	require.NoError(t, err)
	got := string(csvBytes)

	assert.Equal(t,
		"worker;1;2;3\n1;L;T;\n2;M;;\n",
		got,
	)
}

func TestXLSX_ProducesNonEmptySpreadsheet(t *testing.T) {
	data, err := export.XLSX(export.Long(sampleResult()))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	// xlsx files are zip archives.
	assert.Equal(t, []byte("PK"), data[:2])
}

func TestPDF_ProducesNonEmptyDocument(t *testing.T) {
	data, err := export.PDF(export.Long(sampleResult()), "Schedule (long)")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, []byte("%PDF"), data[:4])
}

func TestWriteFiles_WritesAllThreeFormats(t *testing.T) {
	dir := t.TempDir()
	err := export.WriteFiles(export.Long(sampleResult()), dir, "schedule", "Schedule (long)")
	require.NoError(t, err)

	for _, ext := range []string{".csv", ".xlsx", ".pdf"} {
		info, err := os.Stat(filepath.Join(dir, "schedule"+ext))
		require.NoError(t, err, "expected schedule%s to exist", ext)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestWriteFiles_FailsOnUnwritableDir(t *testing.T) {
	err := export.WriteFiles(export.Long(sampleResult()), filepath.Join(t.TempDir(), "does-not-exist"), "schedule", "Schedule")
	require.Error(t, err)
}

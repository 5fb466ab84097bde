package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"patient-record-manager/internal/delivery/dto"
	"patient-record-manager/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(dir, "patients.sqlite"))
	t.Setenv("SAVED_QUERIES_BACKEND", "file")
	t.Setenv("SAVED_QUERIES_PATH", filepath.Join(dir, "saved.json"))
	t.Setenv("APP_ENV", "test")
	return dir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	root := NewRootCommand()
	root.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.env")}, args...))
	return root.Execute()
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := NewRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "seed", "query", "dashboard"}, names)
}

func TestSeedThenExport(t *testing.T) {
	dir := setupEnv(t)

	require.NoError(t, run(t, "seed", "--count", "5"))

	out := filepath.Join(dir, "count.csv")
	require.NoError(t, run(t, "query", "SELECT COUNT(*) AS n FROM patients", "--export", "csv", "-o", out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "n\n\"5\"", string(data))
}

func TestSeedCommand_RejectsCountAboveMax(t *testing.T) {
	dir := setupEnv(t)

	err := run(t, "seed", "--count", strconv.Itoa(dto.MaxSeedCount+1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--count must be between 0 and 1000")

	_, statErr := os.Stat(filepath.Join(dir, "patients.sqlite"))
	assert.True(t, os.IsNotExist(statErr))

	assert.Error(t, run(t, "seed", "--count", "-5"))
}

func TestQueryCommand_Errors(t *testing.T) {
	setupEnv(t)

	err := run(t, "query", "SELEKT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax error")

	assert.Error(t, run(t, "query"))
	assert.Error(t, run(t, "query", "SELECT 1", "--export", "pdf"))
}

func TestDashboardCommand(t *testing.T) {
	setupEnv(t)
	require.NoError(t, run(t, "seed"))
	assert.NoError(t, run(t, "dashboard"))
}

func TestWriteResult(t *testing.T) {
	result := &dto.QueryResultResponse{
		Columns: []dto.ColumnResponse{{Name: "first_name"}, {Name: "email"}},
		Rows: []entity.Row{{
			Columns: []string{"first_name", "email"},
			Values:  []entity.Value{entity.TextValue("Asha"), entity.NullValue()},
		}},
		RowCount: 1,
	}

	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, result))
	assert.Contains(t, buf.String(), "first_name")
	assert.Contains(t, buf.String(), "Asha")
	assert.Contains(t, buf.String(), "NULL")
	assert.Contains(t, buf.String(), "1 row(s)")
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc"
	"github.com/ukaji3/gridcalc-go/pkg/gridcalc/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEditAndInspect(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "sheet.json")

	out, err := execute(t, "set", doc, "A1", "2")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	out, err = execute(t, "set", doc, "A2", "=A1*3")
	require.NoError(t, err)
	assert.Equal(t, "6\n", out)

	out, err = execute(t, "eval", doc, "=SUM(A1:A2)")
	require.NoError(t, err)
	assert.Equal(t, "8\n", out)

	out, err = execute(t, "show", doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"range":"A1:A2","rows":[{"r":1,"c":{"A":2}},{"r":2,"c":{"A":6}}]}`, out)

	out, err = execute(t, "stats", doc, "A1:B2")
	require.NoError(t, err)
	var summary map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 4.0, summary["selected_count"])
	assert.Equal(t, 8.0, summary["sum"])
	assert.Equal(t, 4.0, summary["average"])

	out, err = execute(t, "refs", doc, "A1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"cell":"A1","precedents":[],"dependents":["A2"]}`, out)

	_, err = execute(t, "clear", doc, "A1")
	require.NoError(t, err)
	out, err = execute(t, "show", doc, "A1:A2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"range":"A1:A2","rows":[{"r":2,"c":{"A":0}}]}`, out)
}

func TestStyle(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "sheet.json")

	_, err := execute(t, "style", doc, "A1:B1", "--bold", "--align", "center", "--border", "top,left")
	require.NoError(t, err)

	session, err := gridcalc.NewSession(mustLoad(t, doc), gridcalc.DefaultOptions())
	require.NoError(t, err)
	for _, label := range []string{"A1", "B1"} {
		cell, ok := session.Store().Lookup(label)
		require.True(t, ok, label)
		require.NotNil(t, cell.Style)
		assert.True(t, cell.Style.Bold)
		assert.True(t, cell.Style.BorderTop)
		assert.True(t, cell.Style.BorderLeft)
		assert.EqualValues(t, "center", cell.Style.TextAlign)
	}

	_, err = execute(t, "style", doc, "A1", "--align", "middle")
	assert.Error(t, err)
	_, err = execute(t, "style", doc, "A1")
	assert.Error(t, err)
}

func TestMissingDocument(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "missing.json")
	for _, args := range [][]string{
		{"eval", doc, "=1+1"},
		{"show", doc},
		{"clear", doc, "A1"},
		{"stats", doc, "A1"},
		{"refs", doc, "A1"},
	} {
		_, err := execute(t, args...)
		assert.True(t, errors.Is(err, gridcalc.ErrFileNotFound), "%v: %v", args, err)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "sheet.json")
	book := filepath.Join(dir, "book.xlsx")
	copied := filepath.Join(dir, "copy.json")

	_, err := execute(t, "set", doc, "B2", "5")
	require.NoError(t, err)
	_, err = execute(t, "set", doc, "B3", "=B2*2")
	require.NoError(t, err)

	_, err = execute(t, "export", doc, "-o", book, "--sheet", "Data")
	require.NoError(t, err)
	_, err = execute(t, "import", book, "-o", copied)
	require.NoError(t, err)

	out, err := execute(t, "eval", copied, "=B3+1")
	require.NoError(t, err)
	assert.Equal(t, "11\n", out)

	out, err = execute(t, "import", book)
	require.NoError(t, err)
	var wb map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &wb))
	assert.Equal(t, "book.xlsx", wb["book_name"])
	assert.Equal(t, []any{"Data"}, wb["sheet_names"])
}

func TestInvalidLogLevel(t *testing.T) {
	doc := filepath.Join(t.TempDir(), "sheet.json")
	_, err := execute(t, "--log-level", "loud", "set", doc, "A1", "1")
	assert.Error(t, err)
}

func mustLoad(t *testing.T, path string) models.SheetState {
	t.Helper()
	state, err := gridcalc.Load(context.Background(), path)
	require.NoError(t, err)
	return state
}

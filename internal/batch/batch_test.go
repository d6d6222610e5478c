package batch_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rezonia/brdoc/internal/batch"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadValues_Lines(t *testing.T) {
	path := writeFile(t, "values.txt", "529.982.247-25\n\n  23.106.535/0001-47  \n")

	values, err := batch.ReadValues(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"529.982.247-25", "23.106.535/0001-47"}, values)
}

func TestReadValues_CSV(t *testing.T) {
	path := writeFile(t, "values.csv", "document,owner\n52998224725,Ana\n23106535000147,Acme\n,empty\n")

	values, err := batch.ReadValues(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"52998224725", "23106535000147"}, values)
}

func TestReadValues_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "document"))
	require.NoError(t, f.SetCellValue(sheet, "A2", "52998224725"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "ignored"))
	require.NoError(t, f.SetCellValue(sheet, "A3", "23.106.535/0001-47"))

	path := filepath.Join(t.TempDir(), "values.xlsx")
	require.NoError(t, f.SaveAs(path))

	values, err := batch.ReadValues(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"52998224725", "23.106.535/0001-47"}, values)

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	values, err = batch.ReadXLSX(file)
	require.NoError(t, err)
	assert.Len(t, values, 2)
}

func TestReadValues_FirstRowWithDigitsKept(t *testing.T) {
	values, err := batch.ReadLines(strings.NewReader("52998224725\n04748677732"))
	require.NoError(t, err)
	assert.Equal(t, []string{"52998224725", "04748677732"}, values)
}

func TestReadValues_MissingFile(t *testing.T) {
	_, err := batch.ReadValues(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = batch.ReadValues(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}

func TestReadCSV_Malformed(t *testing.T) {
	_, err := batch.ReadCSV(strings.NewReader("\"unterminated\n"))
	assert.Error(t, err)
}

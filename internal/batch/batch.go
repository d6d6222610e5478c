// Package batch reads lists of values to validate from spreadsheets, CSV and
// plain text files.
package batch

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadValues reads the values held in path. Spreadsheets and CSV files
// contribute their first column, anything else one value per line. Blank
// entries are skipped, and so is a first row without digits (a header).
func ReadValues(path string) ([]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
		}
		defer f.Close()
		return readSheet(f)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(file)
	}
	return ReadLines(file)
}

// ReadXLSX reads the first column of the first sheet of a workbook.
func ReadXLSX(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()
	return readSheet(f)
}

func readSheet(f *excelize.File) ([]string, error) {
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.New("spreadsheet has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	var values []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		values = collect(values, i, row[0])
	}
	return values, nil
}

// ReadCSV reads the first column of a CSV stream.
func ReadCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var values []string
	for i := 0; ; i++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		values = collect(values, i, record[0])
	}
	return values, nil
}

// ReadLines reads one value per line.
func ReadLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)

	var values []string
	for i := 0; scanner.Scan(); i++ {
		values = collect(values, i, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return values, nil
}

func collect(values []string, row int, cell string) []string {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return values
	}
	if row == 0 && !hasDigit(cell) {
		return values
	}
	return append(values, cell)
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

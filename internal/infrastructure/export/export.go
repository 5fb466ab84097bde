package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"patient-record-manager/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

const (
	filenameBase = "query-results"
	sheetName    = "Query Results"
)

// ParseFormat accepts a case-insensitive format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

func (f Format) Filename() string {
	return filenameBase + "." + string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// Render encodes result in the given format.
func Render(f Format, result *entity.QueryResult) ([]byte, error) {
	if result == nil {
		result = &entity.QueryResult{}
	}
	switch f {
	case FormatCSV:
		return []byte(CSV(result)), nil
	case FormatJSON:
		return JSON(result)
	case FormatXLSX:
		return XLSX(result)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

// CSV renders the header line followed by one line per row. Every non-null
// cell is quoted with inner quotes doubled, NULL is an empty field and there
// is no trailing newline.
func CSV(result *entity.QueryResult) string {
	lines := make([]string, 0, len(result.Rows)+1)
	lines = append(lines, strings.Join(result.ColumnNames(), ","))

	for _, row := range result.Rows {
		cells := make([]string, len(result.Columns))
		for i := range result.Columns {
			if i >= len(row.Values) || row.Values[i].IsNull() {
				continue
			}
			cells[i] = `"` + strings.ReplaceAll(row.Values[i].String(), `"`, `""`) + `"`
		}
		lines = append(lines, strings.Join(cells, ","))
	}
	return strings.Join(lines, "\n")
}

// JSON renders the rows as a two-space indented array of objects.
func JSON(result *entity.QueryResult) ([]byte, error) {
	rows := result.Rows
	if rows == nil {
		rows = []entity.Row{}
	}
	return json.MarshalIndent(rows, "", "  ")
}

// XLSX renders a single-sheet workbook with a bold, frozen header row.
func XLSX(result *entity.QueryResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, name := range result.ColumnNames() {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for r, row := range result.Rows {
		for c, v := range row.Values {
			if v.IsNull() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(v)); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze header: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(v entity.Value) interface{} {
	switch v.Kind() {
	case entity.KindInteger, entity.KindReal, entity.KindBool:
		return v.Interface()
	default:
		return v.String()
	}
}

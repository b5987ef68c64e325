// Package export renders tabular reports as XLSX workbooks.
package export

import (
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
)

const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_\-]+`)

// Sheet is one worksheet: a bold header row followed by data rows.
type Sheet struct {
	Name    string
	Title   []string // optional lines written above the header
	Headers []string
	Rows    [][]interface{}
	// Totals is an optional bold row appended after the data.
	Totals []interface{}
}

// NewWorkbook builds a workbook with one worksheet per Sheet, in order.
func NewWorkbook(sheets ...Sheet) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("export.NewWorkbook.Style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export.NewWorkbook.Style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.Name); err != nil {
				return nil, fmt.Errorf("export.NewWorkbook.SetSheetName: %w", err)
			}
		} else if _, err := f.NewSheet(sh.Name); err != nil {
			return nil, fmt.Errorf("export.NewWorkbook.NewSheet: %w", err)
		}
		if err := writeSheet(f, sh, headerStyle, boldStyle); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sh Sheet, headerStyle, boldStyle int) error {
	row := 1
	for _, line := range sh.Title {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(sh.Name, cell, line); err != nil {
			return fmt.Errorf("export.writeSheet.Title: %w", err)
		}
		row++
	}
	if len(sh.Title) > 0 {
		row++ // blank spacer
	}

	if len(sh.Headers) > 0 {
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(sh.Headers), row)
		headers := make([]interface{}, len(sh.Headers))
		for i, h := range sh.Headers {
			headers[i] = h
		}
		if err := f.SetSheetRow(sh.Name, start, &headers); err != nil {
			return fmt.Errorf("export.writeSheet.Headers: %w", err)
		}
		if err := f.SetCellStyle(sh.Name, start, end, headerStyle); err != nil {
			return fmt.Errorf("export.writeSheet.HeaderStyle: %w", err)
		}
		row++
	}

	for _, values := range sh.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := values
		if err := f.SetSheetRow(sh.Name, cell, &values); err != nil {
			return fmt.Errorf("export.writeSheet.Row: %w", err)
		}
		row++
	}

	if len(sh.Totals) > 0 {
		start, _ := excelize.CoordinatesToCellName(1, row)
		end, _ := excelize.CoordinatesToCellName(len(sh.Totals), row)
		totals := sh.Totals
		if err := f.SetSheetRow(sh.Name, start, &totals); err != nil {
			return fmt.Errorf("export.writeSheet.Totals: %w", err)
		}
		if err := f.SetCellStyle(sh.Name, start, end, boldStyle); err != nil {
			return fmt.Errorf("export.writeSheet.TotalsStyle: %w", err)
		}
	}

	if n := len(sh.Headers); n > 0 {
		last, _ := excelize.ColumnNumberToName(n)
		if err := f.SetColWidth(sh.Name, "A", last, 16); err != nil {
			return fmt.Errorf("export.writeSheet.ColWidth: %w", err)
		}
	}
	return nil
}

// Filename builds a download name like "Floating_Trips_2024-05-01.xlsx".
func Filename(base string, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", unsafeFileChars.ReplaceAllString(base, "_"), at.Format("2006-01-02"))
}

// Attach writes the workbook as a file download.
func Attach(c echo.Context, f *excelize.File, filename string) error {
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("export.Attach: %w", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, ContentTypeXLSX, buf.Bytes())
}

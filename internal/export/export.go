// Package export writes business lists to spreadsheet files.
package export

import (
	"fmt"
	"io"
	"os"

	"fairprice/backend/internal/config"
	"fairprice/backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const SheetName = "착한업소"

// Columns shown in the business table, in order.
var Columns = []string{config.ColumnName, config.ColumnCategory, "자치구", config.ColumnPhone}

func row(b models.Business) []interface{} {
	return []interface{}{b.Name, b.Category, b.District, b.Phone}
}

// WriteXLSX writes list as a single-sheet workbook with a header row.
func WriteXLSX(w io.Writer, list []models.Business) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i, b := range list {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(b)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}

// SaveXLSX is WriteXLSX to a new file at path.
func SaveXLSX(path string, list []models.Business) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteXLSX(out, list); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

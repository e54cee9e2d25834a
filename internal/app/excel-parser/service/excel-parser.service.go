package excel_parser_service

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/init-pkg/menu-import/domain/app"

	"github.com/xuri/excelize/v2"
)

var ErrUnreadableFile = errors.New("the file could not be read as a spreadsheet")

type ExcelParserService struct {
	log *slog.Logger
}

var _ app.ExcelParserService = &ExcelParserService{}

func New(log *slog.Logger) *ExcelParserService {
	return &ExcelParserService{log}
}

// Parse decodes the first sheet of the workbook. Other sheets are ignored.
func (this *ExcelParserService) Parse(file []byte) (*app.ParsedSheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		this.log.Warn("workbook has no sheets")
		return &app.ParsedSheet{}, nil
	}
	sheet := sheets[0]

	grid, err := getFilledGrid(f, sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrUnreadableFile, sheet, err)
	}

	this.log.Info("sheet decoded",
		"sheet", sheet,
		"sheetsIgnored", len(sheets)-1,
		"rows", len(grid),
		"usableRows", grid.UsableRows())

	return &app.ParsedSheet{SheetName: sheet, Grid: grid}, nil
}

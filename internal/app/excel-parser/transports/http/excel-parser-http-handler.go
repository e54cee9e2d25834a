package excel_parser_http_handler

import (
	"errors"
	"io"

	"github.com/init-pkg/menu-import/domain/app"
	"github.com/init-pkg/menu-import/domain/dtos"
	excel_parser_service "github.com/init-pkg/menu-import/internal/app/excel-parser/service"
	menu_classifier "github.com/init-pkg/menu-import/internal/app/menu-import/classifier"

	"github.com/gofiber/fiber/v3"
)

type ExcelParserHttpHandler struct {
	service app.ExcelParserService
}

func New(service app.ExcelParserService) *ExcelParserHttpHandler {
	return &ExcelParserHttpHandler{service}
}

func (this *ExcelParserHttpHandler) Register(mainApp *fiber.App) {
	var app = mainApp.Group("/excel-parsers")

	app.Post("/inspect", this.inspect)
}

// inspect decodes an uploaded sheet and shows the per-column role scores and
// the mapping they lead to. Nothing is stored.
func (this *ExcelParserHttpHandler) inspect(fctx fiber.Ctx) error {
	fh, err := fctx.FormFile("file")
	if err != nil {
		return fctx.Status(fiber.StatusBadRequest).JSON(dtos.ErrorResponse{Error: "file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return fctx.Status(fiber.StatusBadRequest).JSON(dtos.ErrorResponse{Error: "file could not be read"})
	}
	defer f.Close()

	file, err := io.ReadAll(f)
	if err != nil {
		return fctx.Status(fiber.StatusBadRequest).JSON(dtos.ErrorResponse{Error: "file could not be read"})
	}

	sheet, err := this.service.Parse(file)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, excel_parser_service.ErrUnreadableFile) {
			status = fiber.StatusUnprocessableEntity
		}
		return fctx.Status(status).JSON(dtos.ErrorResponse{Error: err.Error()})
	}

	return fctx.Status(fiber.StatusOK).JSON(inspectResponse(sheet))
}

func inspectResponse(sheet *app.ParsedSheet) dtos.ExcelInspectResponse {
	header := sheet.Grid.Header()
	res := dtos.ExcelInspectResponse{
		SheetName:  sheet.SheetName,
		UsableRows: sheet.Grid.UsableRows(),
		Header:     make([]string, len(header)),
	}
	for i, c := range header {
		res.Header[i] = c.String()
	}

	scores := menu_classifier.Score(sheet.Grid)
	res.Columns = make([]dtos.ColumnScoreResponse, len(scores))
	for c := range scores {
		col := dtos.ColumnScoreResponse{Column: c, Scores: make(map[string]int)}
		if c < len(header) {
			col.Header = header[c].String()
		}
		for _, role := range menu_classifier.AllRoles() {
			if s := scores.Of(c, role); s > 0 {
				col.Scores[role.String()] = s
			}
		}
		res.Columns[c] = col
	}

	a, err := menu_classifier.Classify(sheet.Grid)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Assignment = make(map[string]int, len(a))
	for role, c := range a {
		res.Assignment[role.String()] = c
	}
	return res
}

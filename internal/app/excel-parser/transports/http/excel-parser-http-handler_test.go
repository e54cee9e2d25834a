package excel_parser_http_handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/init-pkg/menu-import/domain/app"
	"github.com/init-pkg/menu-import/domain/dtos"
	excel_parser_service "github.com/init-pkg/menu-import/internal/app/excel-parser/service"
	menu_classifier "github.com/init-pkg/menu-import/internal/app/menu-import/classifier"

	"github.com/gofiber/fiber/v3"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	wb := excelize.NewFile()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := wb.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func inspectRequest(t *testing.T, file []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "menu.xlsx")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(file); err != nil {
		t.Fatalf("Write: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/excel-parsers/inspect", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestApp() *fiber.App {
	mainApp := fiber.New()
	parser := excel_parser_service.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	New(parser).Register(mainApp)
	return mainApp
}

func TestInspect(t *testing.T) {
	file := workbook(t, [][]interface{}{
		{"Category", "Item", "Price"},
		{"Burgers", "Beef Burger", 35},
		{"Pizza", "Margherita", 40},
	})

	res, err := newTestApp().Test(inspectRequest(t, file))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}

	var body dtos.ExcelInspectResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.UsableRows != 3 || len(body.Columns) != 3 {
		t.Errorf("usable rows %d, columns %d", body.UsableRows, len(body.Columns))
	}
	if body.Columns[2].Scores["price"] <= body.Columns[2].Scores["name_en"] {
		t.Errorf("price column scores = %v", body.Columns[2].Scores)
	}
	if body.Assignment["price"] != 2 || body.Assignment["name_en"] != 1 || body.Error != "" {
		t.Errorf("assignment = %v, error = %q", body.Assignment, body.Error)
	}
}

func TestInspectReportsDetectionError(t *testing.T) {
	resp := inspectResponse(&app.ParsedSheet{
		SheetName: "Sheet1",
		Grid:      menu_classifier.NormalizeRows([][]any{{"Item", "Notes"}, {"Tea", "hot"}}),
	})
	if resp.Error == "" || resp.Assignment != nil {
		t.Errorf("response = %+v, want a detection error", resp)
	}
	if resp.Header[1] != "Notes" {
		t.Errorf("header = %q", resp.Header)
	}
}

func TestInspectRejectsGarbage(t *testing.T) {
	res, err := newTestApp().Test(inspectRequest(t, []byte("not a workbook")))
	if err != nil {
		t.Fatalf("Test: %v", err)
	}
	if res.StatusCode != fiber.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", res.StatusCode)
	}
}

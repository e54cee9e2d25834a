package menu_import_http_handler

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/init-pkg/menu-import/domain/app"
	"github.com/init-pkg/menu-import/domain/dtos"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

type MenuImportHttpHandler struct {
	log      *slog.Logger
	service  app.MenuImportService
	search   app.MenuSearchIndex
	validate *validator.Validate
}

func New(log *slog.Logger, service app.MenuImportService, search app.MenuSearchIndex) *MenuImportHttpHandler {
	return &MenuImportHttpHandler{
		log:      log,
		service:  service,
		search:   search,
		validate: validator.New(),
	}
}

func (this *MenuImportHttpHandler) Register(mainApp *fiber.App) {
	var imports = mainApp.Group("/menu-imports")

	imports.Post("/preview", this.preview)
	imports.Post("/:id/confirm", this.confirm)
	imports.Post("/:id/reject", this.reject)

	mainApp.Get("/menu-items/search", this.searchItems)
}

func (this *MenuImportHttpHandler) preview(fctx fiber.Ctx) error {
	var dto = dtos.MenuImportPreviewRequest{BranchId: fctx.FormValue("branch_id")}
	if err := this.validate.Struct(dto); err != nil {
		return badRequest(fctx, "branch_id is required")
	}

	fh, err := fctx.FormFile("file")
	if err != nil {
		return badRequest(fctx, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(fctx, "file could not be read")
	}
	defer f.Close()

	file, err := io.ReadAll(f)
	if err != nil {
		return badRequest(fctx, "file could not be read")
	}

	preview, err := this.service.Preview(fctx.Context(), app.PreviewRequest{
		BranchID: dto.BranchId,
		Filename: fh.Filename,
		File:     file,
	})
	if err != nil {
		return writeError(fctx, this.log, err)
	}

	return fctx.Status(fiber.StatusOK).JSON(preview)
}

func (this *MenuImportHttpHandler) confirm(fctx fiber.Ctx) error {
	res, err := this.service.Confirm(fctx.Context(), fctx.Params("id"))
	if err != nil {
		return writeError(fctx, this.log, err)
	}
	return fctx.Status(fiber.StatusCreated).JSON(res)
}

func (this *MenuImportHttpHandler) reject(fctx fiber.Ctx) error {
	if err := this.service.Reject(fctx.Context(), fctx.Params("id")); err != nil {
		return writeError(fctx, this.log, err)
	}
	return fctx.SendStatus(fiber.StatusNoContent)
}

func (this *MenuImportHttpHandler) searchItems(fctx fiber.Ctx) error {
	var dto = dtos.MenuItemSearchRequest{
		Query:    fctx.Query("q"),
		BranchId: fctx.Query("branch_id"),
	}
	if raw := fctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(fctx, "limit must be a number")
		}
		dto.Limit = limit
	}
	if err := this.validate.Struct(dto); err != nil {
		return badRequest(fctx, "q is required and limit must be between 1 and 100")
	}

	hits, err := this.search.Search(fctx.Context(), dto.BranchId, dto.Query, dto.Limit)
	if err != nil {
		return writeError(fctx, this.log, err)
	}
	return fctx.Status(fiber.StatusOK).JSON(fiber.Map{"items": hits})
}

package menu_import_http_handler

import (
	"errors"
	"log/slog"

	"github.com/init-pkg/menu-import/domain/app"
	"github.com/init-pkg/menu-import/domain/dtos"
	excel_parser_service "github.com/init-pkg/menu-import/internal/app/excel-parser/service"
	menu_classifier "github.com/init-pkg/menu-import/internal/app/menu-import/classifier"

	"github.com/gofiber/fiber/v3"
)

// statusFor maps service errors to HTTP statuses. Unknown errors are 500.
func statusFor(err error) int {
	var importErr *app.ImportError
	switch {
	case errors.Is(err, excel_parser_service.ErrUnreadableFile),
		errors.Is(err, menu_classifier.ErrInsufficientData),
		errors.Is(err, menu_classifier.ErrColumnDetection),
		errors.Is(err, menu_classifier.ErrEmptyExtraction):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, app.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, app.ErrRejected):
		return fiber.StatusConflict
	case errors.Is(err, app.ErrSearchDisabled):
		return fiber.StatusServiceUnavailable
	case errors.As(err, &importErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func writeError(fctx fiber.Ctx, log *slog.Logger, err error) error {
	status := statusFor(err)
	body := dtos.ErrorResponse{Error: err.Error()}

	var importErr *app.ImportError
	if errors.As(err, &importErr) {
		validated := importErr.Validated
		body.Stage = string(importErr.Stage)
		body.Validated = &validated
	}

	if status == fiber.StatusInternalServerError {
		log.Error("request failed", "path", fctx.Path(), "err", err)
		body.Error = "internal error"
	} else {
		log.Info("request rejected", "path", fctx.Path(), "status", status, "err", err)
	}

	return fctx.Status(status).JSON(body)
}

func badRequest(fctx fiber.Ctx, msg string) error {
	return fctx.Status(fiber.StatusBadRequest).JSON(dtos.ErrorResponse{Error: msg})
}

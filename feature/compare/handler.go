package compare

import (
	"errors"

	"tablediff/core/logger"
	"tablediff/core/reconcile"
	"tablediff/core/source"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for table comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the compare routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/compare")
	group.Post("/", h.HandleCompare)
	group.Post("/columns", h.HandleColumns)
}

// HandleCompare reconciles the two requested tables.
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	l.Info("Comparing tables", zap.String("file1", req.File1), zap.String("file2", req.File2), zap.Strings("key", req.Key))

	resp, err := h.service.Compare(c.UserContext(), req)
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Comparison finished", zap.Int("differences", resp.Summary.Total))
	return c.JSON(resp)
}

// HandleColumns reports how the columns of both tables would be treated.
func (h *Handler) HandleColumns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	columns, err := h.service.Columns(c.UserContext(), req)
	if err != nil {
		return h.fail(c, l, err)
	}
	return c.JSON(fiber.Map{"columns": columns})
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		l.Error("Comparison failed", zap.Error(err))
	} else {
		l.Warn("Comparison rejected", zap.Error(err), zap.Int("status", status))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// StatusFor maps a comparison error onto an HTTP status code.
func StatusFor(err error) int {
	var loadErr *source.TableLoadError
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, reconcile.ErrUnknownKeyColumn),
		errors.Is(err, reconcile.ErrNoKeyColumns):
		return fiber.StatusBadRequest
	case errors.As(err, &loadErr):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

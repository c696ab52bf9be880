package cleaner

import (
	"errors"
	"strings"

	"bibcleaner/core/bibtex"
	"bibcleaner/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for cleaning and searching.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the cleaner routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/clean", h.HandleClean)
	app.Get("/search", h.HandleSearch)
}

// HandleClean cleans an uploaded BibTeX file.
// @Summary Clean BibTeX
// @Description Looks up every record of the uploaded BibTeX file on DBLP and returns the cleaned file and the cross-referenced venues. Ambiguous matches are settled by the server's choice policy.
// @Tags cleaner
// @Accept plain
// @Produce json
// @Param source query string false "Name of the source file, used in headers and object names" default(upload.bib)
// @Param upload query boolean false "Upload both outputs to object storage"
// @Param body body string true "BibTeX document"
// @Success 200 {object} CleanResponse
// @Failure 400 {object} map[string]interface{} "Malformed BibTeX"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /clean [post]
func (h *Handler) HandleClean(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	source := c.Query("source", "upload.bib")
	upload := c.QueryBool("upload", false)

	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "empty body"})
	}

	l.Info("Cleaning uploaded file", zap.String("source", source), zap.Int("bytes", len(body)))
	resp, err := h.service.Clean(c.UserContext(), source, body, upload)
	if err != nil {
		var pe *bibtex.ParseError
		switch {
		case errors.As(err, &pe):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": pe.Msg, "line": pe.Line})
		case errors.Is(err, ErrUploadDisabled):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Clean failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}

// HandleSearch runs a single DBLP search.
// @Summary Search DBLP
// @Description Normalizes the query and returns the locators of the matching publications in index order.
// @Tags cleaner
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} map[string]string "Missing query"
// @Failure 502 {object} map[string]string "Index unavailable"
// @Router /search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query parameter q is required"})
	}

	resp, err := h.service.Search(c.UserContext(), q)
	if err != nil {
		l.Error("Search failed", zap.String("query", q), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(resp)
}

package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/garmentworks/pattern-tracker/internal/api/metrics"
	"github.com/garmentworks/pattern-tracker/internal/core/domain"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

// maxUploadBytes caps a single pattern or chat image upload at 32 MiB.
const maxUploadBytes = 32 << 20

// PatternHandler serves pattern upload, listing, download and deletion.
type PatternHandler struct {
	patterns ports.PatternService
	log      zerolog.Logger
}

// NewPatternHandler wires a PatternHandler.
func NewPatternHandler(patterns ports.PatternService, log zerolog.Logger) *PatternHandler {
	return &PatternHandler{patterns: patterns, log: log}
}

// Upload stores one pattern file into a stage slot.
//
//	@Summary	Upload a pattern file
//	@Tags		patterns
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id		path		string	true	"order id"
//	@Param		stage	formData	string	true	"review stage"
//	@Param		slot	formData	int		true	"slot number, 1 to 5"
//	@Param		file	formData	file	true	"pattern file"
//	@Success	201		{object}	domain.Pattern
//	@Security	BearerAuth
//	@Router		/orders/{id}/patterns [post]
func (h *PatternHandler) Upload(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	stage := c.FormValue("stage")
	slot, err := strconv.Atoi(c.FormValue("slot"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "slot must be a number")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	pattern, err := h.patterns.Upload(c.Request().Context(), actor, c.Param("id"), ports.UploadPatternInput{
		Stage:    domain.Stage(stage),
		Slot:     slot,
		Filename: fileHeader.Filename,
		Content:  src,
	})
	if err != nil {
		return err
	}

	metrics.PatternsUploadedTotal.WithLabelValues(stage).Inc()
	h.log.Info().
		Str("pattern_id", pattern.ID).
		Str("order_id", pattern.OrderID).
		Str("stage", stage).
		Int("slot", slot).
		Str("uploaded_by", actor.ID).
		Msg("pattern uploaded")

	return c.JSON(http.StatusCreated, pattern)
}

// List returns the pattern records of an order, optionally filtered by stage.
//
//	@Summary	List an order's patterns
//	@Tags		patterns
//	@Produce	json
//	@Param		id		path	string	true	"order id"
//	@Param		stage	query	string	false	"filter by stage"
//	@Success	200		{array}	domain.Pattern
//	@Security	BearerAuth
//	@Router		/orders/{id}/patterns [get]
func (h *PatternHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	list, err := h.patterns.List(c.Request().Context(), actor, c.Param("id"), domain.Stage(c.QueryParam("stage")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Download streams a stored pattern file back as an attachment.
//
//	@Summary	Download a pattern file
//	@Tags		patterns
//	@Produce	application/octet-stream
//	@Param		id	path	string	true	"pattern id"
//	@Success	200	{file}	binary
//	@Failure	404	{object}	map[string]string
//	@Security	BearerAuth
//	@Router		/patterns/{id}/download [get]
func (h *PatternHandler) Download(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	dl, err := h.patterns.Download(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(dl.Filename)))
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, dl.Content)
}

// Delete removes a pattern record and its stored file.
//
//	@Summary	Delete a pattern
//	@Tags		patterns
//	@Param		id	path	string	true	"pattern id"
//	@Success	204
//	@Security	BearerAuth
//	@Router		/patterns/{id} [delete]
func (h *PatternHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.patterns.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}

	h.log.Info().
		Str("pattern_id", c.Param("id")).
		Str("actor_id", actor.ID).
		Msg("pattern deleted")

	return c.NoContent(http.StatusNoContent)
}

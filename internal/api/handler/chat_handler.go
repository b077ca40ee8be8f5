package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/garmentworks/pattern-tracker/internal/api/metrics"
	"github.com/garmentworks/pattern-tracker/internal/core/ports"
)

// ChatHandler serves per-order chat threads and chat image retrieval.
type ChatHandler struct {
	chat ports.ChatService
	log  zerolog.Logger
}

// NewChatHandler wires a ChatHandler.
func NewChatHandler(chat ports.ChatService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, log: log}
}

// Send posts a message, optionally with an image attachment and a quote.
//
//	@Summary	Send a chat message
//	@Tags		chat
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		id					path		string	true	"order id"
//	@Param		message				formData	string	false	"message text"
//	@Param		image				formData	file	false	"image attachment"
//	@Param		quoted_message_id	formData	string	false	"id of the quoted message"
//	@Success	201					{object}	domain.ChatMessage
//	@Security	BearerAuth
//	@Router		/orders/{id}/chat [post]
func (h *ChatHandler) Send(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	in := ports.SendMessageInput{
		Message:         c.FormValue("message"),
		QuotedMessageID: c.FormValue("quoted_message_id"),
	}

	var src io.ReadCloser
	if fileHeader, err := c.FormFile("image"); err == nil {
		if fileHeader.Size > maxUploadBytes {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
		}
		src, err = fileHeader.Open()
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer src.Close()
		in.Image = src
		in.ImageFilename = fileHeader.Filename
	}

	msg, err := h.chat.Send(c.Request().Context(), actor, c.Param("id"), in)
	if err != nil {
		return err
	}

	metrics.ChatMessagesTotal.WithLabelValues(strconv.FormatBool(msg.ImageID != "")).Inc()

	return c.JSON(http.StatusCreated, msg)
}

// List returns an order's chat thread, oldest first.
//
//	@Summary	List chat messages
//	@Tags		chat
//	@Produce	json
//	@Param		id	path	string	true	"order id"
//	@Success	200	{array}	domain.ChatMessage
//	@Security	BearerAuth
//	@Router		/orders/{id}/chat [get]
func (h *ChatHandler) List(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	list, err := h.chat.List(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Image serves a chat image by its blob reference. The route carries no
// authentication; image ids are unguessable and shared inside threads only.
//
//	@Summary	Fetch a chat image
//	@Tags		chat
//	@Produce	image/jpeg
//	@Param		id	path	string	true	"image id"
//	@Success	200	{file}	binary
//	@Failure	404	{object}	map[string]string
//	@Router		/chat/images/{id} [get]
func (h *ChatHandler) Image(c echo.Context) error {
	data, err := h.chat.GetImage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

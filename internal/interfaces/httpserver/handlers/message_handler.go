package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/rs/zerolog"

	"messenger/services/chat-api/internal/domain/message"
	"messenger/services/chat-api/internal/interfaces/httpserver/dto"
	"messenger/services/chat-api/internal/utils/platformerrors"
)

// MessageHandler exposes HTTP entrypoints for sending and reading messages.
type MessageHandler struct {
	service message.Service
	log     zerolog.Logger
}

// NewMessageHandler constructs the handler.
func NewMessageHandler(service message.Service, log zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		service: service,
		log:     log.With().Str("handler", "message").Logger(),
	}
}

// Send handles POST /api/messages
func (h *MessageHandler) Send(c *gin.Context) {
	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.service.Send(c.Request.Context(), req.SenderID, req.ReceiverID, req.Content)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusCreated, dto.FromMessage(*msg))
}

// ListByConversation handles GET /api/messages/conversation/:conversation_id
func (h *MessageHandler) ListByConversation(c *gin.Context) {
	conversationID, pageQuery, pageState, ok := h.bindListParams(c)
	if !ok {
		return
	}

	// The service applies the default for non-positive limits; the response
	// echoes the request as received.
	msgs, next, err := h.service.ListByConversation(c.Request.Context(), conversationID, pageQuery.Limit, pageState)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedMessages{
		Total:      dto.UnknownTotal,
		Page:       pageQuery.Page,
		Limit:      pageQuery.Limit,
		NextCursor: dto.EncodeCursor(next),
		Data:       dto.FromMessages(msgs),
	})
}

// ListBefore handles GET /api/messages/conversation/:conversation_id/before
func (h *MessageHandler) ListBefore(c *gin.Context) {
	conversationID, pageQuery, pageState, ok := h.bindListParams(c)
	if !ok {
		return
	}

	before, err := time.Parse(time.RFC3339, c.Query("before_timestamp"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "before_timestamp must be an RFC3339 timestamp"})
		return
	}

	msgs, next, err := h.service.ListBefore(c.Request.Context(), conversationID, before, pageQuery.Limit, pageState)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedMessages{
		Total:      dto.UnknownTotal,
		Page:       pageQuery.Page,
		Limit:      pageQuery.Limit,
		NextCursor: dto.EncodeCursor(next),
		Data:       dto.FromMessages(msgs),
	})
}

func (h *MessageHandler) bindListParams(c *gin.Context) (gocql.UUID, dto.PageQuery, []byte, bool) {
	conversationID, err := gocql.ParseUUID(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversation_id must be a UUID"})
		return gocql.UUID{}, dto.PageQuery{}, nil, false
	}

	var pageQuery dto.PageQuery
	if err := c.ShouldBindQuery(&pageQuery); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return gocql.UUID{}, dto.PageQuery{}, nil, false
	}

	pageState, err := dto.DecodeCursor(pageQuery.Cursor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return gocql.UUID{}, dto.PageQuery{}, nil, false
	}

	return conversationID, pageQuery, pageState, true
}

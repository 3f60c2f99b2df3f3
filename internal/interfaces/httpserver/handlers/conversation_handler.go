package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/rs/zerolog"

	"messenger/services/chat-api/internal/domain/conversation"
	"messenger/services/chat-api/internal/interfaces/httpserver/dto"
	"messenger/services/chat-api/internal/utils/platformerrors"
)

// ConversationHandler exposes HTTP entrypoints for listing conversations.
type ConversationHandler struct {
	service conversation.Service
	log     zerolog.Logger
}

// NewConversationHandler constructs the handler.
func NewConversationHandler(service conversation.Service, log zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		log:     log.With().Str("handler", "conversation").Logger(),
	}
}

// ListForUser handles GET /api/conversations/user/:user_id
func (h *ConversationHandler) ListForUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	var pageQuery dto.PageQuery
	if err := c.ShouldBindQuery(&pageQuery); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pageState, err := dto.DecodeCursor(pageQuery.Cursor)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The service applies the default for non-positive limits; the response
	// echoes the request as received.
	summaries, next, err := h.service.ListForUser(c.Request.Context(), userID, pageQuery.Limit, pageState)
	if err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, dto.PaginatedConversations{
		Total:      dto.UnknownTotal,
		Page:       pageQuery.Page,
		Limit:      pageQuery.Limit,
		NextCursor: dto.EncodeCursor(next),
		Data:       dto.FromSummaries(summaries),
	})
}

// Get handles GET /api/conversations/:conversation_id
//
// The index is partitioned by user, so this lookup is structurally
// unsupported and always reports not found.
func (h *ConversationHandler) Get(c *gin.Context) {
	conversationID, err := gocql.ParseUUID(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversation_id must be a UUID"})
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), conversationID); err != nil {
		platformerrors.WriteError(c, err, h.log)
		return
	}
}

package routes

import (
	"github.com/gin-gonic/gin"

	"messenger/services/chat-api/internal/interfaces/httpserver/handlers"
)

func registerMessageRoutes(group *gin.RouterGroup, handler *handlers.MessageHandler) {
	messages := group.Group("/messages")
	messages.POST("", handler.Send)
	messages.GET("/conversation/:conversation_id", handler.ListByConversation)
	messages.GET("/conversation/:conversation_id/before", handler.ListBefore)
}

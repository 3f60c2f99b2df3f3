package routes

import (
	"github.com/gin-gonic/gin"

	"messenger/services/chat-api/internal/interfaces/httpserver/handlers"
)

func registerConversationRoutes(group *gin.RouterGroup, handler *handlers.ConversationHandler) {
	conversations := group.Group("/conversations")
	conversations.GET("/user/:user_id", handler.ListForUser)
	conversations.GET("/:conversation_id", handler.Get)
}

package routes

import (
	"github.com/gin-gonic/gin"

	"messenger/services/chat-api/internal/interfaces/httpserver/handlers"
)

// Provider coordinates all route registrations.
type Provider struct {
	handlers *handlers.Provider
}

// NewProvider constructs the route provider.
func NewProvider(handlerProvider *handlers.Provider) *Provider {
	return &Provider{
		handlers: handlerProvider,
	}
}

// Register attaches all API routes under the /api prefix.
func (p *Provider) Register(engine *gin.Engine) {
	group := engine.Group("/api")
	registerMessageRoutes(group, p.handlers.Message)
	registerConversationRoutes(group, p.handlers.Conversation)
}

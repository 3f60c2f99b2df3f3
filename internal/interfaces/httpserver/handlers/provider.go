package handlers

import (
	"github.com/rs/zerolog"

	"messenger/services/chat-api/internal/domain/conversation"
	"messenger/services/chat-api/internal/domain/message"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Message      *MessageHandler
	Conversation *ConversationHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	messageService message.Service,
	conversationService conversation.Service,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Message:      NewMessageHandler(messageService, log),
		Conversation: NewConversationHandler(conversationService, log),
	}
}

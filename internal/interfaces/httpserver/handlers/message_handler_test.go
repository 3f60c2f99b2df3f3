package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger/services/chat-api/internal/domain/message"
	"messenger/services/chat-api/internal/interfaces/httpserver/dto"
	"messenger/services/chat-api/internal/interfaces/httpserver/handlers"
	"messenger/services/chat-api/internal/utils/platformerrors"
)

// MockMessageService is a mock implementation of message.Service.
type MockMessageService struct {
	SendFunc               func(ctx context.Context, senderID, receiverID int64, content string) (*message.Message, error)
	ListByConversationFunc func(ctx context.Context, conversationID gocql.UUID, pageSize int, cursor []byte) ([]message.Message, []byte, error)
	ListBeforeFunc         func(ctx context.Context, conversationID gocql.UUID, before time.Time, pageSize int, cursor []byte) ([]message.Message, []byte, error)
}

func (m *MockMessageService) Send(ctx context.Context, senderID, receiverID int64, content string) (*message.Message, error) {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, senderID, receiverID, content)
	}
	return nil, nil
}

func (m *MockMessageService) ListByConversation(ctx context.Context, conversationID gocql.UUID, pageSize int, cursor []byte) ([]message.Message, []byte, error) {
	if m.ListByConversationFunc != nil {
		return m.ListByConversationFunc(ctx, conversationID, pageSize, cursor)
	}
	return nil, nil, nil
}

func (m *MockMessageService) ListBefore(ctx context.Context, conversationID gocql.UUID, before time.Time, pageSize int, cursor []byte) ([]message.Message, []byte, error) {
	if m.ListBeforeFunc != nil {
		return m.ListBeforeFunc(ctx, conversationID, before, pageSize, cursor)
	}
	return nil, nil, nil
}

func setupMessageTestRouter(handler *handlers.MessageHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api/messages")
	{
		api.POST("", handler.Send)
		api.GET("/conversation/:conversation_id", handler.ListByConversation)
		api.GET("/conversation/:conversation_id/before", handler.ListBefore)
	}
	return r
}

func TestMessageHandler_Send(t *testing.T) {
	conversationID, err := gocql.RandomUUID()
	require.NoError(t, err)

	mockService := &MockMessageService{
		SendFunc: func(ctx context.Context, senderID, receiverID int64, content string) (*message.Message, error) {
			assert.Equal(t, int64(1), senderID)
			assert.Equal(t, int64(2), receiverID)
			assert.Equal(t, "hello", content)
			id := gocql.TimeUUID()
			return &message.Message{
				ID:             id,
				ConversationID: conversationID,
				SenderID:       senderID,
				ReceiverID:     receiverID,
				Content:        content,
				CreatedAt:      id.Time().UTC(),
			}, nil
		},
	}

	handler := handlers.NewMessageHandler(mockService, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	body, _ := json.Marshal(map[string]any{
		"sender_id":   1,
		"receiver_id": 2,
		"content":     "hello",
	})
	req, _ := http.NewRequest("POST", "/api/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var payload dto.MessagePayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, conversationID.String(), payload.ConversationID)
	assert.Equal(t, int64(1), payload.SenderID)
	assert.Equal(t, int64(2), payload.ReceiverID)
	assert.Equal(t, "hello", payload.Content)
	assert.NotEmpty(t, payload.ID)
	assert.False(t, payload.CreatedAt.IsZero())
}

func TestMessageHandler_Send_InvalidBody(t *testing.T) {
	handler := handlers.NewMessageHandler(&MockMessageService{}, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	tests := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"missing content", `{"sender_id":1,"receiver_id":2}`},
		{"missing sender", `{"receiver_id":2,"content":"hi"}`},
		{"zero sender", `{"sender_id":0,"receiver_id":2,"content":"hi"}`},
		{"negative receiver", `{"sender_id":1,"receiver_id":-2,"content":"hi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("POST", "/api/messages", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestMessageHandler_Send_SelfConversationRejected(t *testing.T) {
	mockService := &MockMessageService{
		SendFunc: func(ctx context.Context, senderID, receiverID int64, content string) (*message.Message, error) {
			return nil, platformerrors.NewError(
				ctx,
				platformerrors.LayerDomain,
				platformerrors.ErrorTypeValidation,
				"cannot converse with self",
				nil,
				"conversation-self",
			)
		},
	}

	handler := handlers.NewMessageHandler(mockService, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	body := []byte(`{"sender_id":4,"receiver_id":4,"content":"hi me"}`)
	req, _ := http.NewRequest("POST", "/api/messages", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "conversation-self")
}

func TestMessageHandler_ListByConversation(t *testing.T) {
	conversationID, err := gocql.RandomUUID()
	require.NoError(t, err)

	nextState := []byte("next-page-state")
	mockService := &MockMessageService{
		ListByConversationFunc: func(ctx context.Context, id gocql.UUID, pageSize int, cursor []byte) ([]message.Message, []byte, error) {
			assert.Equal(t, conversationID, id)
			assert.Equal(t, 5, pageSize)
			assert.Nil(t, cursor)
			msgID := gocql.TimeUUID()
			return []message.Message{
				{
					ID:             msgID,
					ConversationID: id,
					SenderID:       1,
					ReceiverID:     2,
					Content:        "newest",
					CreatedAt:      msgID.Time().UTC(),
				},
			}, nextState, nil
		},
	}

	handler := handlers.NewMessageHandler(mockService, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	req, _ := http.NewRequest("GET", "/api/messages/conversation/"+conversationID.String()+"?limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var page dto.PaginatedMessages
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, dto.UnknownTotal, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, dto.EncodeCursor(nextState), page.NextCursor)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "newest", page.Data[0].Content)
}

func TestMessageHandler_ListByConversation_CursorRoundtrip(t *testing.T) {
	conversationID, err := gocql.RandomUUID()
	require.NoError(t, err)

	state := []byte{0x01, 0x02, 0xff}
	var seenCursor []byte
	mockService := &MockMessageService{
		ListByConversationFunc: func(ctx context.Context, id gocql.UUID, pageSize int, cursor []byte) ([]message.Message, []byte, error) {
			seenCursor = cursor
			return nil, nil, nil
		},
	}

	handler := handlers.NewMessageHandler(mockService, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	req, _ := http.NewRequest("GET", "/api/messages/conversation/"+conversationID.String()+"?cursor="+dto.EncodeCursor(state), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, state, seenCursor, "cursor must reach the service byte-identical")

	var page dto.PaginatedMessages
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Empty(t, page.NextCursor, "exhausted page carries no cursor")
}

func TestMessageHandler_ListByConversation_BadInput(t *testing.T) {
	handler := handlers.NewMessageHandler(&MockMessageService{}, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	tests := []struct {
		name string
		path string
	}{
		{"invalid uuid", "/api/messages/conversation/not-a-uuid"},
		{"malformed cursor", "/api/messages/conversation/" + gocql.TimeUUID().String() + "?cursor=%21%21%21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestMessageHandler_ListBefore(t *testing.T) {
	conversationID, err := gocql.RandomUUID()
	require.NoError(t, err)

	cutoff := time.Date(2024, 7, 15, 10, 30, 0, 0, time.UTC)
	var seenBefore time.Time
	mockService := &MockMessageService{
		ListBeforeFunc: func(ctx context.Context, id gocql.UUID, before time.Time, pageSize int, cursor []byte) ([]message.Message, []byte, error) {
			seenBefore = before
			return nil, nil, nil
		},
	}

	handler := handlers.NewMessageHandler(mockService, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	req, _ := http.NewRequest("GET", "/api/messages/conversation/"+conversationID.String()+"/before?before_timestamp="+cutoff.Format(time.RFC3339), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, cutoff.Equal(seenBefore))
}

func TestMessageHandler_ListBefore_InvalidTimestamp(t *testing.T) {
	handler := handlers.NewMessageHandler(&MockMessageService{}, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	tests := []struct {
		name  string
		query string
	}{
		{"missing", ""},
		{"not a timestamp", "?before_timestamp=yesterday"},
		{"epoch seconds", "?before_timestamp=1721039400"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/api/messages/conversation/"+gocql.TimeUUID().String()+"/before"+tt.query, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// TestMessageHandler_List_LimitPassthrough checks the handler does not clamp:
// an absent limit reaches the service as zero, where the default applies.
func TestMessageHandler_List_LimitPassthrough(t *testing.T) {
	seenPageSize := -1
	mockService := &MockMessageService{
		ListByConversationFunc: func(ctx context.Context, id gocql.UUID, pageSize int, cursor []byte) ([]message.Message, []byte, error) {
			seenPageSize = pageSize
			return nil, nil, nil
		},
	}

	handler := handlers.NewMessageHandler(mockService, zerolog.Nop())
	router := setupMessageTestRouter(handler)

	req, _ := http.NewRequest("GET", "/api/messages/conversation/"+gocql.TimeUUID().String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, seenPageSize)
}

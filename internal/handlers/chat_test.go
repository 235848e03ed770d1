package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"healthcare-plus/internal/models"
	"healthcare-plus/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatModel struct {
	reply      string
	err        error
	gotHistory []models.ChatMessage
	gotPrompt  string
}

func (s *stubChatModel) Chat(_ context.Context, history []models.ChatMessage) (string, error) {
	s.gotHistory = history
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubChatModel) CreateCompletion(_ context.Context, prompt string) (string, error) {
	s.gotPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newChatRouter(model *stubChatModel) (*gin.Engine, *services.ConversationStore) {
	gin.SetMode(gin.TestMode)

	store := services.NewConversationStore("you are a support assistant", 11)
	handler := NewChatHandler(store, model, model)

	router := gin.New()
	router.POST("/api/mental-health-chat", handler.MentalHealthChat)
	router.GET("/api/test", handler.Test)
	return router, store
}

func TestMentalHealthChat(t *testing.T) {
	model := &stubChatModel{reply: "That sounds difficult. I'm here to listen."}
	router, store := newChatRouter(model)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/mental-health-chat",
		strings.NewReader(`{"message":"I have been feeling anxious"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"response":"That sounds difficult. I'm here to listen."}`, w.Body.String())

	// The model saw system + user; the store now also holds the reply.
	require.Len(t, model.gotHistory, 2)
	assert.Equal(t, models.RoleSystem, model.gotHistory[0].Role)
	assert.Equal(t, "I have been feeling anxious", model.gotHistory[1].Content)

	history := store.History("default")
	require.Len(t, history, 3)
	assert.Equal(t, models.RoleAssistant, history[2].Role)
}

func TestMentalHealthChatSessionScoped(t *testing.T) {
	model := &stubChatModel{reply: "ok"}
	router, store := newChatRouter(model)

	for _, body := range []string{
		`{"message":"first","sessionId":"a"}`,
		`{"message":"second","sessionId":"b"}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/mental-health-chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Len(t, store.History("a"), 3)
	assert.Len(t, store.History("b"), 3)
	assert.Equal(t, "first", store.History("a")[1].Content)
	assert.Equal(t, "second", store.History("b")[1].Content)
}

func TestMentalHealthChatMissingMessage(t *testing.T) {
	router, _ := newChatRouter(&stubChatModel{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/mental-health-chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Message is required"}`, w.Body.String())
}

func TestMentalHealthChatUpstreamFailure(t *testing.T) {
	router, _ := newChatRouter(&stubChatModel{err: services.ErrUpstream})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/mental-health-chat",
		strings.NewReader(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestTestEndpoint(t *testing.T) {
	model := &stubChatModel{reply: "I am online."}
	router, _ := newChatRouter(model)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Server is running","aiResponse":"I am online."}`, w.Body.String())
	assert.NotEmpty(t, model.gotPrompt)
}

func TestTestEndpointUpstreamFailure(t *testing.T) {
	router, _ := newChatRouter(&stubChatModel{err: services.ErrUpstream})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"FitBuddy/internal/modules/ai/infrastructure/llm"
	"FitBuddy/internal/modules/chat/application/dto/request"
	"FitBuddy/internal/modules/chat/application/dto/respond"
	"FitBuddy/pkg/xerr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockChatService struct {
	mock.Mock
}

func (m *mockChatService) Chat(ctx context.Context, userID string, req request.ChatRequest) (*respond.ChatRespond, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*respond.ChatRespond), args.Error(1)
}

func (m *mockChatService) FollowUps(ctx context.Context, req request.FollowUpRequest) []string {
	args := m.Called(ctx, req)
	return args.Get(0).([]string)
}

func (m *mockChatService) Unload(ctx context.Context, model string) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}

func (m *mockChatService) ListLocalModels(ctx context.Context) ([]llm.LocalModel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]llm.LocalModel), args.Error(1)
}

func (m *mockChatService) Suggestions(count int) []string {
	args := m.Called(count)
	return args.Get(0).([]string)
}

func newFollowUpRouter(svc *mockChatService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewChatHandler(svc, nil)
	r.POST("/followup", h.FollowUps)
	r.POST("/chat", h.Chat)
	return r
}

func TestFollowUpsResponseShape(t *testing.T) {
	svc := new(mockChatService)
	svc.On("FollowUps", mock.Anything, mock.Anything).
		Return([]string{"How much protein do I need?", "What about rest days?", "Is cardio enough?"})
	r := newFollowUpRouter(svc)

	body := `{"messages":[{"role":"assistant","content":"Protein helps recovery."}],"model":"llama-3.3-70b-versatile"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/followup", strings.NewReader(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var got respond.FollowUpRespond
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.FollowUps, 3)
	assert.Contains(t, w.Body.String(), `"followUps"`)
}

func TestFollowUpsBadBodyStillOK(t *testing.T) {
	svc := new(mockChatService)
	r := newFollowUpRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/followup", strings.NewReader("{not json"))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"followUps":[]}`, w.Body.String())
	svc.AssertNotCalled(t, "FollowUps", mock.Anything, mock.Anything)
}

func TestChatProviderErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		kind   xerr.ProviderErrorKind
		status int
	}{
		{"rate limited", xerr.ProviderRateLimited, http.StatusTooManyRequests},
		{"not configured", xerr.ProviderNotConfigured, http.StatusInternalServerError},
		{"auth rejected", xerr.ProviderAuthRejected, http.StatusBadGateway},
		{"transport", xerr.ProviderTransport, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockChatService)
			svc.On("Chat", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, xerr.NewProviderError(tt.kind, "Groq", nil))
			r := newFollowUpRouter(svc)

			body := `{"messages":[{"role":"user","content":"plan my week"}],"model":"llama-3.3-70b-versatile"}`
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

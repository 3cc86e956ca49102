package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
)

func chatRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chatbot", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestChatFlow(t *testing.T) {
	s := newTestServer(cardText)

	w := s.do(chatRequest(`{"message": ""}`))
	require.Equal(t, http.StatusOK, w.Code)
	start := decode[dto.ChatResponse](t, w)
	assert.NotEmpty(t, start.SessionID)
	assert.False(t, start.Complete)

	w = s.do(chatRequest(`{"session_id": "` + start.SessionID + `", "message": "Anita Verma"}`))
	require.Equal(t, http.StatusOK, w.Code)
	next := decode[dto.ChatResponse](t, w)
	assert.Equal(t, start.SessionID, next.SessionID)
	assert.Equal(t, "Hi Anita Verma! How old are you?", next.Reply)
}

func TestChatRejectsBadJSON(t *testing.T) {
	s := newTestServer(cardText)

	w := s.do(chatRequest(`{"message": `))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", decode[dto.ErrorResponse](t, w).Error)
}

func TestChatReset(t *testing.T) {
	s := newTestServer(cardText)
	start := decode[dto.ChatResponse](t, s.do(chatRequest(`{"message": "Anita Verma"}`)))

	w := s.do(httptest.NewRequest(http.MethodDelete, "/api/v1/chatbot/"+start.SessionID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(chatRequest(`{"session_id": "` + start.SessionID + `", "message": "30"}`))
	got := decode[dto.ChatResponse](t, w)
	assert.NotEqual(t, start.SessionID, got.SessionID)
}

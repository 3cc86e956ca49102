package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/service"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/storage"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/utils"
)

const cardText = "Government of India\nName: Anita Verma\nDOB: 01-01-1990\nFemale\n1234 5678 9012\nVID 9876 5432 1098"

type fixedEngine string

func (e fixedEngine) Recognize(ctx context.Context, img []byte) (string, error) {
	return string(e), nil
}

type testServer struct {
	router   *gin.Engine
	dialogue *service.DialogueService
}

func newTestServer(ocrText string) *testServer {
	gin.SetMode(gin.TestMode)

	extractor := service.NewTextExtractor(fixedEngine(ocrText), 1, time.Second)
	matcher := utils.NewNameMatcher(utils.TokenSetSimilarity{}, utils.DefaultNameMatchThreshold)
	aadhaarService := service.NewAadhaarService(extractor, service.NewPDFProcessor(), nil, matcher)

	sessions := storage.NewMemorySessionStore(time.Hour)
	dialogue := service.NewDialogueService(sessions)

	aadhaarHandler := NewAadhaarHandler(aadhaarService, 1<<20)
	chatbotHandler := NewChatbotHandler(dialogue)
	assessmentHandler := NewAssessmentHandler(aadhaarService, dialogue, storage.NewMemoryAssessmentStore(), 1<<20)

	router := gin.New()
	api := router.Group("/api/v1")
	api.POST("/aadhaar/extract", aadhaarHandler.ExtractAadhaar)
	api.POST("/aadhaar/verify-number", aadhaarHandler.VerifyNumber)
	api.POST("/aadhaar/verify-name", aadhaarHandler.VerifyName)
	api.POST("/chatbot", chatbotHandler.Chat)
	api.DELETE("/chatbot/:session_id", chatbotHandler.Reset)
	api.POST("/assessment", assessmentHandler.CreateAssessment)
	api.GET("/assessment/:id", assessmentHandler.GetAssessment)

	return &testServer{router: router, dialogue: dialogue}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 16, 16))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	img.SetGray(0, 0, color.Gray{Y: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type formFile struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, url string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

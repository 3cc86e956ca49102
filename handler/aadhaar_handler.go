package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/service"
)

const aadhaarErrorCode = "AADHAAR_EXTRACTION_FAILED"

// AadhaarHandler handles Aadhaar extraction and verification requests
type AadhaarHandler struct {
	aadhaarService *service.AadhaarService
	maxFileSize    int64
}

// NewAadhaarHandler creates a new AadhaarHandler instance
func NewAadhaarHandler(aadhaarService *service.AadhaarService, maxFileSize int64) *AadhaarHandler {
	return &AadhaarHandler{
		aadhaarService: aadhaarService,
		maxFileSize:    maxFileSize,
	}
}

// ExtractAadhaar handles the POST /aadhaar/extract endpoint
func (h *AadhaarHandler) ExtractAadhaar(c *gin.Context) {
	log.Info().Msg("Received Aadhaar extraction request")

	result, ok := h.extract(c, "file")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, result)
}

// VerifyNumber handles POST /aadhaar/verify-number. The declared number is
// compared against the one read from the uploaded card.
func (h *AadhaarHandler) VerifyNumber(c *gin.Context) {
	declared := strings.TrimSpace(c.PostForm("aadhaar_number"))
	if declared == "" {
		h.sendError(c, http.StatusBadRequest, "aadhaar_number is required", nil)
		return
	}

	result, ok := h.extract(c, "file")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.aadhaarService.VerifyNumber(declared, result))
}

// VerifyName handles POST /aadhaar/verify-name.
func (h *AadhaarHandler) VerifyName(c *gin.Context) {
	declared := strings.TrimSpace(c.PostForm("name"))
	if declared == "" {
		h.sendError(c, http.StatusBadRequest, "name is required", nil)
		return
	}

	result, ok := h.extract(c, "file")
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.aadhaarService.VerifyName(declared, result))
}

// extract reads the uploaded document from field and runs extraction. On
// failure the error response has already been written.
func (h *AadhaarHandler) extract(c *gin.Context, field string) (*dto.AadhaarExtraction, bool) {
	file, err := readUpload(c, field, h.maxFileSize)
	if err != nil {
		h.sendError(c, uploadStatus(err), "Failed to read uploaded file", err)
		return nil, false
	}

	log.Info().Str("file", file.Filename).Str("mime_type", file.MimeType).Msg("Processing Aadhaar file")

	result, err := h.aadhaarService.ExtractFromFile(c.Request.Context(), file.Data, file.MimeType, c.PostForm("password"))
	if err != nil {
		h.sendError(c, extractionStatus(err), "Failed to extract Aadhaar", err)
		return nil, false
	}
	return result, true
}

// extractionStatus maps extraction errors to an HTTP status. Unreadable
// documents are the client's fault.
func extractionStatus(err error) int {
	if errors.Is(err, service.ErrImageDecode) || errors.Is(err, service.ErrPDFRead) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *AadhaarHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	writeError(c, statusCode, aadhaarErrorCode, message, err)
}

package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
)

var (
	errFileMissing     = errors.New("file is required")
	errFileTooLarge    = errors.New("file exceeds the maximum upload size")
	errUnsupportedType = errors.New("invalid file type. Supported: PDF, PNG, JPEG")
)

// upload is one document read from a multipart form.
type upload struct {
	Filename string
	MimeType string
	Data     []byte
}

// readUpload reads a multipart file field, enforcing the size limit and the
// supported document types.
func readUpload(c *gin.Context, field string, maxSize int64) (*upload, error) {
	file, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errFileMissing, field)
	}
	if maxSize > 0 && file.Size > maxSize {
		return nil, errFileTooLarge
	}

	reader, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file data: %w", err)
	}

	mimeType := file.Header.Get("Content-Type")
	if !isValidMimeType(mimeType) {
		mimeType = inferMimeType(file.Filename)
	}
	if !isValidMimeType(mimeType) {
		mimeType = http.DetectContentType(data)
	}
	if !isValidMimeType(mimeType) {
		return nil, errUnsupportedType
	}

	return &upload{Filename: file.Filename, MimeType: mimeType, Data: data}, nil
}

// uploadStatus maps readUpload errors to an HTTP status.
func uploadStatus(err error) int {
	switch {
	case errors.Is(err, errFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errFileMissing), errors.Is(err, errUnsupportedType):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends a structured error response
func writeError(c *gin.Context, statusCode int, code, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Warn().Err(err).Int("status", statusCode).Msg(message)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   code,
		Message: errorMsg,
		Code:    statusCode,
	})
}

// isValidMimeType checks if the MIME type is supported
func isValidMimeType(mimeType string) bool {
	validTypes := []string{
		"application/pdf",
		"image/png",
		"image/jpeg",
		"image/jpg",
	}

	mimeType = strings.ToLower(mimeType)
	for _, valid := range validTypes {
		if strings.Contains(mimeType, valid) {
			return true
		}
	}
	return false
}

// inferMimeType infers MIME type from file extension
func inferMimeType(filename string) string {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".pdf") {
		return "application/pdf"
	} else if strings.HasSuffix(lower, ".png") {
		return "image/png"
	} else if strings.HasSuffix(lower, ".jpg") || strings.HasSuffix(lower, ".jpeg") {
		return "image/jpeg"
	}
	return ""
}

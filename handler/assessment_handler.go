package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/dto"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/service"
	"github.com/rohit9232/Development-of-AI-Powered-Loan-Eligibility-Advisory-System/storage"
)

const assessmentErrorCode = "ASSESSMENT_FAILED"

// AssessmentHandler runs document verification and the eligibility decision
// for one applicant.
type AssessmentHandler struct {
	aadhaarService  *service.AadhaarService
	dialogueService *service.DialogueService
	store           storage.AssessmentStore
	maxFileSize     int64
}

func NewAssessmentHandler(
	aadhaarService *service.AadhaarService,
	dialogueService *service.DialogueService,
	store storage.AssessmentStore,
	maxFileSize int64,
) *AssessmentHandler {
	return &AssessmentHandler{
		aadhaarService:  aadhaarService,
		dialogueService: dialogueService,
		store:           store,
		maxFileSize:     maxFileSize,
	}
}

// CreateAssessment handles POST /assessment.
//
// Form fields: file (Aadhaar image or PDF), session_id or profile (JSON),
// optional password and optional name_file for the name cross-check.
func (h *AssessmentHandler) CreateAssessment(c *gin.Context) {
	ctx := c.Request.Context()

	profile, status, err := h.loadProfile(c)
	if err != nil {
		h.sendError(c, status, "Failed to load applicant profile", err)
		return
	}

	file, err := readUpload(c, "file", h.maxFileSize)
	if err != nil {
		h.sendError(c, uploadStatus(err), "Failed to read uploaded file", err)
		return
	}
	password := c.PostForm("password")

	extraction, err := h.aadhaarService.ExtractFromFile(ctx, file.Data, file.MimeType, password)
	if err != nil {
		h.sendError(c, extractionStatus(err), "Failed to extract Aadhaar", err)
		return
	}
	aadhaarCheck := h.aadhaarService.VerifyNumber(profile.AadhaarNumber, extraction)

	var nameCheck *dto.NameVerification
	if _, err := c.FormFile("name_file"); err == nil {
		nameFile, err := readUpload(c, "name_file", h.maxFileSize)
		if err != nil {
			h.sendError(c, uploadStatus(err), "Failed to read name document", err)
			return
		}
		nameExtraction, err := h.aadhaarService.ExtractFromFile(ctx, nameFile.Data, nameFile.MimeType, password)
		if err != nil {
			h.sendError(c, extractionStatus(err), "Failed to extract name document", err)
			return
		}
		check := h.aadhaarService.VerifyName(profile.Name, nameExtraction)
		nameCheck = &check
	}

	record := &dto.AssessmentRecord{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		Profile:      *profile,
		AadhaarCheck: aadhaarCheck,
		NameCheck:    nameCheck,
		Result:       service.AssessEligibility(*profile, aadhaarCheck.Verified, extraction.AadhaarNumber),
	}

	if err := h.store.Save(ctx, record); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to save assessment", err)
		return
	}

	log.Info().
		Str("assessment_id", record.ID).
		Str("status", string(record.Result.Status)).
		Bool("aadhaar_verified", aadhaarCheck.Verified).
		Msg("Assessment completed")

	c.JSON(http.StatusCreated, record)
}

// GetAssessment handles GET /assessment/:id
func (h *AssessmentHandler) GetAssessment(c *gin.Context) {
	record, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrAssessmentNotFound) {
		h.sendError(c, http.StatusNotFound, "Assessment not found", err)
		return
	}
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to load assessment", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// loadProfile takes the profile from a finished chat session or from the
// profile form field.
func (h *AssessmentHandler) loadProfile(c *gin.Context) (*dto.ApplicantProfile, int, error) {
	if sessionID := strings.TrimSpace(c.PostForm("session_id")); sessionID != "" {
		profile, err := h.dialogueService.Profile(c.Request.Context(), sessionID)
		switch {
		case errors.Is(err, storage.ErrSessionNotFound):
			return nil, http.StatusNotFound, err
		case errors.Is(err, service.ErrProfileIncomplete):
			return nil, http.StatusConflict, err
		case err != nil:
			return nil, http.StatusInternalServerError, err
		}
		return profile, http.StatusOK, nil
	}

	raw := c.PostForm("profile")
	if raw == "" {
		return nil, http.StatusBadRequest, errors.New("session_id or profile is required")
	}

	var profile dto.ApplicantProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, http.StatusBadRequest, err
	}
	return &profile, http.StatusOK, nil
}

func (h *AssessmentHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	writeError(c, statusCode, assessmentErrorCode, message, err)
}

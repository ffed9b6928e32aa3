package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/aHaldin/pickmyartist/internal/domains/enquiry"
	"github.com/aHaldin/pickmyartist/internal/domains/profile"
	"github.com/aHaldin/pickmyartist/internal/shared/response"
	"github.com/aHaldin/pickmyartist/pkg/logger"
)

// ============================================================
// HANDLER STRUCT
// ============================================================
type EnquiryHandler struct {
	service enquiry.Service
}

func NewEnquiryHandler(svc enquiry.Service) *EnquiryHandler {
	return &EnquiryHandler{
		service: svc,
	}
}

// ========== CREATE: POST /v1/artists/:slug/enquiries ==========
// Anonymous booking form. No auth required.
func (h *EnquiryHandler) Create(c *gin.Context) {
	slug := c.Param("slug")

	var req enquiry.CreateEnquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.Create(c.Request.Context(), slug, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, dto)
}

// ========== LIST: GET /v1/enquiries ==========
// Owner inbox. The authenticated user is the artist.
func (h *EnquiryHandler) List(c *gin.Context) {
	artistID := c.MustGet("userID").(uuid.UUID)

	list, err := h.service.ListForArtist(c.Request.Context(), artistID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, list)
}

// ========== UPDATE: PATCH /v1/enquiries/:id/status ==========
func (h *EnquiryHandler) UpdateStatus(c *gin.Context) {
	artistID := c.MustGet("userID").(uuid.UUID)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid enquiry id")
		return
	}

	var req enquiry.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	dto, err := h.service.UpdateStatus(c.Request.Context(), id, artistID, req.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// ========== INTERNAL: POST /internal/send-enquiry-email ==========
// Service-to-service endpoint behind the service role key. Speaks a
// minimal plain-text protocol so callers can surface the raw reason.
func (h *EnquiryHandler) SendEnquiryEmail(c *gin.Context) {
	var body struct {
		EnquiryID string `json:"enquiryId"`
	}
	// A malformed body is treated the same as a missing id
	_ = c.ShouldBindJSON(&body)

	if body.EnquiryID == "" {
		c.String(http.StatusBadRequest, "Missing enquiryId")
		return
	}

	enquiryID, err := uuid.Parse(body.EnquiryID)
	if err != nil {
		c.String(http.StatusNotFound, "Enquiry not found")
		return
	}

	if err := h.service.NotifyArtist(c.Request.Context(), enquiryID); err != nil {
		switch {
		case errors.Is(err, enquiry.ErrEnquiryNotFound):
			c.String(http.StatusNotFound, "Enquiry not found")
		case errors.Is(err, enquiry.ErrArtistEmailUnavailable):
			c.String(http.StatusBadRequest, "Artist has no public email")
		default:
			logger.Error("send enquiry email", err)
			c.String(http.StatusInternalServerError, "Failed to send email")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ============================================================
// ERROR MAPPING
// ============================================================
func (h *EnquiryHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		response.NotFound(c, "Artist not found")
	case errors.Is(err, enquiry.ErrEnquiryNotFound):
		response.NotFound(c, "Enquiry not found")
	case errors.Is(err, enquiry.ErrArtistNotAvailable):
		response.ErrorResponse(c, http.StatusUnprocessableEntity, "ARTIST_NOT_AVAILABLE",
			"This artist is not accepting enquiries")
	case errors.Is(err, enquiry.ErrInvalidStatus), errors.Is(err, enquiry.ErrInvalidTransition):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("enquiry handler", err)
		response.InternalServerError(c, "Something went wrong")
	}
}

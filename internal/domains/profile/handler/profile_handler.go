package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/aHaldin/pickmyartist/internal/domains/enquiry"
	"github.com/aHaldin/pickmyartist/internal/domains/profile"
	"github.com/aHaldin/pickmyartist/internal/infrastructure/storage"
	"github.com/aHaldin/pickmyartist/internal/shared/middleware"
	"github.com/aHaldin/pickmyartist/internal/shared/response"
	"github.com/aHaldin/pickmyartist/pkg/logger"
)

const dashboardEnquiryLimit = 5

// ============================================================
// HANDLER STRUCT
// ============================================================
type ProfileHandler struct {
	service   profile.Service
	enquiries enquiry.Service

	// bucket names the storage bucket in setup hints
	bucket string
}

func NewProfileHandler(svc profile.Service, enquiries enquiry.Service, bucket string) *ProfileHandler {
	return &ProfileHandler{
		service:   svc,
		enquiries: enquiries,
		bucket:    bucket,
	}
}

// ========== READ: GET /v1/profiles/me ==========
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	dto, err := h.service.GetOwn(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// ========== UPDATE: PUT /v1/profiles/me ==========
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dto, err := h.service.Update(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// ========== MEDIA: POST /v1/profiles/me/avatar ==========
func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	h.uploadMedia(c, profile.MediaAvatar)
}

// ========== MEDIA: POST /v1/profiles/me/banner ==========
func (h *ProfileHandler) UploadBanner(c *gin.Context) {
	h.uploadMedia(c, profile.MediaBanner)
}

func (h *ProfileHandler) uploadMedia(c *gin.Context, kind profile.MediaKind) {
	userID := c.MustGet("userID").(uuid.UUID)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "Missing file field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Cannot read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "Cannot read uploaded file")
		return
	}

	dto, err := h.service.UploadMedia(c.Request.Context(), userID, kind, data)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// ========== PUBLIC: GET /v1/artists ==========
// Directory with search, genre filter and sort. Optional auth: a signed
// in artist also sees their own unpublished card.
func (h *ProfileHandler) Directory(c *gin.Context) {
	var req profile.DirectoryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	resp, err := h.service.Directory(c.Request.Context(), middleware.ViewerID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// ========== PUBLIC: GET /v1/artists/:slug ==========
// Also mounted at /v1/a/:slug for short share links.
func (h *ProfileHandler) GetArtist(c *gin.Context) {
	slug := c.Param("slug")

	dto, err := h.service.GetBySlug(c.Request.Context(), slug, middleware.ViewerID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// ========== DASHBOARD: GET /v1/dashboard ==========
// Profile with checklist, the newest enquiries and the unread count,
// composed into one payload so the landing screen needs one request.
func (h *ProfileHandler) Dashboard(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)
	ctx := c.Request.Context()

	own, err := h.service.GetOwn(ctx, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	latest, err := h.enquiries.Latest(ctx, userID, dashboardEnquiryLimit)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newCount, err := h.enquiries.CountNew(ctx, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"profile":           own,
		"latest_enquiries":  latest,
		"new_enquiry_count": newCount,
	})
}

// ============================================================
// ERROR MAPPING
// ============================================================
func (h *ProfileHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, profile.ErrProfileNotFound):
		response.NotFound(c, "Profile not found")
	case errors.Is(err, profile.ErrSlugTaken):
		response.Conflict(c, "That profile handle is already taken")
	case errors.Is(err, profile.ErrInvalidMedia):
		response.BadRequest(c, err.Error())
	case errors.Is(err, profile.ErrStorageDisabled):
		response.SetupRequired(c, "Object storage is not configured. Set MINIO_ENDPOINT to enable uploads.")
	case storage.IsBucketNotFound(err):
		response.SetupRequired(c, storage.BucketSetupHint(h.bucket))
	default:
		logger.Error("profile handler", err)
		response.InternalServerError(c, "Something went wrong")
	}
}

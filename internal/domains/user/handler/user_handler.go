package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/aHaldin/pickmyartist/internal/domains/profile"
	"github.com/aHaldin/pickmyartist/internal/domains/user"
	"github.com/aHaldin/pickmyartist/internal/shared/response"
	"github.com/aHaldin/pickmyartist/pkg/logger"
)

// ============================================================
// HANDLER STRUCT
// ============================================================
type UserHandler struct {
	service  user.Service
	profiles profile.Service
}

func NewUserHandler(svc user.Service, profiles profile.Service) *UserHandler {
	return &UserHandler{
		service:  svc,
		profiles: profiles,
	}
}

// ========== AUTH: POST /v1/auth/register ==========
// Creates the account, provisions the directory profile and signs the
// user in, all in one round trip.
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"session": session,
		"profile": h.provisionProfile(c.Request.Context(), session.User.ID, session.User.Email),
	})
}

// ========== AUTH: POST /v1/auth/login ==========
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	session, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"session": session,
		"profile": h.provisionProfile(c.Request.Context(), session.User.ID, session.User.Email),
	})
}

// ========== AUTH: GET /v1/auth/session ==========
// Returns the account and profile for the current token. Provisioning
// is idempotent, so accounts created before the directory existed get
// their profile row on first call.
func (h *UserHandler) Session(c *gin.Context) {
	userID := c.MustGet("userID").(uuid.UUID)

	dto, err := h.service.GetByID(c.Request.Context(), userID.String())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":    dto,
		"profile": h.provisionProfile(c.Request.Context(), dto.ID, dto.Email),
	})
}

// ========== AUTH: POST /v1/auth/refresh ==========
func (h *UserHandler) RefreshToken(c *gin.Context) {
	var req user.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.handleError(c, err)
		return
	}

	session, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, session)
}

// ========== AUTH: POST /v1/auth/logout ==========
// Tokens are stateless; logout is client-side token disposal.
func (h *UserHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// provisionProfile ensures the directory row exists and returns the
// owner view. Best effort: a profile hiccup must never block login, the
// client falls back to fetching /profiles/me.
func (h *UserHandler) provisionProfile(ctx context.Context, userID uuid.UUID, email string) *profile.OwnProfileDTO {
	if _, err := h.profiles.EnsureProfile(ctx, userID, email); err != nil {
		logger.Warn("provision profile", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil
	}

	own, err := h.profiles.GetOwnWithRetry(ctx, userID)
	if err != nil {
		logger.Warn("load provisioned profile", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil
	}

	return own
}

// ============================================================
// ERROR MAPPING
// ============================================================
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", verrs)
		return
	}

	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		response.Conflict(c, "An account with this email already exists")
	case errors.Is(err, user.ErrInvalidCredentials):
		response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, user.ErrInvalidToken):
		response.Unauthorized(c, "Invalid or expired token")
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "User not found")
	default:
		logger.Error("user handler", err)
		response.InternalServerError(c, "Something went wrong")
	}
}

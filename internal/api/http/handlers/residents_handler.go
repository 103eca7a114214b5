package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/casaflow/community-service/internal/api/dto"
	"github.com/casaflow/community-service/internal/auth"
	"github.com/casaflow/community-service/internal/service"
	apperrors "github.com/casaflow/community-service/pkg/util/errorutil"
)

// ResidentsHandler exposes auth and voice-session endpoints for residents.
type ResidentsHandler struct {
	auth       *service.AuthService
	sessions   *auth.SessionStore
	sessionTTL time.Duration
}

// NewResidentsHandler constructs handler.
func NewResidentsHandler(authService *service.AuthService, sessions *auth.SessionStore, sessionTTL time.Duration) *ResidentsHandler {
	return &ResidentsHandler{auth: authService, sessions: sessions, sessionTTL: sessionTTL}
}

// Register handles POST /auth/register.
func (h *ResidentsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" || req.CommunityID == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password, community_id required")
	}

	resident, token, exp, err := h.auth.RegisterResident(c.Context(), req.Name, req.Email, req.Phone, req.Password, req.CommunityID)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"resident": fiber.Map{
				"id":           resident.ID,
				"name":         resident.Name,
				"email":        resident.Email,
				"community_id": resident.CommunityID,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// Login handles POST /auth/login.
func (h *ResidentsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	resident, token, exp, err := h.auth.LoginResident(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"resident": fiber.Map{
				"id":           resident.ID,
				"name":         resident.Name,
				"email":        resident.Email,
				"community_id": resident.CommunityID,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// CreateVoiceSession handles POST /voice/sessions: the authenticated resident
// obtains an opaque key the telephony channel presents with call reports.
func (h *ResidentsHandler) CreateVoiceSession(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Resident == nil {
		return apperrors.NewUnauthorized("resident required")
	}

	key, err := h.sessions.Issue(c.Context(), principal.Resident.ID)
	if err != nil {
		return apperrors.MapError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.VoiceSessionResponse{
			SessionKey: key,
			ExpiresAt:  time.Now().Add(h.sessionTTL),
		},
	})
}

package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kart-io/lead-center/internal/leadcenter/biz"
	"github.com/kart-io/lead-center/internal/model"
	"github.com/kart-io/lead-center/pkg/auth"
	"github.com/kart-io/lead-center/pkg/utils/errors"
	"github.com/kart-io/lead-center/pkg/utils/response"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	svc *biz.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *biz.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, resp)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := auth.TokenFromContext(c.Request.Context())
	if token == "" {
		response.WriteResponse(c, errors.ErrUnauthorized, nil)
		return
	}
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, "logged out")
}

// Refresh handles POST /auth/refresh. The route sits outside the auth
// middleware so a just-expired token can still be exchanged inside the
// refresh window.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		response.WriteResponse(c, errors.ErrUnauthorized, nil)
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), token)
	if err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, resp)
}

// ChangePassword handles POST /auth/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteResponse(c, errors.ErrBadRequest.WithMessage(err.Error()), nil)
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		response.WriteResponse(c, err, nil)
		return
	}
	response.WriteResponse(c, nil, "password changed")
}

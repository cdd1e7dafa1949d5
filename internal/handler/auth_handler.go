package handler

import (
	"net/http"

	"github.com/gikomplain/backend/internal/dto"
	"github.com/gikomplain/backend/internal/middleware"
	"github.com/gikomplain/backend/internal/service"
	pkgvalidator "github.com/gikomplain/backend/pkg/validator"
	"github.com/gikomplain/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// cookieMaxAge fixes the session lifetime at one day.
const cookieMaxAge = 86400

type AuthHandler struct {
	authService  service.AuthService
	secureCookie bool
}

func NewAuthHandler(authService service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": pkgvalidator.Messages(err)})
		return
	}

	message, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Registration never logs the user in; no cookie is set here.
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": pkgvalidator.Messages(err)})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, result.Token, cookieMaxAge, "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")

	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully. You can now log in."})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            identity.UserID,
		"email":         identity.Email,
		"role":          identity.Role,
		"department_id": identity.DepartmentID,
	})
}

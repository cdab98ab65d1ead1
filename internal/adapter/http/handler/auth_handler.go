package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/williamscesar21/RikoApi/internal/adapter/http/dto"
	"github.com/williamscesar21/RikoApi/internal/core/ports"
	"github.com/williamscesar21/RikoApi/pkg/apperror"
	"github.com/williamscesar21/RikoApi/pkg/response"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login endpoints for every account kind.
type AuthHandler struct {
	authSvc ports.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// LoginClient handles POST /client-login.
func (h *AuthHandler) LoginClient(c *gin.Context) {
	h.loginByEmail(c, h.authSvc.LoginClient)
}

// LoginRestaurant handles POST /restaurant-login.
func (h *AuthHandler) LoginRestaurant(c *gin.Context) {
	h.loginByEmail(c, h.authSvc.LoginRestaurant)
}

// LoginCourier handles POST /courier-login.
func (h *AuthHandler) LoginCourier(c *gin.Context) {
	h.loginByEmail(c, h.authSvc.LoginCourier)
}

func (h *AuthHandler) loginByEmail(c *gin.Context, login func(ctx context.Context, email, password string) (string, time.Time, error)) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	token, expiry, err := login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.LoginResponse{
		Token:  token,
		Expiry: expiry.Unix(),
	})
}

// LoginAdmin handles POST /admin-login.
func (h *AuthHandler) LoginAdmin(c *gin.Context) {
	var req dto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	token, expiry, err := h.authSvc.LoginAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.LoginResponse{
		Token:  token,
		Expiry: expiry.Unix(),
	})
}

// HealthCheck handles GET /health with a deep check of all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}

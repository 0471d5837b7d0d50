package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/service"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

// AuthHandler kimlik doğrulama HTTP işleyicisi
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler AuthHandler oluşturur
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login kullanıcı girişi
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrGecersizKimlik) {
			response.Error(c, http.StatusUnauthorized, 11001, "kullanıcı adı veya şifre hatalı")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// RefreshToken access token yenileme
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrGecersizRefresh) {
			response.Error(c, http.StatusUnauthorized, 11002, "refresh token geçersiz veya süresi dolmuş")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Logout oturumu sonlandırır; token jti'si kara listeye alınır
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	expiresAt, _ := c.Get("token_expires_at")
	son, ok := expiresAt.(time.Time)
	if !ok {
		son = time.Now()
	}

	if err := h.authSvc.Logout(c.Request.Context(), jti, son); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Me oturum açmış kullanıcının bilgisi
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	user, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrKullaniciYok) {
			response.NotFound(c, 20001, "kullanıcı bulunamadı")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// ChangePassword şifre değiştirme
// PUT /api/v1/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		switch {
		case errors.Is(err, service.ErrEskiSifreHatali):
			response.BadRequest(c, 11003, "mevcut şifre hatalı")
		case errors.Is(err, service.ErrKullaniciYok):
			response.NotFound(c, 20001, "kullanıcı bulunamadı")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

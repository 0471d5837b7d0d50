package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/internal/dto"
	"github.com/bugra455/stajuygulamasi-sub001/internal/service"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

// KullaniciHandler kullanıcı yönetimi HTTP işleyicisi (admin)
type KullaniciHandler struct {
	kullaniciSvc service.KullaniciService
}

// NewKullaniciHandler KullaniciHandler oluşturur
func NewKullaniciHandler(kullaniciSvc service.KullaniciService) *KullaniciHandler {
	return &KullaniciHandler{kullaniciSvc: kullaniciSvc}
}

// Create yeni kullanıcı oluşturur; geçici şifre yanıtla döner
// POST /api/v1/admin/users
func (h *KullaniciHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	result, err := h.kullaniciSvc.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTCKayitli):
			response.Conflict(c, 20002, "bu TC kimlik numarasıyla kayıtlı kullanıcı var")
		case errors.Is(err, service.ErrKullaniciAdiKayitli):
			response.Conflict(c, 20003, "bu kullanıcı adı kullanımda")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Get kullanıcı detayı
// GET /api/v1/admin/users/:id
func (h *KullaniciHandler) Get(c *gin.Context) {
	user, err := h.kullaniciSvc.GetByID(c.Request.Context(), c.Param("id"))
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

// List kullanıcı listesi; rol ve anahtar kelime ile süzülebilir
// GET /api/v1/admin/users
func (h *KullaniciHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "sorgu parametreleri geçersiz")
		return
	}

	users, total, err := h.kullaniciSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, req.Page, req.Limit())
}

// Update kullanıcı bilgilerini kısmen günceller
// PUT /api/v1/admin/users/:id
func (h *KullaniciHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "istek gövdesi geçersiz")
		return
	}

	user, err := h.kullaniciSvc.Update(c.Request.Context(), c.Param("id"), &req)
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

// Delete kullanıcı siler; admin kendi hesabını silemez
// DELETE /api/v1/admin/users/:id
func (h *KullaniciHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.kullaniciSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		switch {
		case errors.Is(err, service.ErrKendiniSilemez):
			response.Forbidden(c, 20004, "admin kendi hesabını silemez")
		case errors.Is(err, service.ErrKullaniciYok):
			response.NotFound(c, 20001, "kullanıcı bulunamadı")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// ListCap oturum açmış öğrencinin ÇAP kayıtları
// GET /api/v1/ogrenci/cap
func (h *KullaniciHandler) ListCap(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	caplar, err := h.kullaniciSvc.ListCap(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, caplar)
}

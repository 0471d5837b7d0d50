package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/pkg/jwt"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

// TokenBlacklist çıkış yapılmış token kontrolü (Redis yoksa nil geçilir)
type TokenBlacklist interface {
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// JWTAuth Authorization: Bearer <token> başlığından access token doğrular.
// Doğrulanan kullanıcı kimliği ve rolü gin bağlamına yazılır.
func JWTAuth(jwtMgr *jwt.Manager, blacklist TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "kimlik doğrulama başlığı eksik")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "kimlik doğrulama başlığı geçersiz")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token geçersiz veya süresi dolmuş")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "token tipi geçersiz")
			c.Abort()
			return
		}

		if blacklist != nil {
			// Kontrol başarısız olursa token'ı reddetmek yerine geçiririz,
			// Redis kesintisi tüm oturumları düşürmesin.
			if kara, err := blacklist.IsBlacklisted(c.Request.Context(), claims.ID); err == nil && kara {
				response.Unauthorized(c, 10002, "oturum sonlandırılmış")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("jti", claims.ID)
		c.Set("token_expires_at", claims.ExpiresAt.Time)

		c.Next()
	}
}

// RoleAuth kullanıcının izin verilen rollerden birine sahip olmasını şart koşar
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "kimlik doğrulanmamış")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "bu işlem için yetkiniz yok")
		c.Abort()
	}
}

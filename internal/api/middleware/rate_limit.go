package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/pkg/redis"
	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

// RateLimit Redis sayaçlı istek sınırlaması.
// Şirket OTP uçları gibi hassas yollarda kaba kuvveti yavaşlatır.
// rdb nil ise veya Redis hata verirse istek sınırsız geçer.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "çok fazla istek, lütfen daha sonra deneyin")
			c.Abort()
			return
		}

		c.Next()
	}
}

package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen dışarıdan gelen X-Request-ID uzunluğunu sınırlar (log enjeksiyonu)
const requestIDMaxLen = 64

// RequestID X-Request-ID başlığını okur, yoksa UUID üretir;
// değeri bağlama ve yanıt başlığına yazar.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}

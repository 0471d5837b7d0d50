package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

// BodyLimit istek gövdesini maxBytes ile sınırlar.
// Dosya yükleme uçları kendi sınırlarını ayrıca denetler.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()

		if c.IsAborted() {
			return
		}
		for _, err := range c.Errors {
			if err.Err != nil && err.Err.Error() == "http: request body too large" {
				response.Error(c, http.StatusRequestEntityTooLarge, 10005, "istek gövdesi çok büyük")
				return
			}
		}
	}
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/bugra455/stajuygulamasi-sub001/pkg/response"
)

// MustGetUserID gin bağlamından user_id değerini çıkarır.
// JWT ara katmanı değeri yazmamışsa 401 yanıtı yazılır; çağıran
// ok=false durumunda doğrudan return etmelidir.
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "kimlik doğrulanmamış")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "kimlik doğrulanmamış")
		return "", false
	}
	return s, true
}

// MustGetRole gin bağlamından rol değerini çıkarır
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "kimlik doğrulanmamış")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "kimlik doğrulanmamış")
		return "", false
	}
	return s, true
}

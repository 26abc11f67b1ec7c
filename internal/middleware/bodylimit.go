package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxBodySize caps request body reads at maxBytes. Reads past the cap make
// the request fail with 413 via http.MaxBytesReader; the largest legitimate
// bodies here are admin roster imports, which fit comfortably under the
// router's 10 MiB cap.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil {
			c.Next()

			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"buzzwordz-backend/pkg/logger"
)

const requestIDHeader = "X-Request-ID"

// maxRequestIDLength caps ids taken from the caller so a hostile header
// cannot bloat every log line of the request.
const maxRequestIDLength = 64

// RequestIDMiddleware tags each request with an id and folds it into the
// request-scoped logger fields. A caller-supplied id is kept so ids stay
// stable across proxies; otherwise a fresh one is minted.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" || len(id) > maxRequestIDLength {
			id = newRequestID()
		}

		c.Set("request_id", id)
		c.Header(requestIDHeader, id)

		ctx := logger.ContextWithFields(c.Request.Context(), map[string]interface{}{
			"request_id": id,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func newRequestID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		// The clock is a last resort when the entropy source fails.
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf)
}

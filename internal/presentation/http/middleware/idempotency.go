package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-api/internal/domain/entity"
	"github.com/sangkips/retail-api/internal/domain/repository"
	"github.com/sangkips/retail-api/internal/presentation/http/dto/response"
	"github.com/sangkips/retail-api/pkg/apperror"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	Now  func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Idempotency replays the first response recorded for an Idempotency-Key.
// Keys are scoped to the client IP and reserved before the handler runs, so a
// retry racing the original gets 409 instead of repeating the side effects.
// Server errors release the key so the client can retry them.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}
		scope := c.ClientIP()
		ctx := c.Request.Context()

		created := now()
		ikey := &entity.IdempotencyKey{
			Key:       key,
			Scope:     scope,
			Endpoint:  c.Request.Method + " " + c.FullPath(),
			CreatedAt: created,
			ExpiresAt: created.Add(IdempotencyKeyTTL),
		}

		existing, reserved, err := config.Repo.Reserve(ctx, ikey)
		if err != nil {
			slog.Warn("idempotency reserve failed", "err", err)
			c.Next()
			return
		}

		if !reserved {
			if existing.Pending {
				response.Error(c, apperror.NewAppError(http.StatusConflict,
					"A request with this Idempotency-Key is still being processed"))
				c.Abort()
				return
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		completed := false
		defer func() {
			// a panicking handler must not leave the key stuck as pending
			if !completed {
				if err := config.Repo.Release(context.WithoutCancel(ctx), key, scope); err != nil {
					slog.Warn("idempotency release failed", "err", err)
				}
			}
		}()

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if c.Writer.Status() >= http.StatusInternalServerError {
			return
		}

		ikey.ResponseCode = c.Writer.Status()
		ikey.ResponseBody = blw.body.String()
		if err := config.Repo.Create(ctx, ikey); err != nil {
			slog.Warn("idempotency store failed", "err", err)
			return
		}
		completed = true
	}
}

package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/repository"
	"github.com/sangkips/billing-api/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// ReplayedHeader marks a response served from the idempotency store
	ReplayedHeader = "X-Idempotency-Replayed"
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo   repository.IdempotencyRepository
	TTL    time.Duration
	Logger *slog.Logger
}

// bodyRecorder copies the response body while it is written
type bodyRecorder struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyRecorder) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a staff member retries a request with the
// same Idempotency-Key. Reusing a key with a different body is rejected. The key is
// reserved before the handler runs, so a concurrent retry gets 409 instead of a second
// bill. Only 2xx responses are kept; any other outcome releases the key so a failed
// checkout can be retried with it. Requests without the header pass through unchanged.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		staffID := c.GetString(StaffIDKey)
		if key == "" || staffID == "" {
			c.Next()
			return
		}
		ctx := c.Request.Context()

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Failed to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		hash := hex.EncodeToString(sum[:])
		endpoint := c.Request.Method + " " + c.FullPath()

		existing, err := cfg.Repo.GetByKey(ctx, key, staffID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		now := time.Now()
		if existing != nil && existing.IsExpired(now) {
			if err := cfg.Repo.DeleteExpired(ctx, now); err != nil && cfg.Logger != nil {
				cfg.Logger.Warn("failed to delete expired idempotency keys", "error", err)
			}
			existing = nil
		}

		if existing == nil {
			ikey := &entity.IdempotencyKey{
				Key:         key,
				StaffID:     staffID,
				Endpoint:    endpoint,
				RequestHash: hash,
				ExpiresAt:   now.Add(cfg.TTL),
			}
			reserved, err := cfg.Repo.Reserve(ctx, ikey)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
			if reserved {
				runReserved(c, cfg, ikey)
				return
			}
			// another request took the key between the lookup and the insert
			existing, err = cfg.Repo.GetByKey(ctx, key, staffID)
			if err != nil {
				response.Error(c, err)
				c.Abort()
				return
			}
		}

		switch {
		case existing == nil:
			response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still in progress")
		case existing.RequestHash != hash || existing.Endpoint != endpoint:
			response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was already used for a different request")
		case existing.IsPending() || existing.IsExpired(now):
			response.ErrorWithCode(c, http.StatusConflict, "A request with this Idempotency-Key is still in progress")
		default:
			c.Header(ReplayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
		}
		c.Abort()
	}
}

// runReserved runs the rest of the chain while ikey is held. A 2xx response is stored on
// the record; anything else, a panic included, releases it.
func runReserved(c *gin.Context, cfg IdempotencyConfig, ikey *entity.IdempotencyKey) {
	ctx := context.WithoutCancel(c.Request.Context())
	completed := false
	defer func() {
		if completed {
			return
		}
		if err := cfg.Repo.Release(ctx, ikey.Key, ikey.StaffID); err != nil && cfg.Logger != nil {
			cfg.Logger.Warn("failed to release idempotency key", "key", ikey.Key, "error", err)
		}
	}()

	rec := &bodyRecorder{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
	c.Writer = rec

	c.Next()

	status := c.Writer.Status()
	if status < 200 || status >= 300 {
		return
	}
	ikey.ResponseCode = status
	ikey.ResponseBody = rec.body.String()
	if err := cfg.Repo.Complete(ctx, ikey); err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Warn("failed to store idempotency key", "key", ikey.Key, "error", err)
		}
		return
	}
	completed = true
}

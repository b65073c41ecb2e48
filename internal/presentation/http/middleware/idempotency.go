package middleware

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/entity"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/domain/repository"
	"github.com/goharmihtu-bit/ampaints-desktop-sub002/internal/presentation/http/dto/response"
)

const (
	// IdempotencyKeyHeader carries the client-chosen key for replay detection.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyKeyTTL is how long a stored key can be replayed.
	IdempotencyKeyTTL = 24 * time.Hour

	replayedHeader = "X-Idempotency-Replayed"
)

// IdempotencyConfig holds the middleware's dependencies.
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// bodyCapture tees the response body so it can be stored for replay.
type bodyCapture struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// authedUserID pulls the authenticated user from the context. Keys are
// scoped per user so one client's key cannot replay another's response.
func authedUserID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// replay writes the stored response verbatim and flags it as a replay.
func replay(c *gin.Context, key *entity.IdempotencyKey) {
	c.Header(replayedHeader, "true")
	c.Data(key.ResponseCode, "application/json", []byte(key.ResponseBody))
	c.Abort()
}

// runAndStore executes the handler chain with the body captured, then
// records the result under the key. Only 2xx responses are stored; a
// failed request may be retried with the same key.
func runAndStore(c *gin.Context, cfg IdempotencyConfig, key string, userID uuid.UUID) {
	capture := &bodyCapture{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
	c.Writer = capture

	c.Next()

	status := c.Writer.Status()
	if status < 200 || status >= 300 {
		return
	}

	_ = cfg.Repo.Create(c.Request.Context(), &entity.IdempotencyKey{
		Key:          key,
		UserID:       userID,
		Endpoint:     c.Request.Method + " " + c.FullPath(),
		ResponseCode: status,
		ResponseBody: capture.body.String(),
		ExpiresAt:    time.Now().Add(IdempotencyKeyTTL),
	})
}

// Idempotency replays a stored response when the client supplies a key it
// already used. Requests without a key pass through untouched.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case "POST", "PUT", "PATCH":
		default:
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		userID, ok := authedUserID(c)
		if !ok {
			c.Next()
			return
		}

		existing, err := cfg.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			// Lookup failures must not block the request itself.
			c.Next()
			return
		}
		if existing != nil && !existing.IsExpired() {
			replay(c, existing)
			return
		}

		runAndStore(c, cfg, key, userID)
	}
}

// IdempotencyRequired rejects POST requests that carry no idempotency key.
// Money-moving endpoints sit behind this so a timed-out retry can never
// create a second sale or payment.
func IdempotencyRequired(cfg IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "POST" {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			response.BadRequest(c, "Idempotency-Key header is required for this request")
			c.Abort()
			return
		}

		userID, ok := authedUserID(c)
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		existing, err := cfg.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			response.ErrorWithCode(c, 500, "Failed to check idempotency key")
			c.Abort()
			return
		}
		if existing != nil && !existing.IsExpired() {
			replay(c, existing)
			return
		}

		runAndStore(c, cfg, key, userID)
	}
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billing-api/internal/domain/entity"
	"github.com/sangkips/billing-api/internal/domain/enum"
	"github.com/sangkips/billing-api/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryIdempotencyRepo struct {
	mu   sync.Mutex
	keys map[string]*entity.IdempotencyKey
}

func newMemoryIdempotencyRepo() *memoryIdempotencyRepo {
	return &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memoryIdempotencyRepo) GetByKey(_ context.Context, key, staffID string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.keys[staffID+"/"+key]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (r *memoryIdempotencyRepo) Reserve(_ context.Context, ikey *entity.IdempotencyKey) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := ikey.StaffID + "/" + ikey.Key
	if _, ok := r.keys[id]; ok {
		return false, nil
	}
	cp := *ikey
	cp.ResponseCode = 0
	r.keys[id] = &cp
	return true, nil
}

func (r *memoryIdempotencyRepo) Complete(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.keys[ikey.StaffID+"/"+ikey.Key]; ok {
		stored.ResponseCode = ikey.ResponseCode
		stored.ResponseBody = ikey.ResponseBody
	}
	return nil
}

func (r *memoryIdempotencyRepo) Release(_ context.Context, key, staffID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := staffID + "/" + key
	if stored, ok := r.keys[id]; ok && stored.IsPending() {
		delete(r.keys, id)
	}
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(_ context.Context, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range r.keys {
		if v.IsExpired(now) {
			delete(r.keys, k)
		}
	}
	return nil
}

// asStaff fakes what AuthMiddleware stores for a logged in staff member
func asStaff(id string, role enum.StaffRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(StaffIDKey, id)
		c.Set(StaffRoleKey, role)
		c.Next()
	}
}

func doRequest(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotency(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	calls := 0
	status := http.StatusCreated

	r := gin.New()
	r.Use(asStaff("S003", enum.StaffRoleCashier))
	r.POST("/checkout", Idempotency(IdempotencyConfig{Repo: repo, TTL: time.Hour}), func(c *gin.Context) {
		calls++
		c.JSON(status, gin.H{"bill": calls})
	})
	key := map[string]string{IdempotencyKeyHeader: "k-1"}

	t.Run("failed responses are not stored", func(t *testing.T) {
		status = http.StatusBadRequest
		w := doRequest(r, http.MethodPost, "/checkout", `{"payment_mode":"cash"}`, key)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, repo.keys)
		status = http.StatusCreated
	})

	t.Run("first success is stored and replayed", func(t *testing.T) {
		first := doRequest(r, http.MethodPost, "/checkout", `{"payment_mode":"cash"}`, key)
		require.Equal(t, http.StatusCreated, first.Code)

		second := doRequest(r, http.MethodPost, "/checkout", `{"payment_mode":"cash"}`, key)
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, "true", second.Header().Get(ReplayedHeader))
		assert.JSONEq(t, first.Body.String(), second.Body.String())
		assert.Equal(t, 2, calls)
	})

	t.Run("different body with same key", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/checkout", `{"payment_mode":"upi"}`, key)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("no key", func(t *testing.T) {
		w := doRequest(r, http.MethodPost, "/checkout", `{"payment_mode":"cash"}`, nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 3, calls)
	})

	t.Run("expired key runs again", func(t *testing.T) {
		repo.keys["S003/k-1"].ExpiresAt = time.Now().Add(-time.Minute)
		w := doRequest(r, http.MethodPost, "/checkout", `{"payment_mode":"upi"}`, key)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get(ReplayedHeader))
		assert.Equal(t, 4, calls)
	})
}

func TestIdempotency_InFlightKeyConflicts(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	entered := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	r := gin.New()
	r.Use(asStaff("S003", enum.StaffRoleCashier))
	r.POST("/checkout", Idempotency(IdempotencyConfig{Repo: repo, TTL: time.Hour}), func(c *gin.Context) {
		if calls.Add(1) == 1 {
			close(entered)
			<-release
		}
		c.JSON(http.StatusCreated, gin.H{"bill": "INV-2026-0004"})
	})
	key := map[string]string{IdempotencyKeyHeader: "k-2"}
	body := `{"payment_mode":"cash"}`

	done := make(chan *httptest.ResponseRecorder)
	go func() { done <- doRequest(r, http.MethodPost, "/checkout", body, key) }()
	<-entered

	retry := doRequest(r, http.MethodPost, "/checkout", body, key)
	assert.Equal(t, http.StatusConflict, retry.Code)

	other := doRequest(r, http.MethodPost, "/checkout", `{"payment_mode":"upi"}`, key)
	assert.Equal(t, http.StatusUnprocessableEntity, other.Code)

	close(release)
	first := <-done
	assert.Equal(t, http.StatusCreated, first.Code)

	replay := doRequest(r, http.MethodPost, "/checkout", body, key)
	assert.Equal(t, http.StatusCreated, replay.Code)
	assert.Equal(t, "true", replay.Header().Get(ReplayedHeader))
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdempotency_ConcurrentSameKeyRunsOnce(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	var calls atomic.Int32

	r := gin.New()
	r.Use(asStaff("S003", enum.StaffRoleCashier))
	r.POST("/checkout", Idempotency(IdempotencyConfig{Repo: repo, TTL: time.Hour}), func(c *gin.Context) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		c.JSON(http.StatusCreated, gin.H{"bill": "INV-2026-0004"})
	})
	key := map[string]string{IdempotencyKeyHeader: "k-3"}

	const workers = 8
	codes := make([]int, workers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			codes[i] = doRequest(r, http.MethodPost, "/checkout", `{"payment_mode":"cash"}`, key).Code
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, code := range codes {
		assert.Contains(t, []int{http.StatusCreated, http.StatusConflict}, code)
	}
}

func TestIdempotency_PanicReleasesKey(t *testing.T) {
	repo := newMemoryIdempotencyRepo()
	fail := true

	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	r.Use(asStaff("S003", enum.StaffRoleCashier))
	r.POST("/checkout", Idempotency(IdempotencyConfig{Repo: repo, TTL: time.Hour}), func(c *gin.Context) {
		if fail {
			panic("printer offline")
		}
		c.JSON(http.StatusCreated, gin.H{"bill": "INV-2026-0004"})
	})
	key := map[string]string{IdempotencyKeyHeader: "k-4"}

	w := doRequest(r, http.MethodPost, "/checkout", `{"payment_mode":"cash"}`, key)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, repo.keys)

	fail = false
	w = doRequest(r, http.MethodPost, "/checkout", `{"payment_mode":"cash"}`, key)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 2})

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Staff"); id != "" {
			c.Set(StaffIDKey, id)
		}
		c.Next()
	})
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	staff := map[string]string{"X-Staff": "S003"}
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodGet, "/ping", "", staff).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodGet, "/ping", "", staff).Code)

	w := doRequest(r, http.MethodGet, "/ping", "", staff)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// Buckets are per staff member
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodGet, "/ping", "", map[string]string{"X-Staff": "S004"}).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodGet, "/ping", "", nil).Code)
	assert.Equal(t, 3, rl.ActiveKeys())
}

func TestRateLimiter_SweepsIdleBuckets(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 10, Burst: 10, EntryTTL: time.Minute})
	now := time.Date(2026, time.January, 12, 9, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.getLimiter("S001")
	rl.getLimiter("S002")
	require.Equal(t, 2, rl.ActiveKeys())

	now = now.Add(2 * time.Minute)
	rl.getLimiter("S003")
	assert.Equal(t, 1, rl.ActiveKeys())
}

func TestAuthMiddleware(t *testing.T) {
	jwt := utils.NewJWTManager("middleware-secret", time.Hour)
	token, _, err := jwt.GenerateToken("S002", "priya@business.com", "manager")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(jwt), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"staff_id": c.GetString(StaffIDKey)})
	})

	w := doRequest(r, http.MethodGet, "/me", "", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"staff_id":"S002"}`, w.Body.String())

	for name, header := range map[string]string{
		"missing": "",
		"scheme":  "Basic " + token,
		"garbage": "Bearer not-a-token",
	} {
		t.Run(name, func(t *testing.T) {
			h := map[string]string{}
			if header != "" {
				h["Authorization"] = header
			}
			assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/me", "", h).Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }

	tests := []struct {
		name string
		role enum.StaffRole
		want int
	}{
		{"owner allowed", enum.StaffRoleOwner, http.StatusNoContent},
		{"manager allowed", enum.StaffRoleManager, http.StatusNoContent},
		{"cashier denied", enum.StaffRoleCashier, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/settings", asStaff("S000", tt.role), RequireRole(enum.StaffRoleOwner, enum.StaffRoleManager), ok)
			assert.Equal(t, tt.want, doRequest(r, http.MethodGet, "/settings", "", nil).Code)
		})
	}

	r := gin.New()
	r.GET("/settings", RequireRole(enum.StaffRoleOwner), ok)
	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodGet, "/settings", "", nil).Code, "no role in context")
}

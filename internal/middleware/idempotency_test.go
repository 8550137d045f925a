package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIdempotencyRouter(t *testing.T) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, mock := redismock.NewClientMock()

	calls := 0
	r := gin.New()
	r.POST("/attendance/punch", Idempotency(rdb), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})
	return r, mock, &calls
}

func TestIdempotencyPassesThroughWithoutKey(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/attendance/punch", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)

	cacheKey := "idemp:/attendance/punch::retry-1"
	mock.ExpectGet(cacheKey).SetVal(`{"ok":true,"data":{"id":"abc"}}`)

	req := httptest.NewRequest(http.MethodPost, "/attendance/punch", nil)
	req.Header.Set("Idempotency-Key", "retry-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Idempotent-Replay"))
	assert.JSONEq(t, `{"ok":true,"data":{"id":"abc"}}`, w.Body.String())
	assert.Equal(t, 0, *calls, "handler must not run on replay")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyStoresFirstResponse(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)

	cacheKey := "idemp:/attendance/punch::retry-2"
	lockKey := cacheKey + ":lock"

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(lockKey, "locked", idempotencyLock).SetVal(true)
	mock.ExpectSet(cacheKey, `{"ok":true}`, idempotencyTTL).SetVal("OK")
	mock.ExpectDel(lockKey).SetVal(1)

	req := httptest.NewRequest(http.MethodPost, "/attendance/punch", nil)
	req.Header.Set("Idempotency-Key", "retry-2")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, *calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRejectsConcurrentDuplicate(t *testing.T) {
	r, mock, calls := newIdempotencyRouter(t)

	cacheKey := "idemp:/attendance/punch::retry-3"
	lockKey := cacheKey + ":lock"

	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(lockKey, "locked", idempotencyLock).SetVal(false)

	req := httptest.NewRequest(http.MethodPost, "/attendance/punch", nil)
	req.Header.Set("Idempotency-Key", "retry-3")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, *calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

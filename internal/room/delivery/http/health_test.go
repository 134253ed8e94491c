package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkHealth(t *testing.T, handler *HealthHandler) (int, HealthResponse) {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec.Code, resp
}

func TestHealth_AllUp(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	status, resp := checkHealth(t, NewHealthHandler(db, client))

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, map[string]string{"postgres": "up", "redis": "up"}, resp.Checks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealth_DatabaseDown(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	status, resp := checkHealth(t, NewHealthHandler(db, nil))

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "down", resp.Checks["postgres"])
	assert.NotContains(t, resp.Checks, "redis")
}

func TestHealth_RedisDown(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectPing()

	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	addr := mr.Addr()
	mr.Close()
	client := redis.NewClient(&redis.Options{Addr: addr, MaxRetries: -1})
	defer client.Close()

	status, resp := checkHealth(t, NewHealthHandler(db, client))

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "up", resp.Checks["postgres"])
	assert.Equal(t, "down", resp.Checks["redis"])
}

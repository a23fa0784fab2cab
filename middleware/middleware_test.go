package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Chandanpatidar24/Project-Management/services"
	"github.com/Chandanpatidar24/Project-Management/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newProtected(t *testing.T) (http.Handler, *services.TokenBlacklist, *primitive.ObjectID) {
	t.Helper()

	mr := miniredis.RunT(t)
	blacklist := services.NewTokenBlacklist(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	var seenCaller primitive.ObjectID
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := CallerIDFromContext(r.Context())
		require.True(t, ok)
		seenCaller = caller
		w.WriteHeader(http.StatusOK)
	})

	return JWTAuthMiddleware(blacklist)(inner), blacklist, &seenCaller
}

func TestJWTAuthMiddlewareMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	handler, _, _ := newProtected(t)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJWTAuthMiddlewareInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	handler, _, _ := newProtected(t)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestJWTAuthMiddlewareValidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	handler, _, seenCaller := newProtected(t)

	userID := primitive.NewObjectID()
	token, err := utils.GenerateToken(userID.Hex(), "alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, userID, *seenCaller)
}

func TestJWTAuthMiddlewareRevokedToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	handler, blacklist, _ := newProtected(t)

	token, err := utils.GenerateToken(primitive.NewObjectID().Hex(), "alice")
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(context.Background(), token, time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

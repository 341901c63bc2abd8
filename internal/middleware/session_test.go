package middleware

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSession(t *testing.T) *redis.Client {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb
}

func TestSession_LoadsUserFromRedis(t *testing.T) {
	rdb := setupSession(t)
	data, _ := json.Marshal(map[string]interface{}{
		"user": map[string]interface{}{"user_id": "u1", "role": "admin"},
	})
	require.NoError(t, rdb.Set(context.Background(), "session:abc123", data, 0).Err())

	app := fiber.New()
	app.Use(SessionWithClient(rdb))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		assert.Equal(t, "admin", GetUserRole(c))
		assert.True(t, IsAdmin(c))
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Cookie", "roomstay.sid=s:abc123.signature")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSession_NoCookieMeansNoUser(t *testing.T) {
	rdb := setupSession(t)

	app := fiber.New()
	app.Use(SessionWithClient(rdb))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		assert.Nil(t, GetUser(c))
		_, ok := GetUserID(c)
		assert.False(t, ok)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAuth_BlocksAnonymous(t *testing.T) {
	app := fiber.New()
	app.Use(RequireAuth())
	app.Get("/private", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("GET", "/private", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

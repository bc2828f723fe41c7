package fiber_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapter "github.com/profilemanager/profilemanager/internal/logger/adapter/fiber"

	"github.com/profilemanager/profilemanager/internal/logger"
)

// accessLine implements the loggers default json format.
type accessLine struct {
	Status int    `json:"status"`
	URI    string `json:"URI"`
	Method string `json:"method"`
	Host   string `json:"host"`
	Error  string `json:"error"`
}

func newTestApp(cfg adapter.Config) *fiber.App {
	app := fiber.New()
	app.Use(adapter.New(cfg))

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/checkalive", func(c fiber.Ctx) error {
		return c.SendString("alive")
	})
	app.Get("/fail", func(_ fiber.Ctx) error {
		return errors.New("boom") //nolint:goerr113
	})

	return app
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name       string
		targetPath string
		want       *accessLine
	}{
		{
			name:       "get root",
			targetPath: "/",
			want:       &accessLine{Status: fiber.StatusOK, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "get root with params",
			targetPath: "/?test=123",
			want:       &accessLine{Status: fiber.StatusOK, URI: "/?test=123", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "unknown path",
			targetPath: "/no_path?test=123",
			want: &accessLine{
				Status: fiber.StatusNotFound,
				URI:    "/no_path?test=123",
				Method: fiber.MethodGet,
				Host:   "example.com",
			},
		},
		{
			name:       "handler error",
			targetPath: "/fail",
			want: &accessLine{
				Status: fiber.StatusInternalServerError,
				URI:    "/fail",
				Method: fiber.MethodGet,
				Host:   "example.com",
				Error:  "boom",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			app := newTestApp(adapter.Config{Output: &buf})

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "http://example.com"+tc.targetPath, nil))
			require.NoError(t, err)
			require.Equal(t, tc.want.Status, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get("X-Performance"))

			var got accessLine
			require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got), buf.String())
			assert.Equal(t, tc.want.Status, got.Status)
			assert.Equal(t, tc.want.URI, got.URI)
			assert.Equal(t, tc.want.Method, got.Method)
			assert.Equal(t, tc.want.Host, got.Host)

			if tc.want.Status >= fiber.StatusBadRequest {
				assert.NotEmpty(t, got.Error)
			} else {
				assert.Empty(t, got.Error)
			}

			if tc.want.Error != "" {
				assert.Equal(t, tc.want.Error, got.Error)
			}
		})
	}
}

func TestCheckAliveNotLogged(t *testing.T) {
	var buf bytes.Buffer

	app := newTestApp(adapter.Config{
		Output:        &buf,
		Config:        logger.Log{DisableCheckAlive: true},
		CheckAliveURI: "/checkalive",
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/checkalive", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, strings.TrimSpace(buf.String()))
}

func TestNextSkips(t *testing.T) {
	var buf bytes.Buffer

	app := newTestApp(adapter.Config{
		Output: &buf,
		Next:   func(_ fiber.Ctx) bool { return true },
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

package profile

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/profilemanager/profilemanager/internal/config"
	"github.com/profilemanager/profilemanager/internal/db/dbtest"
	"github.com/profilemanager/profilemanager/internal/db/models"
	"github.com/profilemanager/profilemanager/internal/imagestore"
	"github.com/profilemanager/profilemanager/internal/profile"
)

// noOpViews is a minimal Fiber Views engine used for tests.
// It writes the "Message" field and the stored username from the provided
// fiber.Map so tests can assert what handlers rendered.
type noOpViews struct{}

func (noOpViews) Load() error { return nil }

func (noOpViews) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	m, ok := data.(fiber.Map)
	if !ok {
		_, _ = io.WriteString(w, name)
		return nil
	}

	if v, exists := m["Message"]; exists && v != "" {
		_, _ = io.WriteString(w, "message="+v.(string)+"\n")
	}

	if v, exists := m["Profile"]; exists {
		p := v.(profile.View)
		_, _ = io.WriteString(w, "username="+p.Username+"\n")
		_, _ = io.WriteString(w, "email="+p.Email+"\n")
	}

	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *profile.Service) {
	t.Helper()

	db := dbtest.New(t)

	images, err := imagestore.New(filepath.Join(t.TempDir(), "images"))
	require.NoError(t, err)

	svc := profile.New(db, images, models.DefaultProfileID)

	app := fiber.New(fiber.Config{Views: noOpViews{}})

	var s Service
	s.Init(app, &config.Config{Title: "test"}, svc)

	return app, svc
}

func postForm(t *testing.T, app *fiber.App, path string, values url.Values) (int, string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func validValues() url.Values {
	return url.Values{
		"username":     {"alice"},
		"email":        {"alice@example.com"},
		"old_password": {"first"},
		"new_password": {"s3cret"},
	}
}

func TestGetEmptyProfile(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "username=\n")
}

func TestPost(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(v url.Values)
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "success",
			mutate:      func(_ url.Values) {},
			wantStatus:  fiber.StatusOK,
			wantMessage: msgUpdated,
		},
		{
			name:        "missing field",
			mutate:      func(v url.Values) { v.Del("username") },
			wantStatus:  fiber.StatusUnprocessableEntity,
			wantMessage: "All fields are required",
		},
		{
			name:        "bad email",
			mutate:      func(v url.Values) { v.Set("email", "a@b") },
			wantStatus:  fiber.StatusUnprocessableEntity,
			wantMessage: "Email must be in correct format",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			app, _ := newTestApp(t)

			values := validValues()
			tc.mutate(values)

			status, body := postForm(t, app, UpdatePath, values)
			assert.Equal(t, tc.wantStatus, status)
			assert.Contains(t, body, "message="+tc.wantMessage)
		})
	}
}

func TestPostWrongOldPassword(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := postForm(t, app, UpdatePath, validValues())
	require.Equal(t, fiber.StatusOK, status)

	values := validValues()
	values.Set("username", "mallory")
	values.Set("old_password", "wrong")

	status, body := postForm(t, app, UpdatePath, values)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, "message=Incorrect old password")
	assert.Contains(t, body, "username=alice")
}

func TestClear(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := postForm(t, app, UpdatePath, validValues())
	require.Equal(t, fiber.StatusOK, status)

	status, body := postForm(t, app, ClearPath, url.Values{})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "message="+msgClearing)
	assert.Contains(t, body, "username=\n")
	assert.Contains(t, body, "email=\n")
}

func uploadRequest(t *testing.T, field string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, "picked.png")
	require.NoError(t, err)

	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, ImagePath, &buf)
	req.Header.Set(fiber.HeaderContentType, mw.FormDataContentType())

	return req
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.Set(x, y, color.RGBA{R: 10, G: 20, B: 30, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	return buf.Bytes()
}

func TestImageUploadAndAvatar(t *testing.T) {
	app, svc := newTestApp(t)

	resp, err := app.Test(uploadRequest(t, ImageFormField, testPNG(t, 20, 10)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, svc.PendingImage())

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, AvatarPath, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 10, 10), img.Bounds())
}

func TestImageUploadFailures(t *testing.T) {
	app, svc := newTestApp(t)

	resp, err := app.Test(uploadRequest(t, ImageFormField, []byte("not an image")))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, err = app.Test(uploadRequest(t, "other", testPNG(t, 2, 2)))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	assert.Empty(t, svc.PendingImage())
}

func TestAvatarPlaceholder(t *testing.T) {
	app, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, AvatarPath, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	img, err := png.Decode(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, AvatarSize, AvatarSize), img.Bounds())
}

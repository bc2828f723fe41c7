// Package profile provides the handlers of the profile page: show the form,
// save it, clear the record, upload a picture and serve the rounded avatar.
package profile

import (
	"bytes"
	"errors"
	"image/png"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/profilemanager/profilemanager/internal/config"
	"github.com/profilemanager/profilemanager/internal/imagestore"
	"github.com/profilemanager/profilemanager/internal/profile"
	"github.com/profilemanager/profilemanager/internal/web/handler"
)

const (
	// Path is the path of the profile form.
	Path = handler.RootPath

	// UpdatePath receives the profile form.
	UpdatePath = "/profile"

	// ClearPath clears the profile record.
	ClearPath = "/profile/clear"

	// ImagePath receives the picture upload.
	ImagePath = "/profile/image"

	// AvatarPath serves the rounded picture.
	AvatarPath = "/profile/avatar.png"

	// TemplateName is the name of the profile template.
	TemplateName = "profile/profile"

	// ImageFormField is the multipart field carrying the picture.
	ImageFormField = "image"

	// AvatarSize is the diameter of the placeholder avatar.
	AvatarSize = 128

	msgUpdated  = "User Updated"
	msgClearing = "Clearing User Data"

	kindError   = "error"
	kindSuccess = "success"
)

// Service is the profile page handler service.
type Service struct {
	cfg     *config.Config
	profile *profile.Service
}

// Handler is the profile page handler.
var Handler = Service{}

var _ handler.Service = (*Service)(nil)

// Init registers the profile routes.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *profile.Service) {
	if app == nil || cfg == nil || svc == nil {
		log.Fatal().Msg(handler.ErrNilACSFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.profile = svc

	app.Get(Path, s.Get)
	app.Post(UpdatePath, s.Post)
	app.Post(ClearPath, s.Clear)
	app.Post(ImagePath, s.Image)
	app.Get(AvatarPath, s.Avatar)
}

// render shows the form filled from the stored record.
func (s *Service) render(c fiber.Ctx, status int, kind, message string) error {
	view, err := s.profile.Load(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load profile")

		kind = kindError
		message = profile.Message(err)
	}

	return c.Status(status).Render(TemplateName, fiber.Map{
		"Title":       s.cfg.Title,
		"Profile":     view,
		"Message":     message,
		"MessageKind": kind,
		"AvatarURL":   AvatarPath + "?v=" + strconv.FormatInt(time.Now().UnixNano(), 10),
	}, handler.BaseLayout)
}

// Get handles the profile page rendering.
func (s *Service) Get(c fiber.Ctx) error {
	return s.render(c, fiber.StatusOK, "", "")
}

// Post saves the profile form.
func (s *Service) Post(c fiber.Ctx) error {
	form := profile.Form{
		Username:    c.FormValue("username"),
		Email:       c.FormValue("email"),
		OldPassword: c.FormValue("old_password"),
		NewPassword: c.FormValue("new_password"),
	}

	err := s.profile.Update(c.Context(), form)
	if err == nil {
		return s.render(c, fiber.StatusOK, kindSuccess, msgUpdated)
	}

	status := fiber.StatusUnprocessableEntity

	switch {
	case errors.Is(err, profile.ErrInvalidOldPassword):
		status = fiber.StatusForbidden
	case errors.Is(err, profile.ErrUpdateFailed):
		status = fiber.StatusInternalServerError
	}

	return s.render(c, status, kindError, profile.Message(err))
}

// Clear overwrites the profile record with empty values.
func (s *Service) Clear(c fiber.Ctx) error {
	if err := s.profile.Clear(c.Context()); err != nil {
		return s.render(c, fiber.StatusInternalServerError, kindError, profile.Message(err))
	}

	return s.render(c, fiber.StatusOK, kindSuccess, msgClearing)
}

// Image stores an uploaded picture as pending profile picture.
func (s *Service) Image(c fiber.Ctx) error {
	fh, err := c.FormFile(ImageFormField)
	if err != nil {
		log.Debug().Err(err).Msg("no picture in upload")

		return s.render(c, fiber.StatusBadRequest, kindError, profile.Message(profile.ErrImageSave))
	}

	f, err := fh.Open()
	if err != nil {
		return s.render(c, fiber.StatusBadRequest, kindError, profile.Message(profile.ErrImageSave))
	}
	defer f.Close()

	if _, err = s.profile.AttachImage(c.Context(), f); err != nil {
		return s.render(c, fiber.StatusUnprocessableEntity, kindError, profile.Message(err))
	}

	return s.render(c, fiber.StatusOK, "", "")
}

// Avatar serves the rounded profile picture, or the placeholder if there is none.
func (s *Service) Avatar(c fiber.Ctx) error {
	var buf bytes.Buffer

	err := s.profile.Avatar(c.Context(), &buf)
	if err != nil {
		if !errors.Is(err, profile.ErrNoImage) {
			return err //nolint:wrapcheck
		}

		buf.Reset()

		if err = png.Encode(&buf, imagestore.Placeholder(AvatarSize)); err != nil {
			return err //nolint:wrapcheck
		}
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "no-store")

	return c.Send(buf.Bytes())
}

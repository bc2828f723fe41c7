package profile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/profilemanager/profilemanager/internal/db/controller/profile"
	"github.com/profilemanager/profilemanager/internal/db/models"
	"github.com/profilemanager/profilemanager/internal/imagestore"
)

// View is what the profile form shows. The password is never part of it.
type View struct {
	Username  string
	Email     string
	ImagePath string
	// HasImage is true if a stored or pending picture exists.
	HasImage bool
	// Empty is true if no record has been stored yet.
	Empty bool
}

// Service is the profile editor working on a single record id.
type Service struct {
	db        *gorm.DB
	images    *imagestore.Store
	recordID  uint64
	validator *validator.Validate

	mu           sync.Mutex
	pendingImage string
}

// New creates a profile service for the record recordID.
func New(db *gorm.DB, images *imagestore.Store, recordID uint64) *Service {
	if recordID == 0 {
		recordID = models.DefaultProfileID
	}

	return &Service{
		db:        db,
		images:    images,
		recordID:  recordID,
		validator: newValidator(),
	}
}

// RecordID returns the id of the record the service works on.
func (s *Service) RecordID() uint64 {
	return s.recordID
}

// PendingImage returns the picture saved since the last Update, if any.
func (s *Service) PendingImage() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pendingImage
}

// current returns the stored record, nil if there is none yet.
func (s *Service) current(ctx context.Context) (*models.Profile, error) {
	p, err := profile.FetchByID(s.db.WithContext(ctx), s.recordID)
	if errors.Is(err, profile.ErrProfileNotFound) {
		return nil, nil //nolint:nilnil
	}

	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return p, nil
}

// Load returns the view of the stored record. A missing record is not an
// error, it yields an empty view.
func (s *Service) Load(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.current(ctx)
	if err != nil {
		return View{}, err
	}

	var v View

	if p == nil {
		log.Debug().Uint64("profile_id", s.recordID).Msg("profile is empty")

		v.Empty = true
	} else {
		v.Username = p.Username
		v.Email = p.Email
		v.ImagePath = p.ImagePath
	}

	if s.pendingImage != "" {
		v.ImagePath = s.pendingImage
	}

	v.HasImage = v.ImagePath != ""

	return v, nil
}

// CheckOldPassword reports whether old matches the stored secret.
func (s *Service) CheckOldPassword(ctx context.Context, old string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.current(ctx)
	if err != nil {
		return false, err
	}

	return s.checkOldPassword(p, old), nil
}

// checkOldPassword passes unconditionally while no record exists. A stored
// record, cleared or not, must match old.
func (s *Service) checkOldPassword(p *models.Profile, old string) bool {
	if p == nil {
		log.Warn().
			Uint64("profile_id", s.recordID).
			Msg("no stored profile, old password check passes unconditionally")

		return true
	}

	if !p.HasSecret() {
		log.Info().Uint64("profile_id", s.recordID).Msg("stored profile has no password, old password rejected")

		return false
	}

	return p.VerifyPassword(old)
}

// Update validates f, verifies the old password and stores the new values.
// The new password is stored as Argon2id hash. Without a pending picture the
// stored picture path is kept.
func (s *Service) Update(ctx context.Context, f Form) error {
	f = f.Trimmed()

	if err := validateForm(s.validator, &f); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.current(ctx)
	if err != nil {
		log.Error().Err(err).Uint64("profile_id", s.recordID).Msg("failed to load profile for update")

		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	if !s.checkOldPassword(p, f.OldPassword) {
		log.Info().Uint64("profile_id", s.recordID).Msg("profile update rejected: incorrect old password")

		return ErrInvalidOldPassword
	}

	hash, err := models.HashPassword(f.NewPassword)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	imagePath := s.pendingImage
	if imagePath == "" && p != nil {
		imagePath = p.ImagePath
	}

	ok, err := profile.Upsert(s.db.WithContext(ctx), s.recordID, f.Username, f.Email, hash, imagePath)
	if err != nil {
		log.Error().Err(err).Uint64("profile_id", s.recordID).Msg("failed to update profile")

		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	if !ok {
		return ErrUpdateFailed
	}

	s.pendingImage = ""

	log.Info().Uint64("profile_id", s.recordID).Msg("profile updated")

	return nil
}

// Clear overwrites every field of the record with an empty string and
// forgets the pending picture. Picture files are left on disk.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingImage = ""

	if _, err := profile.Upsert(s.db.WithContext(ctx), s.recordID, "", "", "", ""); err != nil {
		log.Error().Err(err).Uint64("profile_id", s.recordID).Msg("failed to clear profile")

		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	log.Info().Uint64("profile_id", s.recordID).Msg("profile cleared")

	return nil
}

// DeleteAll removes every stored record, not only the one of this service.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pendingImage = ""

	n, err := profile.DeleteAll(s.db.WithContext(ctx))
	if err != nil {
		return 0, err //nolint:wrapcheck
	}

	log.Info().Int64("deleted", n).Msg("all profiles deleted")

	return n, nil
}

// AttachImage decodes the picture read from r, saves it as PNG and keeps it
// as pending picture for the next Update.
func (s *Service) AttachImage(_ context.Context, r io.Reader) (string, error) {
	path, err := s.images.SaveFrom(r)
	if err != nil {
		log.Error().Err(err).Str("dir", s.images.Dir()).Msg("failed to save profile image")

		return "", fmt.Errorf("%w: %w", ErrImageSave, err)
	}

	s.mu.Lock()
	s.pendingImage = path
	s.mu.Unlock()

	log.Info().Str("path", path).Msg("profile image saved")

	return path, nil
}

// Avatar writes the rounded rendition of the pending or stored picture as PNG to w.
func (s *Service) Avatar(ctx context.Context, w io.Writer) error {
	v, err := s.Load(ctx)
	if err != nil {
		return err
	}

	if !v.HasImage {
		return ErrNoImage
	}

	if err = imagestore.WriteRounded(w, v.ImagePath); err != nil {
		log.Warn().Err(err).Str("path", v.ImagePath).Msg("failed to render profile image")

		return fmt.Errorf("%w: %w", ErrNoImage, err)
	}

	return nil
}

package models

import (
	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// DefaultProfileID is the record id used when the configuration does not name one.
const DefaultProfileID uint64 = 1

// ProfileTableName is the name of the table holding the profile record.
const ProfileTableName = "UserInfo"

// Profile is the single stored user entity.
// An empty field means "not set"; a cleared profile has all four fields empty.
type Profile struct {
	// ID is the record identifier, see DefaultProfileID.
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement:false"`
	// Username may be empty.
	Username string `gorm:"column:username;type:text"`
	// ImagePath is the absolute path of the PNG profile picture.
	ImagePath string `gorm:"column:image;type:text"`
	// Email is validated by the profile service, not by the store.
	Email string `gorm:"column:email;type:text"`
	// Password is the Argon2id encoded hash of the profile secret.
	Password string `gorm:"column:password;type:text"`
}

// TableName implements gorm's tabler interface.
func (Profile) TableName() string {
	return ProfileTableName
}

// IsEmpty reports whether every stored field is blank.
func (p *Profile) IsEmpty() bool {
	return p.Username == "" && p.Email == "" && p.Password == "" && p.ImagePath == ""
}

// HasSecret reports whether a password hash is stored.
func (p *Profile) HasSecret() bool {
	return p.Password != ""
}

// HashPassword hashes a plaintext password using the Argon2id algorithm
// with a random salt and the default Argon2id parameters.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams) //nolint:wrapcheck
}

// VerifyPassword verifies a plaintext password against the stored hash.
// It uses constant-time comparison to prevent timing attacks.
func (p *Profile) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, p.Password)
	if err != nil {
		log.Error().Err(err).Uint64("profile_id", p.ID).Msg("failed to verify password")
		return false
	}

	return match
}

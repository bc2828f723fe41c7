package profile

import "errors"

var (
	// ErrFieldsRequired is returned when a form field is empty after trimming.
	ErrFieldsRequired = errors.New("all fields are required")

	// ErrInvalidEmail is returned when the email does not look like local@domain.tld.
	ErrInvalidEmail = errors.New("email must be in correct format")

	// ErrInvalidOldPassword is returned when the provided old password does not match the stored one.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrUpdateFailed is returned when the profile record could not be written.
	ErrUpdateFailed = errors.New("failed to update profile")

	// ErrImageSave is returned when a picked picture could not be decoded or saved.
	ErrImageSave = errors.New("failed to save image")

	// ErrNoImage is returned when there is no picture to show.
	ErrNoImage = errors.New("no profile image")
)

// Message returns the text shown to the user for err.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrFieldsRequired):
		return "All fields are required"
	case errors.Is(err, ErrInvalidEmail):
		return "Email must be in correct format"
	case errors.Is(err, ErrInvalidOldPassword):
		return "Incorrect old password"
	case errors.Is(err, ErrImageSave):
		return "Failed to save image"
	case errors.Is(err, ErrNoImage):
		return "Failed to load image"
	default:
		return "Failed to update user"
	}
}

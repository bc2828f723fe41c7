// Package profile implements the profile editor: loading the stored record
// into a view, validating and saving the form, clearing the record and
// attaching a profile picture.
//
// # Old password check
//
// The old password is verified against the Argon2id hash stored in the
// record. When no record exists yet, or the stored secret is empty (a
// cleared profile), the check succeeds unconditionally. This first-run
// behaviour is kept on purpose and logged as a warning every time it is used.
//
// # Pictures
//
// A picked picture is saved right away and kept as the pending picture of
// the service. It becomes part of the record with the next successful
// Update. Without a pending picture Update keeps the stored one.
package profile

// Package main provides the entry point for the profile manager application.
// It keeps a single profile record (username, email, password and profile photo)
// in a local relational store and lets the user view, edit and clear it, either
// from the command line or through a single local web page served with Fiber.
// The application uses gorm for data persistence and stores passwords as
// salted Argon2id hashes.
package main

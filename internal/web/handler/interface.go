// Package handler holds what the web page handlers share.
package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/profilemanager/profilemanager/internal/config"
	"github.com/profilemanager/profilemanager/internal/profile"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, svc *profile.Service)
}

package controllers

import (
	"gorm.io/gorm"

	"lms/config"
	"lms/services/progressService"
)

// Controller serves the course catalog, enrollment and progress endpoints.
// Catalog CRUD talks to the database directly; anything touching user
// progress goes through the progress service.
type Controller struct {
	DB  *gorm.DB
	Cfg *config.Config
	Svc *progressService.Service
}

func New(db *gorm.DB, cfg *config.Config, svc *progressService.Service) *Controller {
	return &Controller{DB: db, Cfg: cfg, Svc: svc}
}

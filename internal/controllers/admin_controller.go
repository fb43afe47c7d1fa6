package controllers

import (
	"glnc_delivery/internal/services"
)

// AdminController serves the dashboard JSON endpoints behind the admin
// session.
type AdminController struct {
	svc   *services.Services
	clock services.Clock
}

func NewAdminController(svc *services.Services, clock services.Clock) *AdminController {
	return &AdminController{svc: svc, clock: clock}
}

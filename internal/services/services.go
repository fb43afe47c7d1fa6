package services

import (
	"gorm.io/gorm"

	"glnc_delivery/internal/security"
)

// Deps are the collaborators shared by every service.
type Deps struct {
	DB                    *gorm.DB
	Hasher                *security.PasswordHasher
	Clock                 Clock
	Mailer                Mailer
	Events                EventPublisher
	Images                ImageStore
	SubjectPrefix         string
	EnforceTruckConflicts bool
}

// Services bundles the application services for the HTTP layer and fleetctl.
type Services struct {
	Auth        *AuthService
	Users       *UserService
	Trucks      *TruckService
	Suppliers   *SupplierService
	Deliveries  *DeliveryService
	Planning    *PlanningService
	Pointages   *PointageService
	Geolocation *GeolocationService
	ApiKeys     *ApiKeyService
	Dashboard   *DashboardService
}

func New(d Deps) *Services {
	notifier := NewNotifier(d.Mailer, d.SubjectPrefix, d.Clock)
	deliveries := NewDeliveryService(d.DB, d.Clock, notifier, d.Events, d.Images)
	return &Services{
		Auth:        NewAuthService(d.DB, d.Hasher),
		Users:       NewUserService(d.DB, d.Hasher),
		Trucks:      NewTruckService(d.DB),
		Suppliers:   NewSupplierService(d.DB),
		Deliveries:  deliveries,
		Planning:    NewPlanningService(d.DB, d.Clock, deliveries, d.EnforceTruckConflicts),
		Pointages:   NewPointageService(d.DB),
		Geolocation: NewGeolocationService(d.DB, d.Clock),
		ApiKeys:     NewApiKeyService(d.DB),
		Dashboard:   NewDashboardService(d.DB),
	}
}

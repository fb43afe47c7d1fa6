// Command fleetctl performs administrative chores against the delivery
// database: API keys, bootstrap users and password hashes.
package main

import (
	"os"

	logrus "github.com/sirupsen/logrus"

	"glnc_delivery/internal/config"
	"glnc_delivery/internal/logger"
	"glnc_delivery/internal/notify"
	"glnc_delivery/internal/security"
	"glnc_delivery/internal/services"
)

func main() {
	cfg := config.Load()
	logrus.SetLevel(logrus.WarnLevel)

	hasher := security.NewPasswordHasher(cfg.Security.BcryptCost, cfg.Security.LegacySalt)
	a := &app{
		out:    os.Stdout,
		hasher: hasher,
		open: func() (*services.Services, error) {
			db, err := config.InitDB(cfg, logger.GormLogger())
			if err != nil {
				return nil, err
			}
			return services.New(services.Deps{
				DB:     db,
				Hasher: hasher,
				Clock:  services.NewClock(cfg.Location()),
				Mailer: notify.LogMailer{},
				Events: notify.NopPublisher{},
			}), nil
		},
	}

	if err := newRootCmd(a).Execute(); err != nil {
		os.Exit(1)
	}
}

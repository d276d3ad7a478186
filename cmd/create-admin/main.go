// Command create-admin creates an ADMIN account, or promotes an existing
// account with the same phone number.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"servic-backend/config"
	"servic-backend/repository"
	"servic-backend/services"
)

func main() {
	phone := flag.String("phone", "", "admin phone number (required)")
	password := flag.String("password", "", "password for a newly created account")
	firstName := flag.String("first-name", "Admin", "first name for a newly created account")
	email := flag.String("email", "", "email for a newly created account")
	flag.Parse()

	if *phone == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	if err := config.Migrate(db); err != nil {
		log.WithError(err).Fatal("failed to migrate database")
	}

	accounts := services.NewAccountService(
		repository.NewUserRepository(db),
		repository.NewBuildingRepository(db),
		log,
	)
	user, created, err := accounts.EnsureAdmin(context.Background(), services.Registration{
		Phone:     *phone,
		FirstName: *firstName,
		Email:     *email,
		Password:  *password,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to create admin")
	}

	if created {
		fmt.Printf("Admin created: %s (id %s)\n", user.Phone, user.ID)
	} else {
		fmt.Printf("Existing account promoted to admin: %s (id %s)\n", user.Phone, user.ID)
	}
}

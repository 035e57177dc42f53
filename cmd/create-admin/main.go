package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/quizdeck/quizdeck-backend/internal/config"
	"github.com/quizdeck/quizdeck-backend/internal/database"
	"github.com/quizdeck/quizdeck-backend/internal/logger"
	"github.com/quizdeck/quizdeck-backend/internal/model"
	"github.com/quizdeck/quizdeck-backend/internal/repository"
	"github.com/quizdeck/quizdeck-backend/internal/validator"
)

func main() {
	var (
		username = flag.String("username", "", "Admin username")
		pin      = flag.String("pin", "", "Admin PIN (exactly 4 digits)")
		aiLimit  = flag.Int("ai-limit", 100, "Daily AI explanation limit")
	)
	flag.Parse()

	if *username == "" || *pin == "" {
		fmt.Println("Usage: create-admin -username <name> -pin <4 digits> [-ai-limit <n>]")
		os.Exit(1)
	}
	if !validator.IsPIN(*pin) {
		fmt.Println("Error: PIN must be exactly 4 digits")
		os.Exit(1)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	adminRepo := repository.NewAdminRepository(pool)

	admin := &model.AdminUser{
		Username: *username,
		PIN:      *pin,
		AILimit:  *aiLimit,
	}
	if err := adminRepo.Create(ctx, admin); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			fmt.Println("Error: username already exists")
		case errors.Is(err, repository.ErrPINTaken):
			fmt.Println("Error: PIN already exists")
		default:
			fmt.Printf("Error: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Admin %q created (id=%d, ai-limit=%d)\n", admin.Username, admin.ID, admin.AILimit)
}

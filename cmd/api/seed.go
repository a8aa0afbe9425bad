package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/inventory-service/internal/config"
	"github.com/spec-kit/inventory-service/internal/domain"
	"github.com/spec-kit/inventory-service/internal/observability"
	"github.com/spec-kit/inventory-service/internal/persistence"
	"github.com/spec-kit/inventory-service/internal/repository"
	"github.com/spec-kit/inventory-service/internal/service"
)

// seedAccounts are the demo accounts provisioned for local setups.
var seedAccounts = []struct {
	username string
	password string
	role     domain.Role
}{
	{"bruce", "gotham", domain.RoleSecurityAdmin},
	{"lucius", "fox", domain.RoleManager},
	{"barbara", "gordon", domain.RoleManager},
	{"alfred", "pennyworth", domain.RoleEmployee},
	{"tim", "drake", domain.RoleEmployee},
	{"selina", "kyle", domain.RoleEmployee},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Apply migrations and provision the demo accounts",
	Run: func(cmd *cobra.Command, args []string) {
		runSeed(cmd.Context())
	},
}

func runSeed(ctx context.Context) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	accountRepo := repository.NewAccountRepository(pg.PoolHandle())
	authService := service.NewAuthService(*cfg, accountRepo, nil)

	for _, seed := range seedAccounts {
		account, created, err := authService.SeedAccount(ctx, seed.username, seed.password, seed.role)
		if err != nil {
			logger.Fatal("failed to seed account", zap.String("username", seed.username), zap.Error(err))
		}
		if created {
			logger.Info("account created",
				zap.String("username", account.Username),
				zap.String("role", string(account.Role)))
		} else {
			logger.Info("account already exists", zap.String("username", account.Username))
		}
	}

	logger.Info("seed finished", zap.Int("accounts", len(seedAccounts)))
}

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/finapp/backend/internal/domain/identity"
	"github.com/finapp/backend/internal/domain/shared"
	"github.com/finapp/backend/internal/infrastructure/config"
	"github.com/finapp/backend/internal/infrastructure/logger"
	"github.com/finapp/backend/internal/infrastructure/persistence"
	"github.com/finapp/backend/internal/infrastructure/persistence/models"
)

// adminGrants is the full grant set issued to the seeded admin role
var adminGrants = [][2]string{
	{"clients", "create"}, {"clients", "read"}, {"clients", "update"}, {"clients", "delete"},
	{"invoices", "create"}, {"invoices", "read"}, {"invoices", "update"}, {"invoices", "delete"},
	{"transactions", "create"}, {"transactions", "read"}, {"transactions", "update"}, {"transactions", "delete"},
	{"reports", "generate"},
	{"audit_logs", "read"},
	{"permissions", "manage"},
}

func main() {
	var (
		seed     bool
		logLevel string
	)
	flag.BoolVar(&seed, "seed", false, "Seed the admin role and its permission grants after migrating")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database, nil)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Running migrations")
	if err := db.DB.AutoMigrate(models.All()...); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Migrations applied")

	if seed {
		if err := seedAdminRole(db, log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
	}
}

func seedAdminRole(db *persistence.Database, log *zap.Logger) error {
	ctx := context.Background()
	roles := persistence.NewGormRoleRepository(db.DB)
	permissions := persistence.NewGormPermissionRepository(db.DB)

	role, err := roles.FindByName(ctx, "admin")
	if errors.Is(err, shared.ErrNotFound) {
		role, err = identity.NewRole("admin", "Full access to the back office")
		if err != nil {
			return err
		}
		if err := roles.Create(ctx, role); err != nil {
			return err
		}
		log.Info("Created admin role", zap.String("role_id", role.ID.String()))
	} else if err != nil {
		return err
	}

	for _, grant := range adminGrants {
		resource, action := grant[0], grant[1]
		if _, err := permissions.FindGrant(ctx, role.ID, resource, action); err == nil {
			continue
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		permission, err := identity.NewPermission(role.ID, resource, action)
		if err != nil {
			return err
		}
		if err := permissions.Create(ctx, permission); err != nil {
			return err
		}
	}
	log.Info("Admin grants seeded", zap.Int("grants", len(adminGrants)))

	return nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gestaocontabil/backend/internal/core/domain"
	"github.com/gestaocontabil/backend/internal/core/ports"
	"github.com/gestaocontabil/backend/internal/core/service"
	"github.com/gestaocontabil/backend/internal/infrastructure/config"
	mongodb "github.com/gestaocontabil/backend/internal/infrastructure/db/mongo"
	"github.com/gestaocontabil/backend/pkg/logger"
)

var (
	seedEmail    string
	seedName     string
	seedPassword string
)

// seedAdminCmd bootstraps the first ADMIN account. Every other account is
// created through the API by an admin; this command breaks the chicken-and-egg
// on a fresh deployment.
var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Creates the initial ADMIN account",
	RunE:  runSeedAdmin,
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedEmail, "email", "", "admin email (required)")
	seedAdminCmd.Flags().StringVar(&seedName, "name", "Administrador", "admin display name")
	seedAdminCmd.Flags().StringVar(&seedPassword, "password", "", "admin password (required, min 8 chars)")
	_ = seedAdminCmd.MarkFlagRequired("email")
	_ = seedAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(seedAdminCmd)
}

func runSeedAdmin(cmd *cobra.Command, _ []string) error {
	if len(seedPassword) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	ctx := cmd.Context()
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.IsDevelopment()})

	mongoClient, db, err := mongodb.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Timeout)
	if err != nil {
		return err
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	accountRepo := mongodb.NewAccountRepository(db)
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	accounts := service.NewAccountService(accountRepo, log)
	account, err := accounts.Create(ctx, ports.CreateAccountInput{
		Email:    seedEmail,
		Name:     seedName,
		Password: seedPassword,
		Role:     domain.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAccountExists) {
			return fmt.Errorf("an account with email %s already exists", seedEmail)
		}
		return err
	}

	log.Info().Str("account_id", account.ID).Str("email", account.Email).Msg("admin account created")
	return nil
}

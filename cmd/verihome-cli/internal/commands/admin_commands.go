package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/infrastructure/auth"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// AdminCommandHandler encapsulates logic for managing administrator accounts via CLI.
type AdminCommandHandler struct {
	logger logger.Logger
}

// NewAdminCommandHandler initializes and returns an AdminCommandHandler
// instance with a configured logger.
func NewAdminCommandHandler() (*AdminCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &AdminCommandHandler{
		logger: loggerInstance,
	}, nil
}

// CreateAdminCmd creates a verified account with the admin flag set
func (commandHandler *AdminCommandHandler) CreateAdminCmd(cmd *cobra.Command, _ []string) {
	email, err := cmd.Flags().GetString("email")
	if err != nil {
		commandHandler.logger.Error("invalid email flag ", err)
		return
	}
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		commandHandler.logger.Error("invalid password flag ", err)
		return
	}
	firstName, err := cmd.Flags().GetString("first-name")
	if err != nil {
		commandHandler.logger.Error("invalid first-name flag ", err)
		return
	}
	lastName, err := cmd.Flags().GetString("last-name")
	if err != nil {
		commandHandler.logger.Error("invalid last-name flag ", err)
		return
	}
	role, err := cmd.Flags().GetString("role")
	if err != nil {
		commandHandler.logger.Error("invalid role flag ", err)
		return
	}

	if email == "" || password == "" {
		commandHandler.logger.Error("email and password are required")
		return
	}
	if len(password) < 8 {
		commandHandler.logger.Error("password must be at least 8 characters")
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	db, err := openDatabase(cfg)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}
	defer closeDatabase(db, commandHandler.logger)

	userRepo, err := persistence.NewGormUserRepository(db, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	hasher, err := auth.NewBcryptHasher(commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	ctx := cmd.Context()
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := userRepo.GetByEmail(ctx, email); err == nil {
		commandHandler.logger.Error("an account with email ", email, " already exists")
		return
	} else if !errors.Is(err, accounts.ErrNotFound) {
		commandHandler.logger.Error(err)
		return
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	user := &accounts.User{
		ID:              uuid.New().String(),
		Email:           email,
		PasswordHash:    hash,
		FirstName:       firstName,
		LastName:        lastName,
		Role:            role,
		IsAdmin:         true,
		IsVerified:      true,
		DateTimeCreated: time.Now().UTC(),
	}

	if err := userRepo.Create(ctx, user); err != nil {
		commandHandler.logger.Error(err)
		return
	}

	commandHandler.logger.Info("Created administrator account ", email, " with id ", user.ID)
}

// InitAdminCommands registers administrator account commands
func InitAdminCommands(rootCmd *cobra.Command) error {
	handler, err := NewAdminCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create admin command handler %w", err)
	}

	var createAdminCmd = &cobra.Command{
		Use:   "create-admin",
		Short: "Create a verified administrator account",
		Run:   handler.CreateAdminCmd,
	}
	createAdminCmd.Flags().StringP("email", "", "", "Email address of the new administrator")
	createAdminCmd.Flags().StringP("password", "", "", "Password of the new administrator (min 8 characters)")
	createAdminCmd.Flags().StringP("first-name", "", "Admin", "First name of the new administrator")
	createAdminCmd.Flags().StringP("last-name", "", "User", "Last name of the new administrator")
	createAdminCmd.Flags().StringP("role", "", accounts.RoleServiceProvider, "Marketplace role recorded on the account")
	rootCmd.AddCommand(createAdminCmd)

	return nil
}

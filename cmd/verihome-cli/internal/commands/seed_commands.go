package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/wilsonA2000/verihome/internal/domain/accounts"
	"github.com/wilsonA2000/verihome/internal/domain/properties"
	"github.com/wilsonA2000/verihome/internal/infrastructure/auth"
	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence"
	"github.com/wilsonA2000/verihome/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Demo account emails. The landlord doubles as the idempotency marker: when
// it exists the seed command assumes the data is already loaded.
const (
	demoLandlordEmail = "demo.landlord@verihome.co"
	demoTenantEmail   = "demo.tenant@verihome.co"
)

// SeedCommandHandler encapsulates logic for loading demo data via CLI.
type SeedCommandHandler struct {
	logger logger.Logger
}

// NewSeedCommandHandler initializes and returns a SeedCommandHandler instance
// with a configured logger.
func NewSeedCommandHandler() (*SeedCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &SeedCommandHandler{
		logger: loggerInstance,
	}, nil
}

// SeedCmd loads a demo landlord and tenant plus a handful of listings.
// Writes go through the repositories directly so seeding triggers no
// notifications or welcome emails.
func (commandHandler *SeedCommandHandler) SeedCmd(cmd *cobra.Command, _ []string) {
	password, err := cmd.Flags().GetString("password")
	if err != nil {
		commandHandler.logger.Error("invalid password flag ", err)
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

	propertyRepo, err := persistence.NewGormPropertyRepository(db, commandHandler.logger)
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

	if _, err := userRepo.GetByEmail(ctx, demoLandlordEmail); err == nil {
		commandHandler.logger.Info("Demo data already loaded, nothing to do")
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

	now := time.Now().UTC()
	landlord := &accounts.User{
		ID:              uuid.New().String(),
		Email:           demoLandlordEmail,
		PasswordHash:    hash,
		FirstName:       "Carolina",
		LastName:        "Duarte",
		Phone:           "+57 301 555 0134",
		Role:            accounts.RoleLandlord,
		IsVerified:      true,
		About:           "Demo landlord account with three published listings.",
		DateTimeCreated: now,
	}
	tenant := &accounts.User{
		ID:              uuid.New().String(),
		Email:           demoTenantEmail,
		PasswordHash:    hash,
		FirstName:       "Andres",
		LastName:        "Pardo",
		Phone:           "+57 310 555 0187",
		Role:            accounts.RoleTenant,
		IsVerified:      true,
		About:           "Demo tenant account for trying the match workflow.",
		DateTimeCreated: now,
	}

	for _, user := range []*accounts.User{landlord, tenant} {
		if err := userRepo.Create(ctx, user); err != nil {
			commandHandler.logger.Error(err)
			return
		}
	}

	listings := demoListings(landlord.ID, now)
	for _, property := range listings {
		if err := propertyRepo.Create(ctx, property); err != nil {
			commandHandler.logger.Error(err)
			return
		}
	}

	commandHandler.logger.Info("Seeded ", demoLandlordEmail, ", ", demoTenantEmail, " and ", len(listings), " listings")
}

// demoListings builds the seed properties owned by the demo landlord
func demoListings(landlordID string, now time.Time) []*properties.Property {
	return []*properties.Property{
		{
			ID:              uuid.New().String(),
			LandlordID:      landlordID,
			Title:           "Apartamento luminoso en Chapinero",
			Description:     "Two bedroom apartment on the seventh floor, close to the TransMilenio and the financial district.",
			PropertyType:    properties.TypeApartment,
			Status:          properties.StatusAvailable,
			Address:         "Carrera 9 # 60-15",
			City:            "Bogota",
			State:           "Cundinamarca",
			Country:         "Colombia",
			Latitude:        4.6486,
			Longitude:       -74.0628,
			Bedrooms:        2,
			Bathrooms:       1,
			AreaSqm:         58.5,
			RentPriceCents:  230000000,
			DepositCents:    230000000,
			Currency:        "COP",
			Amenities:       []string{"laundry", "balcony", "elevator"},
			Furnished:       true,
			AvailableFrom:   now,
			DateTimeCreated: now,
			DateTimeUpdated: now,
		},
		{
			ID:              uuid.New().String(),
			LandlordID:      landlordID,
			Title:           "Casa familiar en El Poblado",
			Description:     "Three bedroom house with a private garden and garage for two cars.",
			PropertyType:    properties.TypeHouse,
			Status:          properties.StatusAvailable,
			Address:         "Calle 10 Sur # 34-20",
			City:            "Medellin",
			State:           "Antioquia",
			Country:         "Colombia",
			Latitude:        6.2088,
			Longitude:       -75.5673,
			Bedrooms:        3,
			Bathrooms:       2,
			AreaSqm:         120,
			RentPriceCents:  380000000,
			DepositCents:    380000000,
			Currency:        "COP",
			Amenities:       []string{"garden", "garage"},
			PetsAllowed:     true,
			AvailableFrom:   now,
			DateTimeCreated: now,
			DateTimeUpdated: now,
		},
		{
			ID:              uuid.New().String(),
			LandlordID:      landlordID,
			Title:           "Habitacion amoblada cerca a la Nacional",
			Description:     "Furnished room with a private bathroom, utilities included.",
			PropertyType:    properties.TypeRoom,
			Status:          properties.StatusAvailable,
			Address:         "Calle 45 # 30-41",
			City:            "Bogota",
			State:           "Cundinamarca",
			Country:         "Colombia",
			Latitude:        4.6358,
			Longitude:       -74.0833,
			Bedrooms:        1,
			Bathrooms:       1,
			AreaSqm:         18,
			RentPriceCents:  95000000,
			Currency:        "COP",
			Amenities:       []string{"utilities_included", "wifi"},
			Furnished:       true,
			AvailableFrom:   now,
			DateTimeCreated: now,
			DateTimeUpdated: now,
		},
	}
}

// InitSeedCommands registers seed-related commands
func InitSeedCommands(rootCmd *cobra.Command) error {
	handler, err := NewSeedCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create seed command handler %w", err)
	}

	var seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load demo accounts and listings",
		Run:   handler.SeedCmd,
	}
	seedCmd.Flags().StringP("password", "", "verihome-demo", "Password assigned to the demo accounts")
	rootCmd.AddCommand(seedCmd)

	return nil
}

package persistence

import (
	"fmt"

	"github.com/wilsonA2000/verihome/internal/infrastructure/persistence/models"

	"gorm.io/gorm"
)

// MigrateAll runs the schema migrations for every persisted model.
func MigrateAll(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.UserModel{},
		&models.PropertyModel{},
		&models.MatchModel{},
		&models.LeaseModel{},
		&models.SignatureModel{},
		&models.ThreadModel{},
		&models.MessageModel{},
		&models.TransactionModel{},
		&models.PaymentPlanModel{},
		&models.InstallmentModel{},
		&models.RatingModel{},
		&models.NotificationModel{},
		&models.ActivityModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

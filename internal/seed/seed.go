package seed

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"waymark/internal/logs"
	"waymark/internal/models"
)

// Run создаёт демо-аккаунты, если их ещё нет (идемпотентно).
// Общий пароль у всех — из конфига; активным аккаунтам создаются
// дефолтные настройки.
func Run(ctx context.Context, db *gorm.DB, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	accounts := []models.User{
		{OrganizationID: "ORG001", DisplayName: "John Admin", Login: "admin",
			UserType: models.UserTypeAdministrator, Status: models.StatusActive},
		{OrganizationID: "ORG001", DisplayName: "Jane Owner", Login: "owner",
			UserType: models.UserTypeOrganizationOwner, Status: models.StatusActive},
		{OrganizationID: "ORG001", DisplayName: "Bob User", Login: "user1",
			UserType: models.UserTypeUser, Status: models.StatusActive},
		{OrganizationID: "ORG002", DisplayName: "Alice Suspended", Login: "suspended",
			UserType: models.UserTypeUser, Status: models.StatusSuspended},
		{OrganizationID: "ORG002", DisplayName: "Charlie Expired", Login: "expired",
			UserType: models.UserTypeUser, Status: models.StatusExpired},
	}

	tx := db.WithContext(ctx)
	for _, a := range accounts {
		var existing models.User
		err := tx.Where(&models.User{Login: a.Login}).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		a.Password = string(hash)
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		if a.Status == models.StatusActive {
			p := models.UserPreferences{
				UserID:         a.ID,
				Theme:          models.DefaultTheme,
				DatetimeFormat: models.DefaultDatetimeFormat,
			}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}
		logs.Logger.Infof("seed: created user %s (%s)", a.DisplayName, a.Login)
	}
	return nil
}

package seed

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"waymark/internal/models"
)

func TestRun_Idempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserPreferences{}))

	ctx := context.Background()
	require.NoError(t, Run(ctx, db, "password123"))
	require.NoError(t, Run(ctx, db, "password123")) // повтор ничего не добавляет

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.EqualValues(t, 5, users)

	// настройки — только у активных
	var prefs int64
	require.NoError(t, db.Model(&models.UserPreferences{}).Count(&prefs).Error)
	require.EqualValues(t, 3, prefs)

	var admin models.User
	require.NoError(t, db.Where("login = ?", "admin").First(&admin).Error)
	require.Equal(t, models.UserTypeAdministrator, admin.UserType)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("password123")))

	var suspended models.User
	require.NoError(t, db.Where("login = ?", "suspended").First(&suspended).Error)
	require.Equal(t, models.StatusSuspended, suspended.Status)
}

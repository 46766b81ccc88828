package repo

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"waymark/internal/models"
)

type UserStore struct{ db *gorm.DB }

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{db: db} }

// FindByLogin ищет аккаунт по логину (userId клиента) вместе с настройками.
func (s *UserStore) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Preload("Preferences").
		Where(&models.User{Login: login}).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Preload("Preferences").
		Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetPreferences возвращает настройки пользователя; если записи ещё нет —
// дефолты (без создания записи).
func (s *UserStore) GetPreferences(ctx context.Context, userID string) (*models.UserPreferences, error) {
	var p models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.UserPreferences{
			UserID:         userID,
			Theme:          models.DefaultTheme,
			DatetimeFormat: models.DefaultDatetimeFormat,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPreferences — частичное обновление: nil-поля не трогаются,
// отсутствующая запись создаётся лениво с дефолтами.
func (s *UserStore) UpsertPreferences(ctx context.Context, userID string, theme, datetimeFormat *string) (*models.UserPreferences, error) {
	tx := s.db.WithContext(ctx)

	var p models.UserPreferences
	err := tx.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.UserPreferences{
			UserID:         userID,
			Theme:          models.DefaultTheme,
			DatetimeFormat: models.DefaultDatetimeFormat,
		}
		if theme != nil {
			p.Theme = *theme
		}
		if datetimeFormat != nil {
			p.DatetimeFormat = *datetimeFormat
		}
		if err := tx.Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if theme != nil {
		updates["theme"] = *theme
	}
	if datetimeFormat != nil {
		updates["datetime_format"] = *datetimeFormat
	}
	if len(updates) > 0 {
		if err := tx.Model(&p).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &p, nil
}

// GetMapPrefs читает блоб цветов карты. Отсутствие записи или битый JSON —
// не ошибка: возвращаются дефолтные цвета.
func (s *UserStore) GetMapPrefs(ctx context.Context, userID string) (models.MapPrefs, error) {
	var p models.UserPreferences
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DefaultMapPrefs(), nil
	}
	if err != nil {
		return models.MapPrefs{}, err
	}
	if len(p.MapPreferences) == 0 {
		return models.DefaultMapPrefs(), nil
	}
	var mp models.MapPrefs
	if err := json.Unmarshal(p.MapPreferences, &mp); err != nil {
		return models.DefaultMapPrefs(), nil
	}
	return mp, nil
}

// PutMapPrefs сохраняет блоб целиком (last-write-wins, без слияния
// с предыдущим значением — см. DESIGN.md).
func (s *UserStore) PutMapPrefs(ctx context.Context, userID string, prefs models.MapPrefs) error {
	tx := s.db.WithContext(ctx)

	var exists int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&exists).Error; err != nil {
		return err
	}
	if exists == 0 {
		return ErrNotFound
	}

	blob, err := json.Marshal(prefs)
	if err != nil {
		return err
	}

	var p models.UserPreferences
	err = tx.Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = models.UserPreferences{
			UserID:         userID,
			Theme:          models.DefaultTheme,
			DatetimeFormat: models.DefaultDatetimeFormat,
			MapPreferences: datatypes.JSON(blob),
		}
		return tx.Create(&p).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&p).Update("map_preferences", datatypes.JSON(blob)).Error
}

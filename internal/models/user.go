package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Роли аккаунта.
const (
	UserTypeUser              = "USER"
	UserTypeAdministrator     = "ADMINISTRATOR"
	UserTypeOrganizationOwner = "ORGANIZATION_OWNER"
)

// Статусы аккаунта.
const (
	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
	StatusExpired   = "EXPIRED"
)

// User — учётная запись. Login (userId для клиента) глобально уникален;
// пароль наружу не сериализуется.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OrganizationID    string     `gorm:"size:64;not null" json:"organizationId"`
	DisplayName       string     `gorm:"size:255" json:"displayName"`
	Login             string     `gorm:"uniqueIndex;size:255;not null" json:"userId"`
	Password          string     `gorm:"size:255;not null" json:"-"`
	UserType          string     `gorm:"size:32;not null;default:USER" json:"userType"`
	Status            string     `gorm:"size:32;not null;default:ACTIVE" json:"status"`
	AccountValidUntil *time.Time `json:"accountValidUntil,omitempty"`

	Preferences *UserPreferences `gorm:"foreignKey:UserID" json:"preferences"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// UserPreferences — настройки пользователя, 1:1 с User.
// MapPreferences — непрозрачный JSON-блоб с цветами карты.
type UserPreferences struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	UserID         string         `gorm:"uniqueIndex;size:36;not null" json:"-"`
	Theme          string         `gorm:"size:16;not null;default:light" json:"theme"`
	DatetimeFormat string         `gorm:"size:64;not null;default:ISO" json:"datetimeFormat"`
	MapPreferences datatypes.JSON `json:"-"`
}

func (p *UserPreferences) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Дефолты настроек (используются и при ленивом создании записи).
const (
	DefaultTheme          = "light"
	DefaultDatetimeFormat = "ISO"
)

// MapPrefs — распакованные цвета карты.
type MapPrefs struct {
	PlaceMarkerColor string `json:"placeMarkerColor,omitempty"`
	RouteColor       string `json:"routeColor,omitempty"`
}

// Дефолтные цвета карты — отдаются, когда блоб отсутствует или не парсится.
const (
	DefaultPlaceMarkerColor = "#ef4444"
	DefaultRouteColor       = "#22c55e"
)

func DefaultMapPrefs() MapPrefs {
	return MapPrefs{
		PlaceMarkerColor: DefaultPlaceMarkerColor,
		RouteColor:       DefaultRouteColor,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Дефолты сохранённого места.
const (
	DefaultPlaceIcon  = "📍"
	DefaultPlaceColor = "#ef4444"
)

// MapPlaceList — пользовательский список мест.
// Записи жёстко удаляются: мягкое удаление ломало бы точный счёт delete-all.
type MapPlaceList struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID      string  `gorm:"index;size:36;not null" json:"userId"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"size:1024" json:"description"`

	Places []SavedPlace `gorm:"foreignKey:ListID;constraint:OnDelete:SET NULL" json:"places,omitempty"`
}

func (l *MapPlaceList) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// MapRouteList — пользовательский список маршрутов.
type MapRouteList struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID      string  `gorm:"index;size:36;not null" json:"userId"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Description *string `gorm:"size:1024" json:"description"`

	Routes []SavedRoute `gorm:"foreignKey:ListID;constraint:OnDelete:SET NULL" json:"routes,omitempty"`
}

func (l *MapRouteList) BeforeCreate(_ *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// SavedPlace — сохранённое место. ListID — необязательная привязка к списку
// (NULL = вне списка).
type SavedPlace struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID  string  `gorm:"index;size:36;not null" json:"userId"`
	Name    string  `gorm:"size:255;not null" json:"name"`
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
	Icon    string  `gorm:"size:16" json:"icon"`
	Color   string  `gorm:"size:16" json:"color"`
	GeoJSON *string `gorm:"type:text" json:"geojson,omitempty"`
	ListID  *string `gorm:"index;size:36" json:"listId"`
}

func (p *SavedPlace) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// SavedRoute — сохранённый маршрут с опорными точками и кодированной
// геометрией пути.
type SavedRoute struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserID      string  `gorm:"index;size:36;not null" json:"userId"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	OriginName  string  `gorm:"size:255" json:"originName"`
	OriginLon   float64 `json:"originLon"`
	OriginLat   float64 `json:"originLat"`
	DestName    string  `gorm:"size:255" json:"destName"`
	DestLon     float64 `json:"destLon"`
	DestLat     float64 `json:"destLat"`
	Stops       *string `gorm:"type:text" json:"stops,omitempty"`
	Distance    string  `gorm:"size:64" json:"distance"`
	Duration    string  `gorm:"size:64" json:"duration"`
	Coordinates string  `gorm:"type:text" json:"coordinates"`
	GeoJSON     *string `gorm:"type:text" json:"geojson,omitempty"`
	ListID      *string `gorm:"index;size:36" json:"listId"`
}

func (r *SavedRoute) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"waymark/internal/models"
)

func TestUserStore_FindByLogin(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	u := createUser(t, db, "alice")
	require.NoError(t, db.Create(&models.UserPreferences{
		UserID: u.ID, Theme: "dark", DatetimeFormat: "ISO",
	}).Error)

	got, err := s.FindByLogin(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.NotNil(t, got.Preferences)
	require.Equal(t, "dark", got.Preferences.Theme)

	_, err = s.FindByLogin(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserStore_Preferences_DefaultsAndMerge(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()
	u := createUser(t, db, "alice")

	// до первой записи — дефолты, запись не создаётся
	p, err := s.GetPreferences(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, models.DefaultTheme, p.Theme)
	require.Equal(t, models.DefaultDatetimeFormat, p.DatetimeFormat)

	// ленивое создание: незаданное поле получает дефолт
	p, err = s.UpsertPreferences(ctx, u.ID, strptr("dark"), nil)
	require.NoError(t, err)
	require.Equal(t, "dark", p.Theme)
	require.Equal(t, models.DefaultDatetimeFormat, p.DatetimeFormat)

	// частичное слияние: theme не задана — остаётся dark
	p, err = s.UpsertPreferences(ctx, u.ID, nil, strptr("DD.MM.YYYY"))
	require.NoError(t, err)
	require.Equal(t, "dark", p.Theme)
	require.Equal(t, "DD.MM.YYYY", p.DatetimeFormat)

	// пустой апдейт ничего не меняет
	p, err = s.UpsertPreferences(ctx, u.ID, nil, nil)
	require.NoError(t, err)
	require.Equal(t, "dark", p.Theme)
	require.Equal(t, "DD.MM.YYYY", p.DatetimeFormat)
}

func TestUserStore_MapPrefs_DefaultsAndFullReplace(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()
	u := createUser(t, db, "alice")

	// до записи — фиксированные дефолты
	mp, err := s.GetMapPrefs(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, models.DefaultPlaceMarkerColor, mp.PlaceMarkerColor)
	require.Equal(t, models.DefaultRouteColor, mp.RouteColor)

	// запись замещает блоб целиком: прежний placeMarkerColor не доливается
	require.NoError(t, s.PutMapPrefs(ctx, u.ID, models.MapPrefs{RouteColor: "#000000"}))
	mp, err = s.GetMapPrefs(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "#000000", mp.RouteColor)
	require.Empty(t, mp.PlaceMarkerColor)

	require.NoError(t, s.PutMapPrefs(ctx, u.ID, models.MapPrefs{
		PlaceMarkerColor: "#111111", RouteColor: "#222222",
	}))
	mp, err = s.GetMapPrefs(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "#111111", mp.PlaceMarkerColor)
	require.Equal(t, "#222222", mp.RouteColor)
}

func TestUserStore_MapPrefs_CorruptBlobSwallowed(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	ctx := context.Background()
	u := createUser(t, db, "alice")

	require.NoError(t, db.Create(&models.UserPreferences{
		UserID: u.ID, Theme: "light", DatetimeFormat: "ISO",
		MapPreferences: datatypes.JSON("{not json"),
	}).Error)

	// битый блоб — не ошибка, а дефолты
	mp, err := s.GetMapPrefs(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, models.DefaultMapPrefs(), mp)
}

func TestUserStore_PutMapPrefs_UnknownUser(t *testing.T) {
	db := newTestDB(t)
	s := NewUserStore(db)
	require.ErrorIs(t,
		s.PutMapPrefs(context.Background(), "no-such-id", models.MapPrefs{RouteColor: "#000"}),
		ErrNotFound)
}

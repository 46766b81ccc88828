package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"waymark/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// пул из одного соединения, иначе каждый коннект видит свою :memory:
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserPreferences{},
		&models.MapPlaceList{},
		&models.MapRouteList{},
		&models.SavedPlace{},
		&models.SavedRoute{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, login string) *models.User {
	t.Helper()
	u := models.User{
		OrganizationID: "ORG001",
		DisplayName:    login,
		Login:          login,
		Password:       "irrelevant",
		UserType:       models.UserTypeUser,
		Status:         models.StatusActive,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func strptr(s string) *string { return &s }

func setNull() models.NullableString { return models.NullableString{Set: true} }
func setTo(s string) models.NullableString {
	return models.NullableString{Set: true, Value: &s}
}

func TestMapStore_OwnershipScoping(t *testing.T) {
	db := newTestDB(t)
	s := NewMapStore(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	l, err := s.CreatePlaceList(ctx, bob.ID, ListInput{Name: "bob's list"})
	require.NoError(t, err)

	// чужой id для alice неотличим от несуществующего
	_, err = s.GetPlaceList(ctx, alice.ID, l.ID)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.UpdatePlaceList(ctx, alice.ID, l.ID, ListUpdate{Name: strptr("stolen")})
	require.ErrorIs(t, err, ErrNotFound)

	err = s.DeletePlaceList(ctx, alice.ID, l.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// у владельца всё работает, запись не пострадала
	got, err := s.GetPlaceList(ctx, bob.ID, l.ID)
	require.NoError(t, err)
	require.Equal(t, "bob's list", got.Name)
}

func TestMapStore_PlaceDefaultsAndListFilter(t *testing.T) {
	db := newTestDB(t)
	s := NewMapStore(db)
	ctx := context.Background()
	u := createUser(t, db, "alice")

	l, err := s.CreatePlaceList(ctx, u.ID, ListInput{Name: "trip"})
	require.NoError(t, err)

	inList, err := s.CreatePlace(ctx, u.ID, PlaceInput{Name: "cafe", Lon: 1, Lat: 2, ListID: &l.ID})
	require.NoError(t, err)
	require.Equal(t, models.DefaultPlaceIcon, inList.Icon)
	require.Equal(t, models.DefaultPlaceColor, inList.Color)

	loose, err := s.CreatePlace(ctx, u.ID, PlaceInput{Name: "park", Lon: 3, Lat: 4, Icon: "🌳", Color: "#00ff00"})
	require.NoError(t, err)
	require.Equal(t, "🌳", loose.Icon)
	require.Nil(t, loose.ListID)

	all, err := s.ListPlaces(ctx, u.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, loose.ID, all[0].ID) // свежие записи первыми

	filtered, err := s.ListPlaces(ctx, u.ID, l.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, inList.ID, filtered[0].ID)
}

func TestMapStore_UpdatePlace_PartialMerge(t *testing.T) {
	db := newTestDB(t)
	s := NewMapStore(db)
	ctx := context.Background()
	u := createUser(t, db, "alice")

	l, err := s.CreatePlaceList(ctx, u.ID, ListInput{Name: "trip"})
	require.NoError(t, err)
	p, err := s.CreatePlace(ctx, u.ID, PlaceInput{Name: "cafe", Lon: 1, Lat: 2, ListID: &l.ID})
	require.NoError(t, err)

	// пустой частичный апдейт ничего не меняет
	same, err := s.UpdatePlace(ctx, u.ID, p.ID, PlaceUpdate{})
	require.NoError(t, err)
	require.Equal(t, p.Name, same.Name)
	require.NotNil(t, same.ListID)

	// поле пропущено — членство в списке сохраняется
	upd, err := s.UpdatePlace(ctx, u.ID, p.ID, PlaceUpdate{Name: strptr("bistro")})
	require.NoError(t, err)
	require.Equal(t, "bistro", upd.Name)
	require.NotNil(t, upd.ListID)
	require.Equal(t, l.ID, *upd.ListID)

	// явный null — отвязка от списка
	detached, err := s.UpdatePlace(ctx, u.ID, p.ID, PlaceUpdate{ListID: setNull()})
	require.NoError(t, err)
	require.Nil(t, detached.ListID)
	require.Equal(t, "bistro", detached.Name)

	// и привязка обратно
	attached, err := s.UpdatePlace(ctx, u.ID, p.ID, PlaceUpdate{ListID: setTo(l.ID)})
	require.NoError(t, err)
	require.NotNil(t, attached.ListID)
	require.Equal(t, l.ID, *attached.ListID)
}

func TestMapStore_CrossOwnerPlaceOps(t *testing.T) {
	db := newTestDB(t)
	s := NewMapStore(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	p, err := s.CreatePlace(ctx, bob.ID, PlaceInput{Name: "secret", Lon: 1, Lat: 2})
	require.NoError(t, err)

	_, err = s.GetPlace(ctx, alice.ID, p.ID)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = s.UpdatePlace(ctx, alice.ID, p.ID, PlaceUpdate{Name: strptr("x")})
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.DeletePlace(ctx, alice.ID, p.ID), ErrNotFound)

	// запись бoба цела
	got, err := s.GetPlace(ctx, bob.ID, p.ID)
	require.NoError(t, err)
	require.Equal(t, "secret", got.Name)
}

func TestMapStore_DeleteAllCountsOnlyOwner(t *testing.T) {
	db := newTestDB(t)
	s := NewMapStore(db)
	ctx := context.Background()
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	for i := 0; i < 3; i++ {
		_, err := s.CreatePlace(ctx, alice.ID, PlaceInput{Name: "a", Lon: 1, Lat: 2})
		require.NoError(t, err)
	}
	_, err := s.CreatePlace(ctx, bob.ID, PlaceInput{Name: "b", Lon: 1, Lat: 2})
	require.NoError(t, err)

	n, err := s.DeleteAllPlaces(ctx, alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)

	left, err := s.ListPlaces(ctx, bob.ID, "")
	require.NoError(t, err)
	require.Len(t, left, 1)

	// повторный delete-all — ноль, не ошибка
	n, err = s.DeleteAllPlaces(ctx, alice.ID)
	require.NoError(t, err)
	require.EqualValues(t, 0, n)
}

func TestMapStore_RouteCRUD(t *testing.T) {
	db := newTestDB(t)
	s := NewMapStore(db)
	ctx := context.Background()
	u := createUser(t, db, "alice")

	rl, err := s.CreateRouteList(ctx, u.ID, ListInput{Name: "commutes", Description: strptr("daily")})
	require.NoError(t, err)

	r, err := s.CreateRoute(ctx, u.ID, RouteInput{
		Name:       "home-office",
		OriginName: "home", OriginLon: 1, OriginLat: 2,
		DestName: "office", DestLon: 3, DestLat: 4,
		Distance: "12 km", Duration: "25 min",
		Coordinates: "[[1,2],[3,4]]",
		ListID:      &rl.ID,
	})
	require.NoError(t, err)

	got, err := s.GetRoute(ctx, u.ID, r.ID)
	require.NoError(t, err)
	require.Equal(t, "home-office", got.Name)

	upd, err := s.UpdateRoute(ctx, u.ID, r.ID, RouteUpdate{Duration: strptr("30 min"), ListID: setNull()})
	require.NoError(t, err)
	require.Equal(t, "30 min", upd.Duration)
	require.Nil(t, upd.ListID)
	require.Equal(t, "12 km", upd.Distance)

	lists, err := s.ListRouteLists(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, lists, 1)

	require.NoError(t, s.DeleteRoute(ctx, u.ID, r.ID))
	require.ErrorIs(t, s.DeleteRoute(ctx, u.ID, r.ID), ErrNotFound)
}

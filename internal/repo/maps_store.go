package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"waymark/internal/models"
)

// MapStore — CRUD по четырём видам картографических записей. Каждое
// чтение/изменение/удаление разрешает запись одним запросом по паре
// (id, user_id): чужая запись неотличима от несуществующей.
type MapStore struct{ db *gorm.DB }

func NewMapStore(db *gorm.DB) *MapStore { return &MapStore{db: db} }

func (s *MapStore) scopedFirst(ctx context.Context, dst any, id, userID string) error {
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(dst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *MapStore) scopedDelete(ctx context.Context, model any, id, userID string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ---- списки ----

type ListInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type ListUpdate struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (u ListUpdate) updates() map[string]any {
	m := map[string]any{}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Description != nil {
		m["description"] = *u.Description
	}
	return m
}

func (s *MapStore) CreatePlaceList(ctx context.Context, userID string, in ListInput) (*models.MapPlaceList, error) {
	l := models.MapPlaceList{UserID: userID, Name: in.Name, Description: in.Description}
	if err := s.db.WithContext(ctx).Create(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *MapStore) ListPlaceLists(ctx context.Context, userID string) ([]models.MapPlaceList, error) {
	var out []models.MapPlaceList
	err := s.db.WithContext(ctx).Preload("Places").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *MapStore) GetPlaceList(ctx context.Context, userID, id string) (*models.MapPlaceList, error) {
	var l models.MapPlaceList
	err := s.db.WithContext(ctx).Preload("Places").
		Where("id = ? AND user_id = ?", id, userID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *MapStore) UpdatePlaceList(ctx context.Context, userID, id string, in ListUpdate) (*models.MapPlaceList, error) {
	var l models.MapPlaceList
	if err := s.scopedFirst(ctx, &l, id, userID); err != nil {
		return nil, err
	}
	if m := in.updates(); len(m) > 0 {
		if err := s.db.WithContext(ctx).Model(&l).Updates(m).Error; err != nil {
			return nil, err
		}
	}
	return &l, nil
}

func (s *MapStore) DeletePlaceList(ctx context.Context, userID, id string) error {
	return s.scopedDelete(ctx, &models.MapPlaceList{}, id, userID)
}

func (s *MapStore) CreateRouteList(ctx context.Context, userID string, in ListInput) (*models.MapRouteList, error) {
	l := models.MapRouteList{UserID: userID, Name: in.Name, Description: in.Description}
	if err := s.db.WithContext(ctx).Create(&l).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *MapStore) ListRouteLists(ctx context.Context, userID string) ([]models.MapRouteList, error) {
	var out []models.MapRouteList
	err := s.db.WithContext(ctx).Preload("Routes").
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *MapStore) GetRouteList(ctx context.Context, userID, id string) (*models.MapRouteList, error) {
	var l models.MapRouteList
	err := s.db.WithContext(ctx).Preload("Routes").
		Where("id = ? AND user_id = ?", id, userID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *MapStore) UpdateRouteList(ctx context.Context, userID, id string, in ListUpdate) (*models.MapRouteList, error) {
	var l models.MapRouteList
	if err := s.scopedFirst(ctx, &l, id, userID); err != nil {
		return nil, err
	}
	if m := in.updates(); len(m) > 0 {
		if err := s.db.WithContext(ctx).Model(&l).Updates(m).Error; err != nil {
			return nil, err
		}
	}
	return &l, nil
}

func (s *MapStore) DeleteRouteList(ctx context.Context, userID, id string) error {
	return s.scopedDelete(ctx, &models.MapRouteList{}, id, userID)
}

// ---- места ----

type PlaceInput struct {
	Name    string  `json:"name"`
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
	Icon    string  `json:"icon"`
	Color   string  `json:"color"`
	GeoJSON *string `json:"geojson"`
	ListID  *string `json:"listId"`
}

type PlaceUpdate struct {
	Name    *string               `json:"name"`
	Lon     *float64              `json:"lon"`
	Lat     *float64              `json:"lat"`
	Icon    *string               `json:"icon"`
	Color   *string               `json:"color"`
	GeoJSON *string               `json:"geojson"`
	ListID  models.NullableString `json:"listId"`
}

func (u PlaceUpdate) updates() map[string]any {
	m := map[string]any{}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.Lon != nil {
		m["lon"] = *u.Lon
	}
	if u.Lat != nil {
		m["lat"] = *u.Lat
	}
	if u.Icon != nil {
		m["icon"] = *u.Icon
	}
	if u.Color != nil {
		m["color"] = *u.Color
	}
	if u.GeoJSON != nil {
		m["geo_json"] = *u.GeoJSON
	}
	if u.ListID.Set {
		if u.ListID.Value == nil {
			m["list_id"] = nil // явный null — отвязать от списка
		} else {
			m["list_id"] = *u.ListID.Value
		}
	}
	return m
}

func (s *MapStore) CreatePlace(ctx context.Context, userID string, in PlaceInput) (*models.SavedPlace, error) {
	p := models.SavedPlace{
		UserID:  userID,
		Name:    in.Name,
		Lon:     in.Lon,
		Lat:     in.Lat,
		Icon:    in.Icon,
		Color:   in.Color,
		GeoJSON: in.GeoJSON,
		ListID:  in.ListID,
	}
	if p.Icon == "" {
		p.Icon = models.DefaultPlaceIcon
	}
	if p.Color == "" {
		p.Color = models.DefaultPlaceColor
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MapStore) ListPlaces(ctx context.Context, userID, listID string) ([]models.SavedPlace, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if listID != "" {
		q = q.Where("list_id = ?", listID)
	}
	var out []models.SavedPlace
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *MapStore) GetPlace(ctx context.Context, userID, id string) (*models.SavedPlace, error) {
	var p models.SavedPlace
	if err := s.scopedFirst(ctx, &p, id, userID); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MapStore) UpdatePlace(ctx context.Context, userID, id string, in PlaceUpdate) (*models.SavedPlace, error) {
	var p models.SavedPlace
	if err := s.scopedFirst(ctx, &p, id, userID); err != nil {
		return nil, err
	}
	if m := in.updates(); len(m) > 0 {
		if err := s.db.WithContext(ctx).Model(&p).Updates(m).Error; err != nil {
			return nil, err
		}
		// перечитываем, чтобы вернуть актуальное состояние (включая NULL list_id)
		if err := s.scopedFirst(ctx, &p, id, userID); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (s *MapStore) DeletePlace(ctx context.Context, userID, id string) error {
	return s.scopedDelete(ctx, &models.SavedPlace{}, id, userID)
}

func (s *MapStore) DeleteAllPlaces(ctx context.Context, userID string) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.SavedPlace{})
	return res.RowsAffected, res.Error
}

// ---- маршруты ----

type RouteInput struct {
	Name        string  `json:"name"`
	OriginName  string  `json:"originName"`
	OriginLon   float64 `json:"originLon"`
	OriginLat   float64 `json:"originLat"`
	DestName    string  `json:"destName"`
	DestLon     float64 `json:"destLon"`
	DestLat     float64 `json:"destLat"`
	Stops       *string `json:"stops"`
	Distance    string  `json:"distance"`
	Duration    string  `json:"duration"`
	Coordinates string  `json:"coordinates"`
	GeoJSON     *string `json:"geojson"`
	ListID      *string `json:"listId"`
}

type RouteUpdate struct {
	Name        *string               `json:"name"`
	OriginName  *string               `json:"originName"`
	OriginLon   *float64              `json:"originLon"`
	OriginLat   *float64              `json:"originLat"`
	DestName    *string               `json:"destName"`
	DestLon     *float64              `json:"destLon"`
	DestLat     *float64              `json:"destLat"`
	Stops       *string               `json:"stops"`
	Distance    *string               `json:"distance"`
	Duration    *string               `json:"duration"`
	Coordinates *string               `json:"coordinates"`
	GeoJSON     *string               `json:"geojson"`
	ListID      models.NullableString `json:"listId"`
}

func (u RouteUpdate) updates() map[string]any {
	m := map[string]any{}
	if u.Name != nil {
		m["name"] = *u.Name
	}
	if u.OriginName != nil {
		m["origin_name"] = *u.OriginName
	}
	if u.OriginLon != nil {
		m["origin_lon"] = *u.OriginLon
	}
	if u.OriginLat != nil {
		m["origin_lat"] = *u.OriginLat
	}
	if u.DestName != nil {
		m["dest_name"] = *u.DestName
	}
	if u.DestLon != nil {
		m["dest_lon"] = *u.DestLon
	}
	if u.DestLat != nil {
		m["dest_lat"] = *u.DestLat
	}
	if u.Stops != nil {
		m["stops"] = *u.Stops
	}
	if u.Distance != nil {
		m["distance"] = *u.Distance
	}
	if u.Duration != nil {
		m["duration"] = *u.Duration
	}
	if u.Coordinates != nil {
		m["coordinates"] = *u.Coordinates
	}
	if u.GeoJSON != nil {
		m["geo_json"] = *u.GeoJSON
	}
	if u.ListID.Set {
		if u.ListID.Value == nil {
			m["list_id"] = nil
		} else {
			m["list_id"] = *u.ListID.Value
		}
	}
	return m
}

func (s *MapStore) CreateRoute(ctx context.Context, userID string, in RouteInput) (*models.SavedRoute, error) {
	r := models.SavedRoute{
		UserID:      userID,
		Name:        in.Name,
		OriginName:  in.OriginName,
		OriginLon:   in.OriginLon,
		OriginLat:   in.OriginLat,
		DestName:    in.DestName,
		DestLon:     in.DestLon,
		DestLat:     in.DestLat,
		Stops:       in.Stops,
		Distance:    in.Distance,
		Duration:    in.Duration,
		Coordinates: in.Coordinates,
		GeoJSON:     in.GeoJSON,
		ListID:      in.ListID,
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MapStore) ListRoutes(ctx context.Context, userID, listID string) ([]models.SavedRoute, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if listID != "" {
		q = q.Where("list_id = ?", listID)
	}
	var out []models.SavedRoute
	err := q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *MapStore) GetRoute(ctx context.Context, userID, id string) (*models.SavedRoute, error) {
	var r models.SavedRoute
	if err := s.scopedFirst(ctx, &r, id, userID); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *MapStore) UpdateRoute(ctx context.Context, userID, id string, in RouteUpdate) (*models.SavedRoute, error) {
	var r models.SavedRoute
	if err := s.scopedFirst(ctx, &r, id, userID); err != nil {
		return nil, err
	}
	if m := in.updates(); len(m) > 0 {
		if err := s.db.WithContext(ctx).Model(&r).Updates(m).Error; err != nil {
			return nil, err
		}
		if err := s.scopedFirst(ctx, &r, id, userID); err != nil {
			return nil, err
		}
	}
	return &r, nil
}

func (s *MapStore) DeleteRoute(ctx context.Context, userID, id string) error {
	return s.scopedDelete(ctx, &models.SavedRoute{}, id, userID)
}

func (s *MapStore) DeleteAllRoutes(ctx context.Context, userID string) (int64, error) {
	res := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.SavedRoute{})
	return res.RowsAffected, res.Error
}

// Package client — клиентская сторона сессии: логин, хранение токена,
// предвосхищающая проверка истечения и реакция на 401 от сервера.
//
// Состояния: LoggedOut (state == nil) и LoggedIn (token + expiry + identity).
// Оба автоматических выхода (по локальному сроку и по 401) идемпотентны
// и не затирают сессию, залогиненную позже принятия решения о выходе.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"waymark/internal/auth"
	"waymark/internal/logs"
	"waymark/internal/models"
)

var (
	// ErrLoggedOut — операция требует активной сессии.
	ErrLoggedOut = errors.New("not logged in")
	// ErrSessionExpired — срок истёк локально либо сервер ответил 401.
	ErrSessionExpired = errors.New("session expired")
)

// Session — менеджер клиентской сессии. Все методы потокобезопасны.
type Session struct {
	baseURL string
	http    *http.Client
	storage Storage

	mu    sync.Mutex
	state *State // nil == LoggedOut

	// Хуки UI-оболочки; можно не задавать.
	ApplyTheme func(theme string) // "" — тему снять
	OnLogout   func()             // переход на стартовый маршрут
}

func New(baseURL string, storage Storage) *Session {
	return &Session{
		baseURL: baseURL,
		http:    &http.Client{},
		storage: storage,
	}
}

// LoggedIn — есть ли активная сессия.
func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != nil
}

// User — копия текущей идентичности (nil, если разлогинен).
func (s *Session) User() *auth.UserPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// Restore поднимает сессию из хранилища при старте процесса.
// Просроченное или нечитаемое состояние вычищается, остаёмся LoggedOut.
func (s *Session) Restore() {
	st, err := s.storage.Load()
	if err != nil || st == nil || st.Token == "" || st.User == nil {
		if err != nil {
			logs.Logger.Warnf("session: stale state cleared: %v", err)
		}
		_ = s.storage.Clear()
		return
	}
	if time.Now().UnixMilli() >= st.ExpiresAt {
		_ = s.storage.Clear()
		return
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
	s.applyTheme(st.User)
}

// Login выполняет POST /auth/login и переводит сессию в LoggedIn.
// Повторный логин просто замещает состояние, предварительный Logout не нужен.
func (s *Session) Login(ctx context.Context, userID, password string) (*auth.UserPayload, error) {
	body, _ := json.Marshal(auth.LoginRequest{UserID: userID, Password: password})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("login failed: %s", readMessage(resp.Body))
	}

	var lr auth.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, err
	}

	// exp в токене — секунды; храним миллисекунды
	exp, err := auth.TokenExpiry(lr.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("login: bad token: %w", err)
	}

	st := &State{
		Token:     lr.AccessToken,
		ExpiresAt: exp.UnixMilli(),
		User:      &lr.User,
	}
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()

	if err := s.storage.Save(st); err != nil {
		logs.Logger.Warnf("session: persist failed: %v", err)
	}
	s.applyTheme(&lr.User)
	return &lr.User, nil
}

// Logout — явный выход: чистит память и хранилище, снимает тему,
// уводит на стартовый маршрут. Повторный вызов — no-op.
func (s *Session) Logout() {
	s.mu.Lock()
	wasLoggedIn := s.state != nil
	s.state = nil
	s.mu.Unlock()
	if !wasLoggedIn {
		return
	}
	_ = s.storage.Clear()
	if s.ApplyTheme != nil {
		s.ApplyTheme("")
	}
	if s.OnLogout != nil {
		s.OnLogout()
	}
}

// logoutIf разлогинивает, только если токен всё ещё тот, по которому было
// принято решение: логин, завершившийся после устаревшей проверки, не
// должен быть затёрт.
func (s *Session) logoutIf(token string) {
	s.mu.Lock()
	if s.state == nil || s.state.Token != token {
		s.mu.Unlock()
		return
	}
	s.state = nil
	s.mu.Unlock()
	_ = s.storage.Clear()
	if s.ApplyTheme != nil {
		s.ApplyTheme("")
	}
	if s.OnLogout != nil {
		s.OnLogout()
	}
}

// Do — обёртка вокруг каждого защищённого запроса: перед отправкой
// перечитывает актуальное состояние и проверяет срок (без сети), после —
// трактует любой 401 как конец сессии.
func (s *Session) Do(req *http.Request) (*http.Response, error) {
	// срок проверяем по живому состоянию, не по снимку
	s.mu.Lock()
	if s.state == nil {
		s.mu.Unlock()
		return nil, ErrLoggedOut
	}
	token := s.state.Token
	expired := time.Now().UnixMilli() >= s.state.ExpiresAt
	s.mu.Unlock()

	if expired {
		logs.Logger.Warnf("session: token expired before request, logging out")
		s.logoutIf(token)
		return nil, ErrSessionExpired
	}

	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		logs.Logger.Warnf("session: server rejected token (401), logging out")
		s.logoutIf(token)
		return nil, ErrSessionExpired
	}
	return resp, nil
}

// UpdatePreferences — PUT /users/preferences с частичным телом. При успехе
// изменения вливаются в локальную идентичность и состояние переписывается;
// при любой ошибке локальное состояние не меняется.
func (s *Session) UpdatePreferences(ctx context.Context, theme, datetimeFormat *string) error {
	payload := map[string]any{}
	if theme != nil {
		payload["theme"] = *theme
	}
	if datetimeFormat != nil {
		payload["datetimeFormat"] = *datetimeFormat
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+"/users/preferences", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("update preferences failed: %s", readMessage(resp.Body))
	}

	s.mu.Lock()
	st := s.state
	if st != nil && st.User != nil {
		if st.User.Preferences == nil {
			st.User.Preferences = &models.UserPreferences{
				Theme:          models.DefaultTheme,
				DatetimeFormat: models.DefaultDatetimeFormat,
			}
		}
		if theme != nil {
			st.User.Preferences.Theme = *theme
		}
		if datetimeFormat != nil {
			st.User.Preferences.DatetimeFormat = *datetimeFormat
		}
	}
	s.mu.Unlock()

	if st != nil {
		if err := s.storage.Save(st); err != nil {
			logs.Logger.Warnf("session: persist failed: %v", err)
		}
		s.applyTheme(st.User)
	}
	return nil
}

func (s *Session) applyTheme(u *auth.UserPayload) {
	if s.ApplyTheme == nil {
		return
	}
	theme := models.DefaultTheme
	if u != nil && u.Preferences != nil && u.Preferences.Theme != "" {
		theme = u.Preferences.Theme
	}
	s.ApplyTheme(theme)
}

func readMessage(r io.Reader) string {
	var m struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r).Decode(&m); err != nil || m.Message == "" {
		return "unexpected server response"
	}
	return m.Message
}

package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"waymark/internal/auth"
)

// State — сохранённая сессия: токен, момент истечения (миллисекунды epoch)
// и идентичность. Пишется и чистится только целиком.
type State struct {
	Token     string            `json:"token"`
	ExpiresAt int64             `json:"expires_at"`
	User      *auth.UserPayload `json:"user"`
}

// Storage — долговременное хранилище состояния сессии.
type Storage interface {
	Load() (*State, error)
	Save(st *State) error
	Clear() error
}

// FileStorage хранит состояние в JSON-файле (аналог localStorage браузера).
type FileStorage struct{ path string }

func NewFileStorage(path string) *FileStorage { return &FileStorage{path: path} }

func (f *FileStorage) Load() (*State, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (f *FileStorage) Save(st *State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	// через временный файл, чтобы не оставить полузаписанное состояние
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStorage) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

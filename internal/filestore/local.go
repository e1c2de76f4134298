// Package filestore отвечает за долговременное хранение файлов квитанций.
//
// Store абстрагирует хранилище, LocalStore кладет файлы на диск под
// базовым каталогом. Ключ формируется из ID подписки, отметки времени
// и случайного суффикса, чтобы повторные попытки не затирали друг друга.
package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Store описывает контракт хранилища квитанций.
type Store interface {
	// Save записывает содержимое и возвращает ключ, по которому файл можно получить.
	Save(ctx context.Context, subscriptionID int, fileName string, r io.Reader) (string, error)
	// Remove удаляет файл по ключу. Используется для компенсации
	// при неудачном обновлении записи подписки.
	Remove(ctx context.Context, key string) error
}

// LocalStore хранит квитанции в локальной файловой системе.
type LocalStore struct {
	baseDir string
}

// NewLocalStore создает хранилище с базовым каталогом, создавая его при необходимости.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	const op = "filestore.NewLocalStore"
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save пишет файл во временное имя и атомарно переименовывает его в финальный ключ.
func (s *LocalStore) Save(ctx context.Context, subscriptionID int, fileName string, r io.Reader) (string, error) {
	const op = "filestore.Save"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	key := fmt.Sprintf("%d_%d_%s%s",
		subscriptionID, time.Now().UTC().UnixNano(), uuid.NewString()[:8], filepath.Ext(fileName))
	fullPath := filepath.Join(s.baseDir, key)

	tmp, err := os.CreateTemp(s.baseDir, "upload-*")
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if _, err = io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err = os.Rename(tmp.Name(), fullPath); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return key, nil
}

// Remove удаляет файл по ключу, отсутствие файла ошибкой не считается.
func (s *LocalStore) Remove(_ context.Context, key string) error {
	const op = "filestore.Remove"
	err := os.Remove(filepath.Join(s.baseDir, key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

package db

import (
	"Academy/internal/models"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

//go:embed programs.yaml
var defaultCatalog []byte

// LoadCatalog читает каталог курсов из файла; пустой путь — встроенный каталог.
func LoadCatalog(path string) ([]models.ProgramSeed, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
		data = b
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) ([]models.ProgramSeed, error) {
	var seeds []models.ProgramSeed
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	for i, s := range seeds {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("parse catalog: entry %d has no name", i)
		}
	}
	return seeds, nil
}

// SeedPrograms добавляет курсы, которых ещё нет (по name). Возвращает число созданных.
func (s *Store) SeedPrograms(ctx context.Context, seeds []models.ProgramSeed) (int, error) {
	created := 0
	for _, seed := range seeds {
		_, err := s.ProgramByName(ctx, seed.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return created, err
		}

		p := models.Program{Name: seed.Name}
		if seed.Description != "" {
			desc := seed.Description
			p.Description = &desc
		}
		if _, err := s.CreateProgram(ctx, p); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// HashPassword — bcrypt-хэш для колонки admins.password.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// EnsureAdmin создаёт администратора, если такого username ещё нет.
// Существующий пароль не трогает.
func (s *Store) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		return false, fmt.Errorf("ensure admin: username and password are required")
	}
	_, err := s.AdminByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}
	if _, err := s.CreateAdmin(ctx, username, hash); err != nil {
		return false, err
	}
	return true, nil
}

// SetPassword меняет пароль администратора, создавая запись при отсутствии.
func (s *Store) SetPassword(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("set password: username and password are required")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	err = s.SetAdminPassword(ctx, username, hash)
	if errors.Is(err, ErrNotFound) {
		_, err = s.CreateAdmin(ctx, username, hash)
	}
	return err
}

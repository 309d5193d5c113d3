package cli

import (
	"Academy/internal/config"
	"Academy/internal/db"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// openStore подключается к базе и создаёт схему.
func openStore(ctx context.Context, cfg config.Config) (*db.Store, *sql.DB, error) {
	conn, dialect, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx, conn, dialect); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	return db.NewStore(conn, dialect), conn, nil
}

// seed — идемпотентное заполнение каталога и учётки администратора.
// Пароль по умолчанию в коде не зашит: без ADMIN_PASSWORD админ не создаётся.
func seed(ctx context.Context, store *db.Store, cfg config.Config, log *slog.Logger) error {
	catalog, err := db.LoadCatalog(cfg.ProgramsFile)
	if err != nil {
		return err
	}
	created, err := store.SeedPrograms(ctx, catalog)
	if err != nil {
		return fmt.Errorf("seed programs: %w", err)
	}
	log.Info("programs seeded", "created", created, "catalog", len(catalog))

	if cfg.AdminPassword == "" {
		_, err := store.AdminByUsername(ctx, cfg.AdminUsername)
		switch {
		case errors.Is(err, db.ErrNotFound):
			log.Warn("no admin account and ADMIN_PASSWORD is empty; run `academy admin set-password`",
				"username", cfg.AdminUsername)
			return nil
		case err != nil:
			return fmt.Errorf("seed admin: %w", err)
		}
		return nil
	}

	made, err := store.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if made {
		log.Info("admin account created", "username", cfg.AdminUsername)
	}
	return nil
}

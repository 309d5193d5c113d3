package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect — какой бэкенд стоит за *sql.DB. Влияет на DDL и плейсхолдеры.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Rebind переписывает плейсхолдеры "?" в "$1, $2, ..." для lib/pq.
// В наших запросах "?" внутри строковых литералов не встречается.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// parseURL выбирает драйвер по схеме DATABASE_URL.
//
//	postgres://... | postgresql://...  -> lib/pq
//	sqlite://path  | sqlite://:memory: -> modernc.org/sqlite
//	file:...                           -> modernc.org/sqlite как есть
func parseURL(databaseURL string) (Dialect, string, error) {
	raw := strings.TrimSpace(databaseURL)
	switch {
	case raw == "":
		return "", "", fmt.Errorf("db: empty database url")
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return Postgres, raw, nil
	case strings.HasPrefix(raw, "sqlite://"):
		path := strings.TrimPrefix(raw, "sqlite://")
		if path == "" {
			return "", "", fmt.Errorf("db: sqlite url without path")
		}
		return SQLite, path, nil
	case strings.HasPrefix(raw, "file:"):
		return SQLite, raw, nil
	default:
		return "", "", fmt.Errorf("db: unsupported database url scheme in %q", redact(raw))
	}
}

// Open подключается к базе, настраивает пул и проверяет соединение.
func Open(ctx context.Context, databaseURL string) (*sql.DB, Dialect, error) {
	dialect, dsn, err := parseURL(databaseURL)
	if err != nil {
		return nil, "", err
	}

	conn, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("db: open failed: %w", err)
	}

	switch dialect {
	case Postgres:
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(30 * time.Minute)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	case SQLite:
		// Один писатель; для :memory: это ещё и единственная копия базы.
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		if _, err := conn.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			closeQuietly(conn)
			return nil, "", fmt.Errorf("db: set busy timeout: %w", err)
		}
	}

	// Ping с таймаутом (не вешаем процесс)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		closeQuietly(conn)
		return nil, "", fmt.Errorf("db: ping failed: %w", err)
	}

	// Логируем безопасно (без пароля)
	slog.Info("db: connected", "dialect", dialect, "target", redact(databaseURL))
	return conn, dialect, nil
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		slog.Error("db: close failed", "error", err)
	}
}

// redact убирает пароль из URL перед логированием.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

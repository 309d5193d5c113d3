package db

import (
	"Academy/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("db: not found")

// Store — доступ к данным поверх явно переданного *sql.DB.
type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

func NewStore(conn *sql.DB, dialect Dialect) *Store {
	return &Store{db: conn, dialect: dialect, now: time.Now}
}

// WithClock подменяет часы, которыми штампуются заявки.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) q(query string) string {
	return s.dialect.Rebind(query)
}

// ---------- programs ----------

func (s *Store) ListPrograms(ctx context.Context) ([]models.Program, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, description FROM programs ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	defer rows.Close()

	list := make([]models.Program, 0, 8)
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Description); err != nil {
			return nil, fmt.Errorf("scan program: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return list, nil
}

func (s *Store) ProgramByName(ctx context.Context, name string) (models.Program, error) {
	var p models.Program
	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT id, name, description FROM programs WHERE name = ? ORDER BY id LIMIT 1`), name).
		Scan(&p.ID, &p.Name, &p.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Program{}, ErrNotFound
	} else if err != nil {
		return models.Program{}, fmt.Errorf("program by name: %w", err)
	}
	return p, nil
}

func (s *Store) CreateProgram(ctx context.Context, p models.Program) (int64, error) {
	var id int64
	if err := s.db.QueryRowContext(ctx,
		s.q(`INSERT INTO programs (name, description) VALUES (?, ?) RETURNING id`),
		p.Name, p.Description,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("create program: %w", err)
	}
	return id, nil
}

// ---------- enquiries ----------

// CreateEnquiry сохраняет заявку. Если дата не задана, ставим текущее время в UTC.
func (s *Store) CreateEnquiry(ctx context.Context, e models.Enquiry) (int64, error) {
	if e.EnquiryDate.IsZero() {
		e.EnquiryDate = s.now()
	}
	e.EnquiryDate = e.EnquiryDate.UTC()

	var id int64
	if err := s.db.QueryRowContext(ctx,
		s.q(`INSERT INTO enquiries (name, email, address, contact_no, program_id, enquiry_date)
			VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		e.Name, e.Email, e.Address, e.ContactNo, e.ProgramID, e.EnquiryDate,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("create enquiry: %w", err)
	}
	return id, nil
}

// ListEnquiries — все заявки с названием курса. LEFT JOIN: «висячие» тоже видны.
func (s *Store) ListEnquiries(ctx context.Context) ([]models.EnquiryRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, e.name, e.email, e.address, e.contact_no, e.program_id, e.enquiry_date,
		       COALESCE(p.name, '')
		FROM enquiries e
		LEFT JOIN programs p ON p.id = e.program_id
		ORDER BY e.id`)
	if err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}
	defer rows.Close()

	list := make([]models.EnquiryRow, 0, 64)
	for rows.Next() {
		var e models.EnquiryRow
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Email, &e.Address, &e.ContactNo, &e.ProgramID,
			timestamp{&e.EnquiryDate}, &e.ProgramName,
		); err != nil {
			return nil, fmt.Errorf("scan enquiry: %w", err)
		}
		list = append(list, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list enquiries: %w", err)
	}
	return list, nil
}

// ---------- admins ----------

func (s *Store) AdminByUsername(ctx context.Context, username string) (models.Admin, error) {
	var a models.Admin
	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT id, username, password FROM admins WHERE username = ?`), username).
		Scan(&a.ID, &a.Username, &a.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrNotFound
	} else if err != nil {
		return models.Admin{}, fmt.Errorf("admin by username: %w", err)
	}
	return a, nil
}

func (s *Store) CreateAdmin(ctx context.Context, username, passwordHash string) (int64, error) {
	var id int64
	if err := s.db.QueryRowContext(ctx,
		s.q(`INSERT INTO admins (username, password) VALUES (?, ?) RETURNING id`),
		username, passwordHash,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("create admin: %w", err)
	}
	return id, nil
}

func (s *Store) SetAdminPassword(ctx context.Context, username, passwordHash string) error {
	res, err := s.db.ExecContext(ctx,
		s.q(`UPDATE admins SET password = ? WHERE username = ?`), passwordHash, username)
	if err != nil {
		return fmt.Errorf("set admin password: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set admin password: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------- helpers ----------

// timestamp сканирует время из обоих драйверов: lib/pq отдаёт time.Time,
// sqlite может вернуть текст, если тип колонки не распознан.
type timestamp struct{ t *time.Time }

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.t = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.t = time.Time{}
		return nil
	default:
		return fmt.Errorf("timestamp: unsupported type %T", src)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.t = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("timestamp: cannot parse %q", s)
}

package sessions

import (
	"Academy/internal/models"
	"crypto/sha256"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "admin_session"
	tokenIssuer = "academy"

	// RoleAdmin — единственная роль в системе.
	RoleAdmin = "admin"

	keyLoggedIn = "logged_in"
	keyUsername = "username"
	keyToken    = "token"
)

var ErrInvalidToken = errors.New("sessions: invalid admin token")

func init() {
	// flash-сообщения лежат в куке через gob
	gob.Register(models.Flash{})
}

// Claims — полезная нагрузка токена администратора.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Manager хранит сессию в подписанной и зашифрованной куке.
// Сам признак входа подтверждается JWT с subject/role/exp.
type Manager struct {
	store *sessions.CookieStore
	key   []byte
	ttl   time.Duration
	now   func() time.Time
}

func New(secret string, ttl time.Duration, secure bool) *Manager {
	// Делаем 2 ключа: подпись + шифрование. Третий — для JWT.
	h := sha256.Sum256([]byte("auth:" + secret))
	e := sha256.Sum256([]byte("enc:" + secret))
	j := sha256.Sum256([]byte("jwt:" + secret))

	store := sessions.NewCookieStore(h[:], e[:])
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode, // кука по GET тоже отправится
		Secure:   secure,
	}
	store.MaxAge(int(ttl / time.Second)) // и для куки, и для securecookie
	return &Manager{store: store, key: j[:], ttl: ttl, now: time.Now}
}

// WithClock подменяет часы для выдачи и проверки токенов.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// get отдаёт сессию; битая кука (например, после смены секрета) даёт новую пустую.
func (m *Manager) get(r *http.Request) (*sessions.Session, error) {
	s, err := m.store.Get(r, sessionName)
	if err != nil && s == nil {
		return nil, err
	}
	return s, nil
}

func (m *Manager) Save(w http.ResponseWriter, r *http.Request) error {
	s, err := m.get(r)
	if err != nil {
		return err
	}
	return s.Save(r, w)
}

// ---------- flash ----------

// AddFlash кладёт уведомление в сессию; сохранить нужно отдельно (Save/Login/Logout).
func (m *Manager) AddFlash(r *http.Request, f models.Flash) error {
	s, err := m.get(r)
	if err != nil {
		return err
	}
	s.AddFlash(f)
	return nil
}

// Flashes забирает накопленные уведомления и сохраняет сессию без них.
func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) ([]models.Flash, error) {
	s, err := m.get(r)
	if err != nil {
		return nil, err
	}
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]models.Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(models.Flash); ok {
			out = append(out, f)
		}
	}
	return out, s.Save(r, w)
}

// ---------- admin ----------

// Login отмечает сессию как вошедшую и кладёт свежий токен.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, username string) error {
	s, err := m.get(r)
	if err != nil {
		return err
	}
	token, err := m.Issue(username)
	if err != nil {
		return err
	}
	s.Values[keyLoggedIn] = true
	s.Values[keyUsername] = username
	s.Values[keyToken] = token
	return s.Save(r, w) // выставит Set-Cookie
}

func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) error {
	s, err := m.get(r)
	if err != nil {
		return err
	}
	delete(s.Values, keyLoggedIn)
	delete(s.Values, keyUsername)
	delete(s.Values, keyToken)
	return s.Save(r, w)
}

// Current возвращает claims, если в сессии есть флаг входа и валидный токен
// для того же username.
func (m *Manager) Current(r *http.Request) (*Claims, bool) {
	s, err := m.get(r)
	if err != nil {
		return nil, false
	}
	if loggedIn, _ := s.Values[keyLoggedIn].(bool); !loggedIn {
		return nil, false
	}
	username, _ := s.Values[keyUsername].(string)
	token, _ := s.Values[keyToken].(string)
	if username == "" || token == "" {
		return nil, false
	}
	claims, err := m.Verify(token)
	if err != nil || claims.Subject != username {
		return nil, false
	}
	return claims, true
}

// Issue подписывает токен администратора (HS256).
func (m *Manager) Issue(username string) (string, error) {
	now := m.now()
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", fmt.Errorf("sign admin token: %w", err)
	}
	return signed, nil
}

// Verify проверяет подпись, издателя, срок и роль.
func (m *Manager) Verify(token string) (*Claims, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return m.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Role != RoleAdmin || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &claims, nil
}

package handlers

import (
	"Academy/internal/db"
	"Academy/internal/models"
	"Academy/internal/sessions"
	"Academy/web"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

type testSite struct {
	store  *db.Store
	srv    *httptest.Server
	client *http.Client
	clock  *testClock
}

// testClock — часы сессий; сервер читает их из своей горутины.
type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *testClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupSite — сайт на in-memory sqlite с засеянным каталогом и admin/admin123.
func setupSite(t *testing.T) *testSite {
	t.Helper()
	ctx := context.Background()

	conn, dialect, err := db.Open(ctx, "sqlite://:memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(ctx, conn, dialect))

	site := &testSite{clock: &testClock{t: fixedNow}}
	site.store = db.NewStore(conn, dialect).WithClock(func() time.Time { return fixedNow })

	catalog, err := db.LoadCatalog("")
	require.NoError(t, err)
	_, err = site.store.SeedPrograms(ctx, catalog)
	require.NoError(t, err)
	_, err = site.store.EnsureAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)

	sess := sessions.New("test-secret", time.Hour, false).WithClock(site.clock.now)
	h, err := New(site.store, sess, web.FS, quietLogger())
	require.NoError(t, err)
	router, err := h.Router()
	require.NoError(t, err)

	site.srv = httptest.NewServer(router)
	t.Cleanup(site.srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	site.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return site
}

func (s *testSite) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := s.client.Get(s.srv.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (s *testSite) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := s.client.PostForm(s.srv.URL+path, form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func (s *testSite) firstProgramID(t *testing.T) int64 {
	t.Helper()
	programs, err := s.store.ListPrograms(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, programs)
	return programs[0].ID
}

func enquiryForm(programID string) url.Values {
	return url.Values{
		"name":       {"Asha Rao"},
		"email":      {"asha@example.com"},
		"address":    {"12 Park Road, Pune"},
		"contact_no": {"9876543210"},
		"program_id": {programID},
	}
}

func (s *testSite) login(t *testing.T, username, password string) (*http.Response, string) {
	t.Helper()
	return s.post(t, "/admin/login", url.Values{"username": {username}, "password": {password}})
}

// ---------- public pages ----------

func TestPublicPages(t *testing.T) {
	site := setupSite(t)

	for _, path := range []string{"/", "/about", "/success", "/admin/login"} {
		resp, _ := site.get(t, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}

	resp, body := site.get(t, "/programs")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "American Accent")
	assert.Contains(t, body, "Learn to speak with an authentic American accent.")

	resp, body = site.get(t, "/contact")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `name="program_id"`)
	assert.Contains(t, body, "Interview Softskills")

	resp, body = site.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	resp, body = site.get(t, "/static/site.css")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, ".flash")
}

// ---------- contact form ----------

func TestContactCreatesOneEnquiry(t *testing.T) {
	site := setupSite(t)
	pid := site.firstProgramID(t)

	resp, _ := site.post(t, "/contact", enquiryForm(strconv.FormatInt(pid, 10)))
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/success", resp.Header.Get("Location"))

	list, err := site.store.ListEnquiries(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Asha Rao", list[0].Name)
	assert.Equal(t, pid, list[0].ProgramID)
	assert.True(t, fixedNow.Equal(list[0].EnquiryDate))

	_, body := site.get(t, "/success")
	assert.Contains(t, body, enquirySubmitted)

	// flash показывается один раз
	_, body = site.get(t, "/success")
	assert.NotContains(t, body, enquirySubmitted)
}

func TestContactAcceptsUnknownProgram(t *testing.T) {
	site := setupSite(t)

	resp, _ := site.post(t, "/contact", enquiryForm("9999"))
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	list, err := site.store.ListEnquiries(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(9999), list[0].ProgramID)
	assert.Empty(t, list[0].ProgramName)
}

func TestContactMissingField(t *testing.T) {
	site := setupSite(t)

	for _, field := range enquiryFields {
		form := enquiryForm("1")
		form.Del(field)
		resp, body := site.post(t, "/contact", form)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, field)
		assert.Contains(t, body, field)
	}

	resp, _ := site.post(t, "/contact", enquiryForm("first"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	list, err := site.store.ListEnquiries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestContactAllowsEmptyValues(t *testing.T) {
	site := setupSite(t)

	form := enquiryForm("1")
	form.Set("address", "")
	resp, _ := site.post(t, "/contact", form)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

// ---------- admin session ----------

func TestLoginUnlocksDashboard(t *testing.T) {
	site := setupSite(t)
	site.post(t, "/contact", enquiryForm(strconv.FormatInt(site.firstProgramID(t), 10)))

	resp, _ := site.get(t, "/admin/dashboard")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))

	resp, _ = site.login(t, "admin", "admin123")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/dashboard", resp.Header.Get("Location"))

	resp, body := site.get(t, "/admin/dashboard")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, loginOK)
	assert.Contains(t, body, "Signed in as admin")
	assert.Contains(t, body, "asha@example.com")
	assert.Contains(t, body, "College/University Spoken English")
}

func TestWrongPasswordKeepsLoggedOut(t *testing.T) {
	site := setupSite(t)

	for _, creds := range [][2]string{{"admin", "wrong"}, {"nobody", "admin123"}} {
		resp, body := site.login(t, creds[0], creds[1])
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, loginFailed)
		assert.Contains(t, body, `action="/admin/login"`)

		resp, _ = site.get(t, "/admin/dashboard")
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
	}
}

func TestLoginMissingField(t *testing.T) {
	site := setupSite(t)
	resp, _ := site.post(t, "/admin/login", url.Values{"username": {"admin"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogoutClearsSession(t *testing.T) {
	site := setupSite(t)
	site.login(t, "admin", "admin123")

	resp, _ := site.get(t, "/admin/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = site.get(t, "/admin/logout")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))

	_, body := site.get(t, "/admin/login")
	assert.Contains(t, body, logoutMessage)

	resp, _ = site.get(t, "/admin/dashboard")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
}

func TestSessionExpires(t *testing.T) {
	site := setupSite(t)
	site.login(t, "admin", "admin123")

	resp, _ := site.get(t, "/admin/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	site.clock.advance(2 * time.Hour)
	resp, _ = site.get(t, "/admin/dashboard")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
}

// ---------- JSON API ----------

func TestAPI(t *testing.T) {
	site := setupSite(t)
	site.post(t, "/contact", enquiryForm("9999"))

	resp, body := site.get(t, "/api/programs")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json"))
	var programs []models.Program
	require.NoError(t, json.Unmarshal([]byte(body), &programs))
	assert.Len(t, programs, 6)

	resp, _ = site.get(t, "/api/enquiries")
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	site.login(t, "admin", "admin123")
	resp, body = site.get(t, "/api/enquiries")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var enquiries []models.EnquiryRow
	require.NoError(t, json.Unmarshal([]byte(body), &enquiries))
	require.Len(t, enquiries, 1)
	assert.Equal(t, int64(9999), enquiries[0].ProgramID)
}

// ---------- store failures ----------

type brokenStore struct{}

var errBroken = errors.New("connection refused")

func (brokenStore) Ping(context.Context) error { return errBroken }
func (brokenStore) ListPrograms(context.Context) ([]models.Program, error) {
	return nil, errBroken
}
func (brokenStore) CreateEnquiry(context.Context, models.Enquiry) (int64, error) {
	return 0, errBroken
}
func (brokenStore) ListEnquiries(context.Context) ([]models.EnquiryRow, error) {
	return nil, errBroken
}
func (brokenStore) AdminByUsername(context.Context, string) (models.Admin, error) {
	return models.Admin{}, errBroken
}

func TestStoreFailures(t *testing.T) {
	h, err := New(brokenStore{}, sessions.New("test-secret", time.Hour, false), web.FS, quietLogger())
	require.NoError(t, err)
	router, err := h.Router()
	require.NoError(t, err)

	cases := []struct {
		method, path string
		form         url.Values
		want         int
	}{
		{http.MethodGet, "/programs", nil, http.StatusInternalServerError},
		{http.MethodGet, "/contact", nil, http.StatusInternalServerError},
		{http.MethodPost, "/contact", enquiryForm("1"), http.StatusInternalServerError},
		{http.MethodPost, "/admin/login", url.Values{"username": {"admin"}, "password": {"x"}}, http.StatusInternalServerError},
		{http.MethodGet, "/api/programs", nil, http.StatusInternalServerError},
		{http.MethodGet, "/healthz", nil, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		var body io.Reader
		if tc.form != nil {
			body = strings.NewReader(tc.form.Encode())
		}
		req := httptest.NewRequest(tc.method, tc.path, body)
		if tc.form != nil {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, tc.want, rec.Code, "%s %s", tc.method, tc.path)
	}
}

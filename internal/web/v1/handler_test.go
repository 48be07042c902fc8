package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/streamnest/auth-service/internal/core/domain"
	logicv1 "github.com/streamnest/auth-service/internal/logic/v1"
	"github.com/streamnest/auth-service/internal/token"
	"github.com/streamnest/auth-service/middleware"
)

const testSecret = "test-secret"

type fakeUserRepo struct {
	byEmail map[string]*domain.UserRow
	byID    map[string]*domain.UserRow
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.UserRow),
		byID:    make(map[string]*domain.UserRow),
	}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.UserRow, error) {
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.UserRow, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) Create(_ context.Context, name, email, passwordHash string) (string, error) {
	if _, ok := f.byEmail[email]; ok {
		return "", domain.ErrDuplicateEmail
	}
	row := &domain.UserRow{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	f.byEmail[email] = row
	f.byID[row.ID] = row
	return row.ID, nil
}

func newTestRouter(repo domain.UserRepository, tokens *token.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	gin.EnableJsonDecoderDisallowUnknownFields()

	auth := logicv1.NewAuthService(repo, tokens, bcrypt.MinCost)
	handler := NewHandler(auth)

	r := gin.New()
	handler.RegisterRoutes(r.Group("/api/auth"), middleware.SessionAuth(tokens))
	return r
}

func doJSON(r *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func envelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestRegisterThenLogin(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Ankit","email":"ankit@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	body := envelope(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "user")

	w = doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"ankit@example.com","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	body = envelope(t, w)
	assert.Equal(t, true, body["success"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ankit", user["name"])
	assert.Equal(t, "ankit@example.com", user["email"])
	assert.NotContains(t, user, "password")

	// The cookie token must verify to the returned user id.
	cookie := sessionCookie(t, w)
	assert.True(t, cookie.HttpOnly)
	subject, err := tokens.Verify(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, user["id"], subject)
}

func TestRegister_MissingFields(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	for _, body := range []string{
		`{}`,
		`{"name":"A","email":"a@example.com"}`,
		`{"name":"A","password":"pw"}`,
		`{"email":"a@example.com","password":"pw"}`,
		`{"name":"","email":"a@example.com","password":"pw"}`,
		`{"name":"A","email":"not-an-email","password":"pw"}`,
	} {
		w := doJSON(r, http.MethodPost, "/api/auth/register", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.Equal(t, false, envelope(t, w)["success"])
	}
}

func TestRegister_OverlongPasswordRejected(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	repo := newFakeUserRepo()
	r := newTestRouter(repo, tokens)

	// Longer than bcrypt's 72-byte input limit: must be a validation error,
	// never a hashing failure surfacing as 500.
	long := strings.Repeat("a", 100)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"A","email":"a@example.com","password":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, envelope(t, w)["success"])
	assert.Empty(t, repo.byEmail)

	w = doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"a@example.com","password":"`+long+`"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_UnknownFieldRejected(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	w := doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"A","email":"a@example.com","password":"pw","admin":true}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	repo := newFakeUserRepo()
	r := newTestRouter(repo, tokens)

	body := `{"name":"A","email":"dup@example.com","password":"pw"}`
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/auth/register", body).Code)

	w := doJSON(r, http.MethodPost, "/api/auth/register", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, envelope(t, w)["success"])
	assert.Len(t, repo.byEmail, 1)
}

func TestLogin_UnknownEmail(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	w := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"ghost@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"A","email":"a@example.com","password":"right"}`).Code)

	w := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"a@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	w := doJSON(r, http.MethodPost, "/api/auth/login", `{"email":"a@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout_AlwaysSucceedsAndClearsCookie(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	// No prior session, no cookie: still 200.
	w := doJSON(r, http.MethodGet, "/api/auth/logout", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, envelope(t, w)["success"])

	cookie := sessionCookie(t, w)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestCurrentUser_WithValidCookie(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/api/auth/register",
		`{"name":"Ankit","email":"ankit@example.com","password":"pw"}`).Code)

	login := doJSON(r, http.MethodPost, "/api/auth/login",
		`{"email":"ankit@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, login.Code)
	loginUser := envelope(t, login)["user"].(map[string]any)

	w := doJSON(r, http.MethodGet, "/api/auth/user", "", sessionCookie(t, login))
	require.Equal(t, http.StatusOK, w.Code)

	body := envelope(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, loginUser, body["user"])
}

func TestCurrentUser_NoCookie(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	w := doJSON(r, http.MethodGet, "/api/auth/user", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, envelope(t, w)["success"])
}

func TestCurrentUser_TamperedToken(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	forged, err := token.NewService([]byte("other-secret"), time.Hour).Issue(uuid.NewString())
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/api/auth/user", "",
		&http.Cookie{Name: middleware.SessionCookie, Value: forged})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUser_ExpiredToken(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	expired, err := token.NewService([]byte(testSecret), -time.Minute).Issue(uuid.NewString())
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/api/auth/user", "",
		&http.Cookie{Name: middleware.SessionCookie, Value: expired})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCurrentUser_DeletedUser(t *testing.T) {
	tokens := token.NewService([]byte(testSecret), time.Hour)
	r := newTestRouter(newFakeUserRepo(), tokens)

	// Valid token for a subject that no longer exists in the directory.
	tok, err := tokens.Issue(uuid.NewString())
	require.NoError(t, err)

	w := doJSON(r, http.MethodGet, "/api/auth/user", "",
		&http.Cookie{Name: middleware.SessionCookie, Value: tok})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

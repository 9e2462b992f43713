package config_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"dijital-backend/internal/api/admin"
	"dijital-backend/internal/api/blog"
	blogRepository "dijital-backend/internal/api/blog/repository"
	"dijital-backend/internal/config"
	"dijital-backend/internal/entity"
	"dijital-backend/internal/middleware"
	"dijital-backend/pkg/credential"
	jwtPkg "dijital-backend/pkg/jwt"
	"dijital-backend/pkg/smtp"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg smtp.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockMailer) Verify(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
}

type testServer struct {
	app      *fiber.App
	server   *config.Server
	mailer   *mockMailer
	dataFile string
}

func testEnv(t *testing.T) config.Env {
	t.Helper()

	return config.Env{
		AppPort:           "0",
		AppEnv:            "test",
		SiteName:          "242 Dijital",
		Timezone:          time.UTC,
		CORSOrigins:       []string{"https://242dijital.com"},
		RecipientEmail:    "owner@example.com",
		SMTPMail:          "site@example.com",
		ContactRateLimit:  5,
		ContactRateWindow: 15 * time.Minute,
		LoginRateLimit:    10,
		LoginRateWindow:   15 * time.Minute,
		BlogStore:         "file",
		BlogDataFile:      filepath.Join(t.TempDir(), "data", "blogs.json"),
		AdminUsername:     "admin",
		AdminPassword:     "admin123",
		JWTSecret:         "test-secret",
		JWTTTL:            time.Hour,
	}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	return newTestServerWithEnv(t, testEnv(t))
}

func newTestServerWithEnv(t *testing.T, env config.Env) *testServer {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cred, err := credential.NewWithCost(env.AdminUsername, env.AdminPassword, credential.MinCost)
	require.NoError(t, err)

	mailer := new(mockMailer)

	server, err := config.NewServer(
		config.WithEnv(env),
		config.WithFiber(config.NewFiber(logger, env)),
		config.WithLogger(logger),
		config.WithValidator(config.NewValidator()),
		config.WithRedisServer(),
		config.WithBlogStore(),
		config.WithSMTPMailer(mailer),
		config.WithCredential(cred),
		config.WithJWT(),
		config.WithUtils(),
	)
	require.NoError(t, err)

	server.RegisterHandler()

	return &testServer{
		app:      server.Mount(),
		server:   server,
		mailer:   mailer,
		dataFile: env.BlogDataFile,
	}
}

func (s *testServer) do(t *testing.T, method, path, body, authorization string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}

	return resp, env
}

func basicAuth() string {
	return "Basic " + credential.EncodeBasic("admin", "admin123")
}

func decodePost(t *testing.T, raw json.RawMessage) entity.BlogPost {
	t.Helper()
	var post entity.BlogPost
	require.NoError(t, json.Unmarshal(raw, &post))
	return post
}

func decodePosts(t *testing.T, raw json.RawMessage) []entity.BlogPost {
	t.Helper()
	var posts []entity.BlogPost
	require.NoError(t, json.Unmarshal(raw, &posts))
	return posts
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "242 Dijital Backend çalışıyor!", body["message"])

	_, err = time.Parse(entity.TimestampLayout, body["timestamp"])
	assert.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDKey))
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/nope", "/elsewhere"} {
		resp, env := s.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.False(t, env.Success)
		assert.Equal(t, "Endpoint bulunamadı", env.Message)
	}
}

func TestCreateWithDefaultsThenGet(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodPost, "/api/blogs", `{"title":"A","content":"B"}`, basicAuth())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)

	created := decodePost(t, env.Data)
	assert.Equal(t, "A", created.Title)
	assert.Equal(t, blogs.DefaultCategory, created.Category)
	assert.Equal(t, blogs.DefaultAuthor, created.Author)
	assert.NotZero(t, created.ID)

	resp, env = s.do(t, http.MethodGet, "/api/blogs/"+strconv.FormatInt(created.ID, 10), "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, created, decodePost(t, env.Data))
}

func TestCreateRequiresTitleAndContent(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`{"title":"A"}`, `{"title":"  ","content":"B"}`, ""} {
		resp, env := s.do(t, http.MethodPost, "/api/blogs", body, basicAuth())
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, body)
		assert.Equal(t, blogs.MessageTitleContentRequired, env.Message)
	}
}

func TestMutationsRequireCredential(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPost, "/api/blogs", `{"title":"A","content":"B"}`, basicAuth())
	created := decodePost(t, env.Data)
	id := strconv.FormatInt(created.ID, 10)

	badAuth := []string{"", "Basic " + credential.EncodeBasic("admin", "wrong"), "Bearer not-a-token"}
	for _, auth := range badAuth {
		resp, _ := s.do(t, http.MethodPost, "/api/blogs", `{"title":"X","content":"Y"}`, auth)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		resp, _ = s.do(t, http.MethodPut, "/api/blogs/"+id, `{"title":"X"}`, auth)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		resp, _ = s.do(t, http.MethodDelete, "/api/blogs/"+id, "", auth)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}

	_, env = s.do(t, http.MethodGet, "/api/blogs", "", "")
	posts := decodePosts(t, env.Data)
	require.Len(t, posts, 1)
	assert.Equal(t, created, posts[0])
}

func TestListIsNewestFirst(t *testing.T) {
	s := newTestServer(t)

	resp, env := s.do(t, http.MethodGet, "/api/blogs", "", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, env.Count)
	assert.Equal(t, 0, *env.Count)

	var ids []int64
	for i := 0; i < 3; i++ {
		_, env := s.do(t, http.MethodPost, "/api/blogs", `{"title":"T`+strconv.Itoa(i)+`","content":"C"}`, basicAuth())
		ids = append(ids, decodePost(t, env.Data).ID)
	}

	_, env = s.do(t, http.MethodGet, "/api/blogs", "", "")
	posts := decodePosts(t, env.Data)
	require.Len(t, posts, 3)
	require.NotNil(t, env.Count)
	assert.Equal(t, 3, *env.Count)

	for i, post := range posts {
		assert.Equal(t, ids[len(ids)-1-i], post.ID)
	}
}

func TestUpdateKeepsUnspecifiedFields(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPost, "/api/blogs", `{"title":"A","content":"B","author":"Ayşe"}`, basicAuth())
	created := decodePost(t, env.Data)
	id := strconv.FormatInt(created.ID, 10)

	resp, env := s.do(t, http.MethodPut, "/api/blogs/"+id, `{"content":"B2"}`, basicAuth())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	updated := decodePost(t, env.Data)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "A", updated.Title)
	assert.Equal(t, "B2", updated.Content)
	assert.Equal(t, "Ayşe", updated.Author)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.GreaterOrEqual(t, updated.UpdatedAt, updated.CreatedAt)

	resp, _ = s.do(t, http.MethodPut, "/api/blogs/42", `{"title":"x"}`, basicAuth())
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteReturnsRemovedPost(t *testing.T) {
	s := newTestServer(t)

	_, env := s.do(t, http.MethodPost, "/api/blogs", `{"title":"A","content":"B"}`, basicAuth())
	id := strconv.FormatInt(decodePost(t, env.Data).ID, 10)

	_, env = s.do(t, http.MethodGet, "/api/blogs/"+id, "", "")
	before := decodePost(t, env.Data)

	resp, env := s.do(t, http.MethodDelete, "/api/blogs/"+id, "", basicAuth())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, before, decodePost(t, env.Data))

	resp, env = s.do(t, http.MethodGet, "/api/blogs/"+id, "", "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, blogs.ErrBlogNotFound.Error(), env.Message)

	resp, _ = s.do(t, http.MethodDelete, "/api/blogs/"+id, "", basicAuth())
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLoginTokenUnlocksMutations(t *testing.T) {
	s := newTestServer(t)

	resp, _ := s.do(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"nope"}`, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, env := s.do(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"admin123"}`, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var login struct {
		Token     string `json:"token"`
		TokenType string `json:"tokenType"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	resp, env = s.do(t, http.MethodPost, "/api/blogs", `{"title":"A","content":"B"}`, login.TokenType+" "+login.Token)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "A", decodePost(t, env.Data).Title)
}

func TestLoginBlankFieldsAreInvalidCredentials(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`{"username":"admin"}`, `{"username":"","password":""}`, "", `{"username":`} {
		resp, env := s.do(t, http.MethodPost, "/api/admin/login", body, "")
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, body)
		assert.Equal(t, admin.ErrInvalidCredentials.Error(), env.Message, body)
	}
}

func TestUnsetJWTSecretRejectsWellKnownSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	env := testEnv(t)
	env.JWTSecret = config.LoadEnv().JWTSecret
	s := newTestServerWithEnv(t, env)

	forged, _, err := jwtPkg.New("change-me-in-production", time.Hour).Sign("admin", map[string]interface{}{"role": middleware.RoleAdmin})
	require.NoError(t, err)

	resp, _ := s.do(t, http.MethodPost, "/api/blogs", `{"title":"A","content":"B"}`, "Bearer "+forged)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCreateAcceptsLongFields(t *testing.T) {
	s := newTestServer(t)

	title := strings.Repeat("t", 300)
	excerpt := strings.Repeat("e", 1500)
	body, err := json.Marshal(map[string]string{"title": title, "content": "B", "excerpt": excerpt})
	require.NoError(t, err)

	resp, env := s.do(t, http.MethodPost, "/api/blogs", string(body), basicAuth())
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decodePost(t, env.Data)
	assert.Equal(t, title, created.Title)
	assert.Equal(t, excerpt, created.Excerpt)

	longCategory := strings.Repeat("c", 200)
	resp, env = s.do(t, http.MethodPut, "/api/blogs/"+strconv.FormatInt(created.ID, 10), `{"category":"`+longCategory+`"}`, basicAuth())
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, longCategory, decodePost(t, env.Data).Category)
}

func TestContactThroughServer(t *testing.T) {
	s := newTestServer(t)
	s.mailer.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	body := `{"name":"Ayşe","email":"ayse@example.com","phone":"0555","subject":"Teklif","message":"Merhaba"}`
	resp, env := s.do(t, http.MethodPost, "/api/contact", body, "")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	s.mailer.AssertExpectations(t)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/blogs", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://242dijital.com")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPost)

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "https://242dijital.com", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestNewServer_RequiresCollaborators(t *testing.T) {
	_, err := config.NewServer(config.WithEnv(testEnv(t)))
	assert.Error(t, err)
}

func TestWithBlogStore_Unknown(t *testing.T) {
	env := testEnv(t)
	env.BlogStore = "mongo"

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := config.NewServer(config.WithEnv(env), config.WithLogger(logger), config.WithBlogStore())
	assert.Error(t, err)
}

func TestCorruptDataFileIsServerError(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	env := testEnv(t)
	repo, err := blogRepository.NewFile(env.BlogDataFile, logger)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(env.BlogDataFile, []byte("{broken"), 0o644))

	cred, err := credential.NewWithCost(env.AdminUsername, env.AdminPassword, credential.MinCost)
	require.NoError(t, err)

	server, err := config.NewServer(
		config.WithEnv(env),
		config.WithFiber(config.NewFiber(logger, env)),
		config.WithLogger(logger),
		config.WithBlogRepository(repo),
		config.WithSMTPMailer(new(mockMailer)),
		config.WithCredential(cred),
		config.WithMiddleware(middleware.New(logger, middleware.Options{Credential: cred})),
	)
	require.NoError(t, err)
	server.RegisterHandler()

	s := &testServer{app: server.Mount(), server: server, dataFile: env.BlogDataFile}

	resp, body := s.do(t, http.MethodGet, "/api/blogs", "", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, blogs.ErrReadBlogs.Error(), body.Message)

	resp, _ = s.do(t, http.MethodPost, "/api/blogs", `{"title":"A","content":"B"}`, basicAuth())
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	data, err := os.ReadFile(env.BlogDataFile)
	require.NoError(t, err)
	assert.Equal(t, "{broken", string(data))
}

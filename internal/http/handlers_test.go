package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"interview-stories/internal/domain"
	"interview-stories/internal/llm"
	"interview-stories/internal/repository"
	"interview-stories/internal/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockAccountRepo struct {
	mu      sync.Mutex
	byEmail map[string]domain.Account
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{byEmail: make(map[string]domain.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, account domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[account.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	m.byEmail[account.Email] = account
	return nil
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.byEmail[email]
	if !ok {
		return domain.Account{}, pgx.ErrNoRows
	}
	return account, nil
}

type mockStoryRepo struct {
	mu      sync.Mutex
	stories map[string]domain.Story
}

func newMockStoryRepo() *mockStoryRepo {
	return &mockStoryRepo{stories: make(map[string]domain.Story)}
}

func (m *mockStoryRepo) Create(_ context.Context, story domain.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stories[story.ID] = story
	return nil
}

func (m *mockStoryRepo) GetByID(_ context.Context, id string) (domain.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	story, ok := m.stories[id]
	if !ok {
		return domain.Story{}, pgx.ErrNoRows
	}
	return story, nil
}

func (m *mockStoryRepo) ListByAuthor(_ context.Context, authorID string) ([]domain.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []domain.Story{}
	for _, s := range m.stories {
		if s.AuthorID == authorID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockStoryRepo) Update(_ context.Context, story domain.Story) (domain.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stories[story.ID]; !ok {
		return domain.Story{}, pgx.ErrNoRows
	}
	m.stories[story.ID] = story
	return story, nil
}

func (m *mockStoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stories[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(m.stories, id)
	return nil
}

type testServer struct {
	router  *gin.Engine
	stories *mockStoryRepo
	llm     *llm.MockClient
}

func newTestServer(t *testing.T, client llm.Client) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	accounts := newMockAccountRepo()
	stories := newMockStoryRepo()

	accountSvc := service.NewAccountService(logger, accounts, nil, bcrypt.MinCost)
	sessionSvc := service.NewSessionService(testSecret, time.Hour, service.NewMemoryRevocationStore())
	storySvc := service.NewStoryService(stories)
	rewriteSvc := service.NewRewriteService(logger, client, storySvc)

	cookie := CookieConfig{Name: "session_token"}
	router := NewRouter(
		logger,
		sessionSvc,
		cookie,
		NewAccountHandler(logger, accountSvc, sessionSvc, cookie),
		NewStoryHandler(logger, storySvc),
		NewRewriteHandler(logger, rewriteSvc),
		nil,
	)

	srv := &testServer{router: router, stories: stories}
	if mock, ok := client.(*llm.MockClient); ok {
		srv.llm = mock
	}
	return srv
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

// signup registra una cuenta y devuelve un token de sesion valido.
func (s *testServer) signup(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, rec.Code, rec.Body.String())
	}
	rec = s.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	decode(t, rec, &resp)
	if resp.Token == "" {
		t.Fatalf("login %s: missing token", email)
	}
	return resp.Token
}

func (s *testServer) createStory(t *testing.T, token string) domain.Story {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/stories", token, map[string]any{
		"title":            "Outage",
		"shortDescription": "Led incident",
		"content":          "I fixed **prod**.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create story: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Story domain.Story `json:"story"`
	}
	decode(t, rec, &resp)
	return resp.Story
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

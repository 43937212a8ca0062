package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"

	"interview-stories/internal/domain"
	"interview-stories/internal/repository"
)

type mockAccountRepo struct {
	mu      sync.Mutex
	byEmail map[string]domain.Account

	// skipLookup simula una carrera: GetByEmail no ve la cuenta pero Create choca.
	skipLookup bool
	lookupErr  error
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
	if m.lookupErr != nil {
		return domain.Account{}, m.lookupErr
	}
	account, ok := m.byEmail[email]
	if !ok || m.skipLookup {
		return domain.Account{}, pgx.ErrNoRows
	}
	return account, nil
}

type mockStoryRepo struct {
	mu      sync.Mutex
	stories map[string]domain.Story
	getErr  error
	writes  int
}

func newMockStoryRepo() *mockStoryRepo {
	return &mockStoryRepo{stories: make(map[string]domain.Story)}
}

func (m *mockStoryRepo) Create(_ context.Context, story domain.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	m.stories[story.ID] = story
	return nil
}

func (m *mockStoryRepo) GetByID(_ context.Context, id string) (domain.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return domain.Story{}, m.getErr
	}
	story, ok := m.stories[id]
	if !ok {
		return domain.Story{}, pgx.ErrNoRows
	}
	return story, nil
}

func (m *mockStoryRepo) ListByAuthor(_ context.Context, authorID string) ([]domain.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Story
	for _, s := range m.stories {
		if s.AuthorID == authorID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *mockStoryRepo) Update(_ context.Context, story domain.Story) (domain.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stories[story.ID]; !ok {
		return domain.Story{}, pgx.ErrNoRows
	}
	m.writes++
	m.stories[story.ID] = story
	return story, nil
}

func (m *mockStoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.stories[id]; !ok {
		return pgx.ErrNoRows
	}
	m.writes++
	delete(m.stories, id)
	return nil
}

type mockRedisKVClient struct {
	lastSetKey string
	lastSetVal interface{}
	lastSetTTL time.Duration
	lastExists []string

	setErr    error
	existsErr error
	existsN   int64
}

func (m *mockRedisKVClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.lastSetKey = key
	m.lastSetVal = value
	m.lastSetTTL = expiration
	cmd := redis.NewStatusCmd(ctx)
	if m.setErr != nil {
		cmd.SetErr(m.setErr)
		return cmd
	}
	cmd.SetVal("OK")
	return cmd
}

func (m *mockRedisKVClient) Exists(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastExists = keys
	cmd := redis.NewIntCmd(ctx)
	if m.existsErr != nil {
		cmd.SetErr(m.existsErr)
		return cmd
	}
	cmd.SetVal(m.existsN)
	return cmd
}

type mockRedisThrottleClient struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	lastGet    string
	lastDel    []string

	getVal string
	getErr error
}

func (m *mockRedisThrottleClient) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	cmd.SetVal(int64(1))
	return cmd
}

func (m *mockRedisThrottleClient) Get(ctx context.Context, key string) *redis.StringCmd {
	m.lastGet = key
	cmd := redis.NewStringCmd(ctx)
	if m.getErr != nil {
		cmd.SetErr(m.getErr)
		return cmd
	}
	cmd.SetVal(m.getVal)
	return cmd
}

func (m *mockRedisThrottleClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.lastDel = keys
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(1)
	return cmd
}

var errStoreDown = errors.New("store down")

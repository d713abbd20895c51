package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"kanban-board.com/kanban-board/internal/cache"
	config "kanban-board.com/kanban-board/internal/configs"
	model "kanban-board.com/kanban-board/internal/models"
	repository "kanban-board.com/kanban-board/internal/repositories"
)

const testPassword = "SecurePassword123!"

// memoryTokenCache is a simple in-memory token cache for testing
type memoryTokenCache struct {
	mu      sync.Mutex
	entries map[string]uint
}

func newMemoryTokenCache() *memoryTokenCache {
	return &memoryTokenCache{entries: make(map[string]uint)}
}

func (m *memoryTokenCache) Get(_ context.Context, token string) (uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.entries[token]
	if !ok {
		return 0, cache.ErrCacheMiss
	}
	return id, nil
}

func (m *memoryTokenCache) Set(_ context.Context, token string, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[token] = userID
	return nil
}

func (m *memoryTokenCache) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, token)
	return nil
}

func (m *memoryTokenCache) has(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.entries[token]
	return ok
}

type testEnv struct {
	db       *gorm.DB
	repos    *repository.Manager
	cache    *memoryTokenCache
	auth     *AuthService
	boards   *BoardService
	tasks    *TaskService
	comments *CommentService
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := config.Open(dsn)
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := setupTestDB(t)
	repos := repository.NewManager(db)
	tokens := newMemoryTokenCache()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &testEnv{
		db:       db,
		repos:    repos,
		cache:    tokens,
		auth:     NewAuthService(repos, tokens, bcrypt.MinCost, logger),
		boards:   NewBoardService(repos, logger),
		tasks:    NewTaskService(repos, logger),
		comments: NewCommentService(repos, logger),
	}
}

func (e *testEnv) register(t *testing.T, email string) *AuthResult {
	t.Helper()

	res, err := e.auth.Register(context.Background(), email, "User "+email, testPassword, testPassword)
	require.NoError(t, err)
	return res
}

func (e *testEnv) user(t *testing.T, email string) model.User {
	t.Helper()
	return e.register(t, email).User
}

// boardWith creates a board owned by owner with the given members.
func (e *testEnv) boardWith(t *testing.T, owner model.User, members ...model.User) *BoardSummary {
	t.Helper()

	ids := make([]uint, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	board, err := e.boards.Create(context.Background(), owner.ID, "Project X", ids)
	require.NoError(t, err)
	return board
}

func (e *testEnv) taskOn(t *testing.T, boardID uint, caller model.User, title string) *model.Task {
	t.Helper()

	task, err := e.tasks.Create(context.Background(), caller.ID, TaskInput{BoardID: boardID, Title: title})
	require.NoError(t, err)
	return task
}

func uintPtr(v uint) *uint {
	return &v
}

package services

import (
	"context"
	"io"
	"log/slog"

	"gymlog/live"
	"gymlog/models"

	"github.com/stretchr/testify/mock"
)

// ==================== MOCKS ====================

// MockUserRepository is a mock implementation of UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

// Ensure MockUserRepository implements UserRepository interface
var _ UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) GetUserByUsername(username string) *live.Value[*models.User] {
	args := m.Called(username)
	return args.Get(0).(*live.Value[*models.User])
}

func (m *MockUserRepository) GetUserByUserID(id int) *live.Value[*models.User] {
	args := m.Called(id)
	return args.Get(0).(*live.Value[*models.User])
}

func (m *MockUserRepository) GetAllUsersLive() *live.Value[[]models.User] {
	args := m.Called()
	return args.Get(0).(*live.Value[[]models.User])
}

func (m *MockUserRepository) GetAllUsersBlocking(ctx context.Context) []models.User {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.User)
}

func (m *MockUserRepository) InsertUsers(users ...models.User) {
	m.Called(users)
}

func (m *MockUserRepository) DeleteUser(user models.User) {
	m.Called(user)
}

func (m *MockUserRepository) DeleteAllUsers() {
	m.Called()
}

// MockLogRepository is a mock implementation of LogRepository interface
type MockLogRepository struct {
	mock.Mock
}

var _ LogRepository = (*MockLogRepository)(nil)

func (m *MockLogRepository) InsertLog(entry models.LogEntry) {
	m.Called(entry)
}

func (m *MockLogRepository) GetAllLogsByUserIDLive(userID int) *live.Value[[]models.LogEntry] {
	args := m.Called(userID)
	return args.Get(0).(*live.Value[[]models.LogEntry])
}

func (m *MockLogRepository) GetAllLogsByUserIDBlocking(ctx context.Context, userID int) []models.LogEntry {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.LogEntry)
}

// MockSessionStore is a mock implementation of SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

var _ SessionStore = (*MockSessionStore)(nil)

func (m *MockSessionStore) UserID() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockSessionStore) SetUserID(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSessionStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// ==================== HELPERS ====================

// posted returns a live value that already holds v.
func posted[T any](v T) *live.Value[T] {
	val := live.New[T](live.Immediate, live.Hooks{})
	val.Post(v)
	return val
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package services

import (
	"context"

	"gymlog/live"
	"gymlog/models"
)

// UserRepository defines the user side of the data layer
type UserRepository interface {
	GetUserByUsername(username string) *live.Value[*models.User]
	GetUserByUserID(id int) *live.Value[*models.User]
	GetAllUsersLive() *live.Value[[]models.User]
	GetAllUsersBlocking(ctx context.Context) []models.User
	InsertUsers(users ...models.User)
	DeleteUser(user models.User)
	DeleteAllUsers()
}

// LogRepository defines the gym log side of the data layer
type LogRepository interface {
	InsertLog(entry models.LogEntry)
	GetAllLogsByUserIDLive(userID int) *live.Value[[]models.LogEntry]
	GetAllLogsByUserIDBlocking(ctx context.Context, userID int) []models.LogEntry
}

// SessionStore holds the id of the logged-in user between runs
type SessionStore interface {
	UserID() int
	SetUserID(id int) error
	Clear() error
}

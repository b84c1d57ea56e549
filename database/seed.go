package database

import (
	"context"
	"time"

	"gymlog/models"
)

// Accounts written into every freshly created database.
const (
	DefaultAdminUsername = "admin1"
	DefaultAdminPassword = "admin1"
	DefaultUserUsername  = "testUser1"
	DefaultUserPassword  = "testUser1"
)

const seedTimeout = 30 * time.Second

func (s *Store) seed() {
	defer close(s.seedDone)

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	if err := s.users.DeleteAll(ctx); err != nil {
		s.log.Error("seeding failed", "step", "clear users", "error", err)
		return
	}

	admin := models.NewUser(DefaultAdminUsername, DefaultAdminPassword)
	admin.IsAdmin = true
	if _, err := s.users.Insert(ctx, admin); err != nil {
		s.log.Error("seeding failed", "step", "insert admin", "error", err)
		return
	}

	if _, err := s.users.Insert(ctx, models.NewUser(DefaultUserUsername, DefaultUserPassword)); err != nil {
		s.log.Error("seeding failed", "step", "insert user", "error", err)
		return
	}

	s.log.Info("default users seeded")
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Manager bundles the repositories over one database handle, which is either
// the root connection or an open transaction.
type Manager struct {
	db *gorm.DB

	Users    *UserRepository
	Tokens   *TokenRepository
	Boards   *BoardRepository
	Tasks    *TaskRepository
	Comments *CommentRepository
}

func NewManager(db *gorm.DB) *Manager {
	return &Manager{
		db:       db,
		Users:    NewUserRepository(db),
		Tokens:   NewTokenRepository(db),
		Boards:   NewBoardRepository(db),
		Tasks:    NewTaskRepository(db),
		Comments: NewCommentRepository(db),
	}
}

// Transaction runs fn with repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
func (m *Manager) Transaction(ctx context.Context, fn func(tx *Manager) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewManager(tx))
	})
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

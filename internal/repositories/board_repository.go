package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"kanban-board.com/kanban-board/internal/constants"
	apperrors "kanban-board.com/kanban-board/internal/errors"
	model "kanban-board.com/kanban-board/internal/models"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	if err := r.db.WithContext(ctx).Omit("Owner", "Members").Create(board).Error; err != nil {
		return fmt.Errorf("create board: %w", err)
	}
	return nil
}

func (r *BoardRepository) FindByID(ctx context.Context, id uint) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("users.id asc") }).
		First(&board, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrBoardNotFound
		}
		return nil, fmt.Errorf("find board %d: %w", id, err)
	}
	return &board, nil
}

// ListForUser returns the boards owned by userID or listing it as a member,
// newest first.
func (r *BoardRepository) ListForUser(ctx context.Context, userID uint) ([]model.Board, error) {
	memberOf := r.db.Model(&model.BoardMember{}).Select("board_id").Where("user_id = ?", userID)

	var boards []model.Board
	err := r.db.WithContext(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("users.id asc") }).
		Where("owner_id = ? OR id IN (?)", userID, memberOf).
		Order("created_at desc").Order("id desc").
		Find(&boards).Error
	if err != nil {
		return nil, fmt.Errorf("list boards for user %d: %w", userID, err)
	}
	return boards, nil
}

func (r *BoardRepository) UpdateTitle(ctx context.Context, id uint, title string) error {
	err := r.db.WithContext(ctx).Model(&model.Board{}).Where("id = ?", id).Update("title", title).Error
	if err != nil {
		return fmt.Errorf("update board %d: %w", id, err)
	}
	return nil
}

// SetMembers replaces the member set of a board.
func (r *BoardRepository) SetMembers(ctx context.Context, boardID uint, userIDs []uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("board_id = ?", boardID).Delete(&model.BoardMember{}).Error; err != nil {
		return fmt.Errorf("clear members of board %d: %w", boardID, err)
	}

	userIDs = uniqueIDs(userIDs)
	if len(userIDs) == 0 {
		return nil
	}

	rows := make([]model.BoardMember, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, model.BoardMember{BoardID: boardID, UserID: id})
	}
	if err := db.Create(&rows).Error; err != nil {
		return fmt.Errorf("add members to board %d: %w", boardID, err)
	}
	return nil
}

// Delete removes the board with its comments, tasks and memberships. Callers
// run it inside a transaction so the cascade is all-or-nothing.
func (r *BoardRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	boardTasks := r.db.Model(&model.Task{}).Select("id").Where("board_id = ?", id)

	if err := db.Where("task_id IN (?)", boardTasks).Delete(&model.Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments of board %d: %w", id, err)
	}
	if err := db.Where("board_id = ?", id).Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete tasks of board %d: %w", id, err)
	}
	if err := db.Where("board_id = ?", id).Delete(&model.BoardMember{}).Error; err != nil {
		return fmt.Errorf("delete members of board %d: %w", id, err)
	}

	res := db.Where("id = ?", id).Delete(&model.Board{})
	if res.Error != nil {
		return fmt.Errorf("delete board %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrBoardNotFound
	}
	return nil
}

type boardCount struct {
	BoardID uint
	N       int64
}

// Stats computes the summary counters of the given boards.
func (r *BoardRepository) Stats(ctx context.Context, boardIDs []uint) (map[uint]model.BoardStats, error) {
	stats := make(map[uint]model.BoardStats, len(boardIDs))
	if len(boardIDs) == 0 {
		return stats, nil
	}
	for _, id := range boardIDs {
		stats[id] = model.BoardStats{}
	}

	db := r.db.WithContext(ctx)
	count := func(query *gorm.DB, apply func(s *model.BoardStats, n int64)) error {
		var rows []boardCount
		if err := query.Select("board_id, count(*) as n").Group("board_id").Scan(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			s := stats[row.BoardID]
			apply(&s, row.N)
			stats[row.BoardID] = s
		}
		return nil
	}

	members := db.Model(&model.BoardMember{}).Where("board_id IN ?", boardIDs)
	if err := count(members, func(s *model.BoardStats, n int64) { s.MemberCount = n }); err != nil {
		return nil, fmt.Errorf("count board members: %w", err)
	}

	tasks := db.Model(&model.Task{}).Where("board_id IN ?", boardIDs)
	if err := count(tasks, func(s *model.BoardStats, n int64) { s.TicketCount = n }); err != nil {
		return nil, fmt.Errorf("count board tasks: %w", err)
	}

	todo := db.Model(&model.Task{}).Where("board_id IN ? AND status = ?", boardIDs, constants.StatusToDo)
	if err := count(todo, func(s *model.BoardStats, n int64) { s.ToDoCount = n }); err != nil {
		return nil, fmt.Errorf("count to-do tasks: %w", err)
	}

	high := db.Model(&model.Task{}).Where("board_id IN ? AND priority = ?", boardIDs, constants.PriorityHigh)
	if err := count(high, func(s *model.BoardStats, n int64) { s.HighPriorityCount = n }); err != nil {
		return nil, fmt.Errorf("count high priority tasks: %w", err)
	}

	return stats, nil
}

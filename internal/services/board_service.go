package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	apperrors "kanban-board.com/kanban-board/internal/errors"
	model "kanban-board.com/kanban-board/internal/models"
	"kanban-board.com/kanban-board/internal/permissions"
	repository "kanban-board.com/kanban-board/internal/repositories"
)

const maxTitleLength = 255

// BoardSummary is a board with its counters.
type BoardSummary struct {
	Board model.Board
	Stats model.BoardStats
}

// BoardDetail adds the board's tasks to its summary.
type BoardDetail struct {
	BoardSummary
	Tasks []model.Task
}

// BoardPatch holds the fields of a partial board update. Nil means unchanged.
type BoardPatch struct {
	Title   *string
	Members *[]uint
}

type BoardService struct {
	repos  *repository.Manager
	logger logrus.FieldLogger
}

func NewBoardService(repos *repository.Manager, logger logrus.FieldLogger) *BoardService {
	return &BoardService{
		repos:  repos,
		logger: logger,
	}
}

func boardSubject(board *model.Board) permissions.Subject {
	return permissions.Subject{
		OwnerID:   board.OwnerID,
		MemberIDs: board.MemberIDs(),
	}
}

func (s *BoardService) Create(ctx context.Context, callerID uint, title string, memberIDs []uint) (*BoardSummary, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}

	var summary *BoardSummary
	err = s.repos.Transaction(ctx, func(tx *repository.Manager) error {
		if err := requireUsers(ctx, tx, "members", memberIDs); err != nil {
			return err
		}

		board := &model.Board{Title: title, OwnerID: callerID}
		if err := tx.Boards.Create(ctx, board); err != nil {
			return err
		}
		if err := tx.Boards.SetMembers(ctx, board.ID, memberIDs); err != nil {
			return err
		}

		summary, err = loadSummary(ctx, tx, board.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"board_id": summary.Board.ID, "owner_id": callerID}).Info("board created")
	return summary, nil
}

// List returns every board the caller owns or is a member of.
func (s *BoardService) List(ctx context.Context, callerID uint) ([]BoardSummary, error) {
	boards, err := s.repos.Boards.ListForUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(boards))
	for _, b := range boards {
		ids = append(ids, b.ID)
	}
	stats, err := s.repos.Boards.Stats(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]BoardSummary, 0, len(boards))
	for _, b := range boards {
		out = append(out, BoardSummary{Board: b, Stats: stats[b.ID]})
	}
	return out, nil
}

func (s *BoardService) Get(ctx context.Context, id, callerID uint) (*BoardDetail, error) {
	board, err := s.repos.Boards.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := permissions.Authorize(callerID, permissions.ViewBoard, boardSubject(board)); err != nil {
		return nil, err
	}

	stats, err := s.repos.Boards.Stats(ctx, []uint{board.ID})
	if err != nil {
		return nil, err
	}
	tasks, err := s.repos.Tasks.ListByBoard(ctx, board.ID)
	if err != nil {
		return nil, err
	}

	return &BoardDetail{
		BoardSummary: BoardSummary{Board: *board, Stats: stats[board.ID]},
		Tasks:        tasks,
	}, nil
}

// Update applies a partial update. A replaced member set keeps the owner if
// the owner was a member before.
func (s *BoardService) Update(ctx context.Context, id, callerID uint, patch BoardPatch) (*BoardSummary, error) {
	var summary *BoardSummary
	err := s.repos.Transaction(ctx, func(tx *repository.Manager) error {
		board, err := tx.Boards.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := permissions.Authorize(callerID, permissions.UpdateBoard, boardSubject(board)); err != nil {
			return err
		}

		if patch.Title != nil {
			title, err := validateTitle(*patch.Title)
			if err != nil {
				return err
			}
			if err := tx.Boards.UpdateTitle(ctx, board.ID, title); err != nil {
				return err
			}
		}

		if patch.Members != nil {
			members := *patch.Members
			if err := requireUsers(ctx, tx, "members", members); err != nil {
				return err
			}
			if containsID(board.MemberIDs(), board.OwnerID) && !containsID(members, board.OwnerID) {
				members = append(members, board.OwnerID)
			}
			if err := tx.Boards.SetMembers(ctx, board.ID, members); err != nil {
				return err
			}
		}

		summary, err = loadSummary(ctx, tx, board.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Delete removes the board together with its tasks and their comments.
func (s *BoardService) Delete(ctx context.Context, id, callerID uint) error {
	err := s.repos.Transaction(ctx, func(tx *repository.Manager) error {
		board, err := tx.Boards.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := permissions.Authorize(callerID, permissions.DeleteBoard, boardSubject(board)); err != nil {
			return err
		}
		return tx.Boards.Delete(ctx, board.ID)
	})
	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{"board_id": id, "owner_id": callerID}).Info("board deleted")
	return nil
}

func loadSummary(ctx context.Context, repos *repository.Manager, boardID uint) (*BoardSummary, error) {
	board, err := repos.Boards.FindByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	stats, err := repos.Boards.Stats(ctx, []uint{boardID})
	if err != nil {
		return nil, err
	}
	return &BoardSummary{Board: *board, Stats: stats[boardID]}, nil
}

// requireUsers fails with a validation error naming field when any id has no user.
func requireUsers(ctx context.Context, repos *repository.Manager, field string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	_, missing, err := repos.Users.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		msg := fmt.Sprintf("invalid user ids: %v", missing)
		return apperrors.ValidationFields(msg, map[string]string{field: msg})
	}
	return nil
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperrors.ValidationFields("title is required", map[string]string{
			"title": "this field may not be blank",
		})
	}
	if len([]rune(title)) > maxTitleLength {
		return "", apperrors.ValidationFields("title is too long", map[string]string{
			"title": fmt.Sprintf("ensure this field has no more than %d characters", maxTitleLength),
		})
	}
	return title, nil
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	apperrors "kanban-board.com/kanban-board/internal/errors"
	model "kanban-board.com/kanban-board/internal/models"
	"kanban-board.com/kanban-board/internal/permissions"
	repository "kanban-board.com/kanban-board/internal/repositories"
)

type CommentService struct {
	repos  *repository.Manager
	logger logrus.FieldLogger
}

func NewCommentService(repos *repository.Manager, logger logrus.FieldLogger) *CommentService {
	return &CommentService{
		repos:  repos,
		logger: logger,
	}
}

// List returns the task's comments in creation order.
func (s *CommentService) List(ctx context.Context, taskID, callerID uint) ([]model.Comment, error) {
	if _, err := s.authorizeTask(ctx, s.repos, taskID, callerID, permissions.ListComments); err != nil {
		return nil, err
	}
	return s.repos.Comments.ListByTask(ctx, taskID)
}

func (s *CommentService) Create(ctx context.Context, taskID, callerID uint, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.ValidationFields("content is required", map[string]string{
			"content": "this field may not be blank",
		})
	}

	var created *model.Comment
	err := s.repos.Transaction(ctx, func(tx *repository.Manager) error {
		task, err := s.authorizeTask(ctx, tx, taskID, callerID, permissions.CreateComment)
		if err != nil {
			return err
		}

		comment := &model.Comment{
			TaskID:   task.ID,
			AuthorID: callerID,
			Content:  content,
		}
		if err := tx.Comments.Create(ctx, comment); err != nil {
			return err
		}

		created, err = tx.Comments.FindInTask(ctx, task.ID, comment.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Delete is reserved to the comment's author.
func (s *CommentService) Delete(ctx context.Context, taskID, commentID, callerID uint) error {
	return s.repos.Transaction(ctx, func(tx *repository.Manager) error {
		if _, err := tx.Tasks.FindByID(ctx, taskID); err != nil {
			return err
		}
		comment, err := tx.Comments.FindInTask(ctx, taskID, commentID)
		if err != nil {
			return err
		}
		subject := permissions.Subject{AuthorID: comment.AuthorID}
		if err := permissions.Authorize(callerID, permissions.DeleteComment, subject); err != nil {
			return err
		}
		return tx.Comments.Delete(ctx, comment.ID)
	})
}

func (s *CommentService) authorizeTask(
	ctx context.Context,
	repos *repository.Manager,
	taskID, callerID uint,
	action permissions.Action,
) (*model.Task, error) {
	task, err := repos.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	board, err := repos.Boards.FindByID(ctx, task.BoardID)
	if err != nil {
		return nil, err
	}
	if err := permissions.Authorize(callerID, action, boardSubject(board)); err != nil {
		return nil, err
	}
	return task, nil
}

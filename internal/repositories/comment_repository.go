package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "kanban-board.com/kanban-board/internal/errors"
	model "kanban-board.com/kanban-board/internal/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// FindInTask loads a comment only if it belongs to the given task.
func (r *CommentRepository) FindInTask(ctx context.Context, taskID, commentID uint) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&comment, "id = ? AND task_id = ?", commentID, taskID).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment %d: %w", commentID, err)
	}
	return &comment, nil
}

// ListByTask returns the comments of a task, oldest first.
func (r *CommentRepository) ListByTask(ctx context.Context, taskID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at asc").Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments of task %d: %w", taskID, err)
	}
	return comments, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{})
	if res.Error != nil {
		return fmt.Errorf("delete comment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

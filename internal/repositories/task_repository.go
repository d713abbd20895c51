package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "kanban-board.com/kanban-board/internal/errors"
	model "kanban-board.com/kanban-board/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

// TaskFilter narrows a task listing to a given assignee and/or reviewer.
type TaskFilter struct {
	AssigneeID *uint
	ReviewerID *uint
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit("Board", "Assignee", "Reviewer").Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").Preload("Reviewer").
		First(&task, "id = ?", id).Error
	if err != nil {
		if isNotFound(err) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}

	if err := r.attachCommentCounts(ctx, []*model.Task{&task}); err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"priority":    task.Priority,
			"assignee_id": task.AssigneeID,
			"reviewer_id": task.ReviewerID,
			"due_date":    task.DueDate,
		}).Error
	if err != nil {
		return fmt.Errorf("update task %d: %w", task.ID, err)
	}
	return nil
}

// Delete removes the task and its comments.
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("task_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments of task %d: %w", id, err)
	}

	res := db.Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) ListByBoard(ctx context.Context, boardID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").Preload("Reviewer").
		Where("board_id = ?", boardID).
		Order("created_at desc").Order("id desc").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks of board %d: %w", boardID, err)
	}

	if err := r.attachCommentCounts(ctx, taskPointers(tasks)); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListAccessible returns the tasks on boards userID owns or is a member of.
func (r *TaskRepository) ListAccessible(ctx context.Context, userID uint, filter TaskFilter) ([]model.Task, error) {
	owned := r.db.Model(&model.Board{}).Select("id").Where("owner_id = ?", userID)
	memberOf := r.db.Model(&model.BoardMember{}).Select("board_id").Where("user_id = ?", userID)

	query := r.db.WithContext(ctx).
		Preload("Assignee").Preload("Reviewer").
		Where("board_id IN (?) OR board_id IN (?)", owned, memberOf)
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.ReviewerID != nil {
		query = query.Where("reviewer_id = ?", *filter.ReviewerID)
	}

	var tasks []model.Task
	if err := query.Order("created_at desc").Order("id desc").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks for user %d: %w", userID, err)
	}

	if err := r.attachCommentCounts(ctx, taskPointers(tasks)); err != nil {
		return nil, err
	}
	return tasks, nil
}

type taskCount struct {
	TaskID uint
	N      int64
}

func (r *TaskRepository) attachCommentCounts(ctx context.Context, tasks []*model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}

	var rows []taskCount
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Select("task_id, count(*) as n").
		Where("task_id IN ?", ids).
		Group("task_id").
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.TaskID] = row.N
	}
	for _, t := range tasks {
		t.CommentsCount = counts[t.ID]
	}
	return nil
}

func taskPointers(tasks []model.Task) []*model.Task {
	out := make([]*model.Task, len(tasks))
	for i := range tasks {
		out[i] = &tasks[i]
	}
	return out
}

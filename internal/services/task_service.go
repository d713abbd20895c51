package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"kanban-board.com/kanban-board/internal/constants"
	apperrors "kanban-board.com/kanban-board/internal/errors"
	model "kanban-board.com/kanban-board/internal/models"
	"kanban-board.com/kanban-board/internal/permissions"
	repository "kanban-board.com/kanban-board/internal/repositories"
)

// TaskInput describes a new task. Empty Status and Priority take defaults.
type TaskInput struct {
	BoardID     uint
	Title       string
	Description string
	Status      constants.TaskStatus
	Priority    constants.TaskPriority
	AssigneeID  *uint
	ReviewerID  *uint
	DueDate     *time.Time
}

// UserRef is an optional, clearable user reference in a patch. Set=false
// leaves the field untouched; Set with a nil ID clears it.
type UserRef struct {
	Set bool
	ID  *uint
}

// DateRef is the clearable counterpart of UserRef for dates.
type DateRef struct {
	Set  bool
	Date *time.Time
}

type TaskPatch struct {
	Title       *string
	Description *string
	Status      *constants.TaskStatus
	Priority    *constants.TaskPriority
	Assignee    UserRef
	Reviewer    UserRef
	DueDate     DateRef
}

type TaskService struct {
	repos  *repository.Manager
	logger logrus.FieldLogger
}

func NewTaskService(repos *repository.Manager, logger logrus.FieldLogger) *TaskService {
	return &TaskService{
		repos:  repos,
		logger: logger,
	}
}

func (s *TaskService) Create(ctx context.Context, callerID uint, in TaskInput) (*model.Task, error) {
	if in.BoardID == 0 {
		return nil, apperrors.ValidationFields("board is required", map[string]string{
			"board": "this field is required",
		})
	}

	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = constants.StatusToDo
	}
	if err := validateStatus(status); err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = constants.PriorityMedium
	}
	if err := validatePriority(priority); err != nil {
		return nil, err
	}

	var created *model.Task
	err = s.repos.Transaction(ctx, func(tx *repository.Manager) error {
		board, err := tx.Boards.FindByID(ctx, in.BoardID)
		if err != nil {
			return err
		}
		if err := permissions.Authorize(callerID, permissions.CreateTask, boardSubject(board)); err != nil {
			return err
		}

		assignee := nonZero(in.AssigneeID)
		reviewer := nonZero(in.ReviewerID)
		if err := requireOptionalUser(ctx, tx, "assignee_id", assignee); err != nil {
			return err
		}
		if err := requireOptionalUser(ctx, tx, "reviewer_id", reviewer); err != nil {
			return err
		}

		task := &model.Task{
			BoardID:     board.ID,
			Title:       title,
			Description: strings.TrimSpace(in.Description),
			Status:      status,
			Priority:    priority,
			AssigneeID:  assignee,
			ReviewerID:  reviewer,
			DueDate:     normalizeDate(in.DueDate),
		}
		if err := tx.Tasks.Create(ctx, task); err != nil {
			return err
		}

		created, err = tx.Tasks.FindByID(ctx, task.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"task_id": created.ID, "board_id": created.BoardID}).Info("task created")
	return created, nil
}

func (s *TaskService) Get(ctx context.Context, id, callerID uint) (*model.Task, error) {
	task, err := s.repos.Tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	board, err := s.repos.Boards.FindByID(ctx, task.BoardID)
	if err != nil {
		return nil, err
	}
	if err := permissions.Authorize(callerID, permissions.ViewTask, boardSubject(board)); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id, callerID uint, patch TaskPatch) (*model.Task, error) {
	var updated *model.Task
	err := s.repos.Transaction(ctx, func(tx *repository.Manager) error {
		task, err := tx.Tasks.FindByID(ctx, id)
		if err != nil {
			return err
		}
		board, err := tx.Boards.FindByID(ctx, task.BoardID)
		if err != nil {
			return err
		}
		if err := permissions.Authorize(callerID, permissions.UpdateTask, boardSubject(board)); err != nil {
			return err
		}

		if err := applyTaskPatch(ctx, tx, task, patch); err != nil {
			return err
		}
		if err := tx.Tasks.Update(ctx, task); err != nil {
			return err
		}

		updated, err = tx.Tasks.FindByID(ctx, task.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete is reserved to the owner of the task's board.
func (s *TaskService) Delete(ctx context.Context, id, callerID uint) error {
	err := s.repos.Transaction(ctx, func(tx *repository.Manager) error {
		task, err := tx.Tasks.FindByID(ctx, id)
		if err != nil {
			return err
		}
		board, err := tx.Boards.FindByID(ctx, task.BoardID)
		if err != nil {
			return err
		}
		if err := permissions.Authorize(callerID, permissions.DeleteTask, boardSubject(board)); err != nil {
			return err
		}
		return tx.Tasks.Delete(ctx, task.ID)
	})
	if err != nil {
		return err
	}

	s.logger.WithField("task_id", id).Info("task deleted")
	return nil
}

// List returns every task on the boards the caller can access.
func (s *TaskService) List(ctx context.Context, callerID uint) ([]model.Task, error) {
	return s.repos.Tasks.ListAccessible(ctx, callerID, repository.TaskFilter{})
}

func (s *TaskService) ListAssignedTo(ctx context.Context, callerID uint) ([]model.Task, error) {
	return s.repos.Tasks.ListAccessible(ctx, callerID, repository.TaskFilter{AssigneeID: &callerID})
}

func (s *TaskService) ListReviewing(ctx context.Context, callerID uint) ([]model.Task, error) {
	return s.repos.Tasks.ListAccessible(ctx, callerID, repository.TaskFilter{ReviewerID: &callerID})
}

func applyTaskPatch(ctx context.Context, tx *repository.Manager, task *model.Task, patch TaskPatch) error {
	if patch.Title != nil {
		title, err := validateTitle(*patch.Title)
		if err != nil {
			return err
		}
		task.Title = title
	}
	if patch.Description != nil {
		task.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Status != nil {
		if err := validateStatus(*patch.Status); err != nil {
			return err
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if err := validatePriority(*patch.Priority); err != nil {
			return err
		}
		task.Priority = *patch.Priority
	}
	if patch.Assignee.Set {
		id := nonZero(patch.Assignee.ID)
		if err := requireOptionalUser(ctx, tx, "assignee_id", id); err != nil {
			return err
		}
		task.AssigneeID = id
	}
	if patch.Reviewer.Set {
		id := nonZero(patch.Reviewer.ID)
		if err := requireOptionalUser(ctx, tx, "reviewer_id", id); err != nil {
			return err
		}
		task.ReviewerID = id
	}
	if patch.DueDate.Set {
		task.DueDate = normalizeDate(patch.DueDate.Date)
	}
	return nil
}

func validateStatus(status constants.TaskStatus) error {
	if status.Valid() {
		return nil
	}
	return apperrors.ValidationFields("invalid status", map[string]string{
		"status": "invalid status, must be one of: to-do, in-progress, review, done",
	})
}

func validatePriority(priority constants.TaskPriority) error {
	if priority.Valid() {
		return nil
	}
	return apperrors.ValidationFields("invalid priority", map[string]string{
		"priority": "invalid priority, must be one of: low, medium, high",
	})
}

func requireOptionalUser(ctx context.Context, tx *repository.Manager, field string, id *uint) error {
	if id == nil {
		return nil
	}
	return requireUsers(ctx, tx, field, []uint{*id})
}

// nonZero treats a zero id as "no user".
func nonZero(id *uint) *uint {
	if id == nil || *id == 0 {
		return nil
	}
	v := *id
	return &v
}

// normalizeDate drops the time of day so due dates compare as calendar days.
func normalizeDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

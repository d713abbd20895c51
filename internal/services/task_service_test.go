package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-board.com/kanban-board/internal/constants"
	apperrors "kanban-board.com/kanban-board/internal/errors"
)

func TestTaskService_CreateDefaults(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")
	ctx := context.Background()
	board := env.boardWith(t, owner)

	task, err := env.tasks.Create(ctx, owner.ID, TaskInput{BoardID: board.Board.ID, Title: "Write docs"})
	require.NoError(t, err)

	assert.Equal(t, constants.StatusToDo, task.Status)
	assert.Equal(t, constants.PriorityMedium, task.Priority)
	assert.Nil(t, task.AssigneeID)
	assert.Nil(t, task.DueDate)

	fetched, err := env.tasks.Get(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "to-do", string(fetched.Status))
}

func TestTaskService_CreateWithFields(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")
	member := env.user(t, "member@example.com")
	stranger := env.user(t, "stranger@example.com")
	ctx := context.Background()
	board := env.boardWith(t, owner, member)

	due := time.Date(2026, 11, 3, 15, 30, 0, 0, time.UTC)
	task, err := env.tasks.Create(ctx, member.ID, TaskInput{
		BoardID:     board.Board.ID,
		Title:       "Review PR",
		Description: "check the diff",
		Status:      constants.StatusReview,
		Priority:    constants.PriorityHigh,
		AssigneeID:  uintPtr(member.ID),
		ReviewerID:  uintPtr(stranger.ID),
		DueDate:     &due,
	})
	require.NoError(t, err)

	assert.Equal(t, constants.StatusReview, task.Status)
	require.NotNil(t, task.Assignee)
	assert.Equal(t, member.ID, task.Assignee.ID)
	require.NotNil(t, task.Reviewer)
	assert.Equal(t, stranger.ID, task.Reviewer.ID, "reviewer need not be a board member")
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2026-11-03", task.DueDate.Format("2006-01-02"))
}

func TestTaskService_CreateRejected(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")
	outsider := env.user(t, "outsider@example.com")
	ctx := context.Background()
	board := env.boardWith(t, owner)

	_, err := env.tasks.Create(ctx, outsider.ID, TaskInput{BoardID: board.Board.ID, Title: "x"})
	assert.True(t, apperrors.IsPermission(err))

	_, err = env.tasks.Create(ctx, owner.ID, TaskInput{BoardID: 9999, Title: "x"})
	require.ErrorIs(t, err, apperrors.ErrBoardNotFound)

	_, err = env.tasks.Create(ctx, owner.ID, TaskInput{Title: "x"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = env.tasks.Create(ctx, owner.ID, TaskInput{BoardID: board.Board.ID, Title: "x", Status: "reviewing"})
	assert.True(t, apperrors.IsValidation(err), "only the four listed statuses are accepted")

	_, err = env.tasks.Create(ctx, owner.ID, TaskInput{BoardID: board.Board.ID, Title: "x", Priority: "urgent"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = env.tasks.Create(ctx, owner.ID, TaskInput{BoardID: board.Board.ID, Title: "x", AssigneeID: uintPtr(777)})
	assert.True(t, apperrors.IsValidation(err))

	_, err = env.tasks.Create(ctx, owner.ID, TaskInput{BoardID: board.Board.ID, Title: ""})
	assert.True(t, apperrors.IsValidation(err))
}

func TestTaskService_UpdatePartial(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")
	member := env.user(t, "member@example.com")
	ctx := context.Background()
	board := env.boardWith(t, owner, member)

	task, err := env.tasks.Create(ctx, owner.ID, TaskInput{
		BoardID:    board.Board.ID,
		Title:      "Initial",
		AssigneeID: uintPtr(member.ID),
	})
	require.NoError(t, err)

	status := constants.StatusInProgress
	due := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	updated, err := env.tasks.Update(ctx, task.ID, member.ID, TaskPatch{
		Status:   &status,
		Reviewer: UserRef{Set: true, ID: uintPtr(owner.ID)},
		DueDate:  DateRef{Set: true, Date: &due},
	})
	require.NoError(t, err)

	assert.Equal(t, "Initial", updated.Title)
	assert.Equal(t, constants.StatusInProgress, updated.Status)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, member.ID, *updated.AssigneeID, "absent assignee must stay unchanged")
	require.NotNil(t, updated.ReviewerID)
	assert.Equal(t, owner.ID, *updated.ReviewerID)
	require.NotNil(t, updated.DueDate)

	updated, err = env.tasks.Update(ctx, task.ID, owner.ID, TaskPatch{
		Assignee: UserRef{Set: true},
		Reviewer: UserRef{Set: true, ID: uintPtr(0)},
		DueDate:  DateRef{Set: true},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)
	assert.Nil(t, updated.ReviewerID)
	assert.Nil(t, updated.DueDate)
}

func TestTaskService_UpdateRejected(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")
	outsider := env.user(t, "outsider@example.com")
	ctx := context.Background()
	board := env.boardWith(t, owner)
	task := env.taskOn(t, board.Board.ID, owner, "Task")

	title := "Mine now"
	_, err := env.tasks.Update(ctx, task.ID, outsider.ID, TaskPatch{Title: &title})
	assert.True(t, apperrors.IsPermission(err))

	bad := constants.TaskStatus("reviewing")
	_, err = env.tasks.Update(ctx, task.ID, owner.ID, TaskPatch{Title: &title, Status: &bad})
	assert.True(t, apperrors.IsValidation(err))

	fetched, err := env.tasks.Get(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Task", fetched.Title)

	_, err = env.tasks.Update(ctx, 4242, owner.ID, TaskPatch{Title: &title})
	require.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestTaskService_DeleteOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")
	member := env.user(t, "member@example.com")
	ctx := context.Background()
	board := env.boardWith(t, owner, member)
	task := env.taskOn(t, board.Board.ID, member, "Task")

	_, err := env.comments.Create(ctx, task.ID, member.ID, "note")
	require.NoError(t, err)

	err = env.tasks.Delete(ctx, task.ID, member.ID)
	require.ErrorIs(t, err, apperrors.ErrTaskDeleteDenied)

	require.NoError(t, env.tasks.Delete(ctx, task.ID, owner.ID))

	_, err = env.tasks.Get(ctx, task.ID, owner.ID)
	require.ErrorIs(t, err, apperrors.ErrTaskNotFound)
}

func TestTaskService_GetOutsiderDenied(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")
	outsider := env.user(t, "outsider@example.com")
	board := env.boardWith(t, owner)
	task := env.taskOn(t, board.Board.ID, owner, "Task")

	_, err := env.tasks.Get(context.Background(), task.ID, outsider.ID)
	assert.True(t, apperrors.IsPermission(err))
}

func TestTaskService_AssignedAndReviewing(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")
	member := env.user(t, "member@example.com")
	outsider := env.user(t, "outsider@example.com")
	ctx := context.Background()
	board := env.boardWith(t, owner, member)

	assigned, err := env.tasks.Create(ctx, owner.ID, TaskInput{BoardID: board.Board.ID, Title: "a", AssigneeID: uintPtr(member.ID)})
	require.NoError(t, err)
	reviewing, err := env.tasks.Create(ctx, owner.ID, TaskInput{BoardID: board.Board.ID, Title: "r", ReviewerID: uintPtr(member.ID)})
	require.NoError(t, err)
	env.taskOn(t, board.Board.ID, owner, "unrelated")

	// Assigned to an outsider, who cannot access the board.
	_, err = env.tasks.Create(ctx, owner.ID, TaskInput{BoardID: board.Board.ID, Title: "o", AssigneeID: uintPtr(outsider.ID)})
	require.NoError(t, err)

	tasks, err := env.tasks.ListAssignedTo(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, assigned.ID, tasks[0].ID)

	tasks, err = env.tasks.ListReviewing(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, reviewing.ID, tasks[0].ID)

	tasks, err = env.tasks.ListAssignedTo(ctx, outsider.ID)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tasks, err = env.tasks.List(ctx, member.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
}

func TestTaskService_CommentsCount(t *testing.T) {
	env := newTestEnv(t)
	owner := env.user(t, "owner@example.com")
	ctx := context.Background()
	board := env.boardWith(t, owner)
	task := env.taskOn(t, board.Board.ID, owner, "Task")

	for _, body := range []string{"one", "two"} {
		_, err := env.comments.Create(ctx, task.ID, owner.ID, body)
		require.NoError(t, err)
	}

	fetched, err := env.tasks.Get(ctx, task.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), fetched.CommentsCount)
}

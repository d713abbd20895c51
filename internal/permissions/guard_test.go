package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "kanban-board.com/kanban-board/internal/errors"
)

const (
	ownerID    uint = 1
	memberID   uint = 2
	outsiderID uint = 3
)

func boardSubject() Subject {
	return Subject{OwnerID: ownerID, MemberIDs: []uint{memberID}}
}

func TestAllowed_ActionTable(t *testing.T) {
	cases := []struct {
		action   Action
		owner    bool
		member   bool
		outsider bool
	}{
		{ViewBoard, true, true, false},
		{UpdateBoard, true, true, false},
		{DeleteBoard, true, false, false},
		{ViewTask, true, true, false},
		{CreateTask, true, true, false},
		{UpdateTask, true, true, false},
		{DeleteTask, true, false, false},
		{ListComments, true, true, false},
		{CreateComment, true, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.action.String(), func(t *testing.T) {
			s := boardSubject()
			assert.Equal(t, tc.owner, Allowed(ownerID, tc.action, s), "owner")
			assert.Equal(t, tc.member, Allowed(memberID, tc.action, s), "member")
			assert.Equal(t, tc.outsider, Allowed(outsiderID, tc.action, s), "outsider")
		})
	}
}

func TestAllowed_DeleteCommentIsAuthorOnly(t *testing.T) {
	s := Subject{OwnerID: ownerID, MemberIDs: []uint{memberID}, AuthorID: memberID}

	assert.True(t, Allowed(memberID, DeleteComment, s))
	assert.False(t, Allowed(ownerID, DeleteComment, s), "board owner must not delete a member's comment")
	assert.False(t, Allowed(outsiderID, DeleteComment, s))
}

func TestAllowed_ZeroCallerNeverAllowed(t *testing.T) {
	s := Subject{}
	assert.False(t, Allowed(0, ViewBoard, s))
	assert.False(t, Allowed(0, DeleteComment, s))
}

func TestAllowed_UnknownAction(t *testing.T) {
	assert.False(t, Allowed(ownerID, Action(99), boardSubject()))
	assert.Equal(t, "unknown action", Action(99).String())
}

func TestAuthorize_DenialErrors(t *testing.T) {
	s := boardSubject()

	require.NoError(t, Authorize(ownerID, DeleteBoard, s))

	err := Authorize(memberID, DeleteBoard, s)
	require.ErrorIs(t, err, apperrors.ErrBoardDeleteDenied)
	assert.True(t, apperrors.IsPermission(err))

	err = Authorize(memberID, DeleteTask, s)
	require.ErrorIs(t, err, apperrors.ErrTaskDeleteDenied)

	err = Authorize(outsiderID, ViewBoard, s)
	require.ErrorIs(t, err, apperrors.ErrBoardAccessDenied)

	err = Authorize(ownerID, DeleteComment, Subject{AuthorID: memberID})
	require.ErrorIs(t, err, apperrors.ErrCommentDeleteDenied)
}

// Package permissions decides whether a caller may perform an action on a
// board, task or comment. Decisions depend only on the caller id, the action
// and the ownership facts of the target, so callers load those facts first.
package permissions

import (
	apperrors "kanban-board.com/kanban-board/internal/errors"
)

type Action int

const (
	ViewBoard Action = iota
	UpdateBoard
	DeleteBoard
	ViewTask
	CreateTask
	UpdateTask
	DeleteTask
	ListComments
	CreateComment
	DeleteComment
)

var actionNames = map[Action]string{
	ViewBoard:     "view board",
	UpdateBoard:   "update board",
	DeleteBoard:   "delete board",
	ViewTask:      "view task",
	CreateTask:    "create task",
	UpdateTask:    "update task",
	DeleteTask:    "delete task",
	ListComments:  "list comments",
	CreateComment: "create comment",
	DeleteComment: "delete comment",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown action"
}

type Relation int

const (
	OwnerOrMember Relation = iota
	Owner
	Author
)

var required = map[Action]Relation{
	ViewBoard:     OwnerOrMember,
	UpdateBoard:   OwnerOrMember,
	DeleteBoard:   Owner,
	ViewTask:      OwnerOrMember,
	CreateTask:    OwnerOrMember,
	UpdateTask:    OwnerOrMember,
	DeleteTask:    Owner,
	ListComments:  OwnerOrMember,
	CreateComment: OwnerOrMember,
	DeleteComment: Author,
}

// Subject holds the ownership facts of the target entity. For task and
// comment actions OwnerID and MemberIDs describe the enclosing board.
type Subject struct {
	OwnerID   uint
	MemberIDs []uint
	AuthorID  uint
}

func (s Subject) isMember(callerID uint) bool {
	for _, id := range s.MemberIDs {
		if id == callerID {
			return true
		}
	}
	return false
}

// Allowed reports whether callerID holds the relation the action requires.
func Allowed(callerID uint, action Action, subject Subject) bool {
	if callerID == 0 {
		return false
	}
	relation, ok := required[action]
	if !ok {
		return false
	}

	switch relation {
	case Owner:
		return subject.OwnerID == callerID
	case Author:
		return subject.AuthorID != 0 && subject.AuthorID == callerID
	default:
		return subject.OwnerID == callerID || subject.isMember(callerID)
	}
}

// Authorize is Allowed with the denial expressed as a permission error.
func Authorize(callerID uint, action Action, subject Subject) error {
	if Allowed(callerID, action, subject) {
		return nil
	}
	return denial(action)
}

func denial(action Action) error {
	switch action {
	case DeleteBoard:
		return apperrors.ErrBoardDeleteDenied
	case DeleteTask:
		return apperrors.ErrTaskDeleteDenied
	case DeleteComment:
		return apperrors.ErrCommentDeleteDenied
	default:
		return apperrors.ErrBoardAccessDenied
	}
}

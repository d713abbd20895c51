package errors

var (
	ErrUserNotFound    = NotFound("user not found")
	ErrEmailNotFound   = NotFound("email not found")
	ErrBoardNotFound   = NotFound("board not found")
	ErrTaskNotFound    = NotFound("task not found")
	ErrCommentNotFound = NotFound("comment not found")
)

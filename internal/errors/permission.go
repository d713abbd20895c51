package errors

var (
	ErrBoardAccessDenied   = Permission("you do not have permission to access this board")
	ErrBoardDeleteDenied   = Permission("only the owner can delete this board")
	ErrTaskDeleteDenied    = Permission("only the board owner can delete this task")
	ErrCommentDeleteDenied = Permission("only the comment author can delete it")
)

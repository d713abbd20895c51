package errors

var (
	ErrInvalidCredentials = Auth("invalid email or password")
	ErrInvalidToken       = Auth("invalid token")
	ErrMissingToken       = Auth("authentication credentials were not provided")
	ErrEmailTaken         = Validation("email is already registered")
	ErrPasswordMismatch   = ValidationFields("password fields didn't match", map[string]string{
		"password": "password fields didn't match",
	})
)

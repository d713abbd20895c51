package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "kanban-board.com/kanban-board/internal/data_models"
	apperrors "kanban-board.com/kanban-board/internal/errors"
)

func TestRequestValidator_Valid(t *testing.T) {
	v := New()

	err := v.Validate(&dto.CreateTaskRequest{Board: 1, Title: "Write docs", Status: "in-progress"})
	assert.NoError(t, err)

	title := "Renamed"
	err = v.Validate(&dto.UpdateBoardRequest{Title: &title})
	assert.NoError(t, err)
}

func TestRequestValidator_FieldErrors(t *testing.T) {
	v := New()

	err := v.Validate(&dto.CreateTaskRequest{Status: "reviewing"})
	require.Error(t, err)

	var exc *apperrors.Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, 400, exc.StatusCode)
	assert.Equal(t, "this field is required", exc.Fields["board"])
	assert.Equal(t, "this field is required", exc.Fields["title"])
	assert.Equal(t, "must be one of: to-do, in-progress, review, done", exc.Fields["status"])
}

func TestRequestValidator_Members(t *testing.T) {
	v := New()

	err := v.Validate(&dto.CreateBoardRequest{Title: "Project X", Members: []uint{2, 0}})
	require.Error(t, err)

	var exc *apperrors.Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, "must be a positive id", exc.Fields["members[1]"])
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{email: "john@example.com", valid: true},
		{email: "j.doe+kanban@sub.example.org", valid: true},
		{email: "John <john@example.com>"},
		{email: "john"},
		{email: "not-an-email"},
		{email: ""},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var exc *apperrors.Exception
			require.ErrorAs(t, err, &exc)
			assert.Equal(t, "enter a valid email address", exc.Fields["email"])
		})
	}
}

func TestRequestValidator_RegistrationEmail(t *testing.T) {
	v := New()

	err := v.Validate(&dto.RegistrationRequest{
		Email:            "john",
		FullName:         "John",
		Password:         "SecurePassword123!",
		RepeatedPassword: "SecurePassword123!",
	})

	var exc *apperrors.Exception
	require.ErrorAs(t, err, &exc)
	assert.Equal(t, "enter a valid email address", exc.Fields["email"])
}

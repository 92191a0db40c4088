package errors

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with cause",
			err:  NewParsingError("bad cell", stderrors.New("boom")),
			want: "[PARSING] bad cell: boom",
		},
		{
			name: "without cause",
			err:  NewValidationError("missing delimiter"),
			want: "[VALIDATION] missing delimiter",
		},
		{
			name: "not found",
			err:  NewNotFoundError("input file"),
			want: "[NOT_FOUND] input file not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	err := NewStorageError("open database", fs.ErrPermission)
	assert.True(t, stderrors.Is(err, fs.ErrPermission))

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppError_WithContext(t *testing.T) {
	err := NewConfigError("bad config", nil).WithContext("path", "config.yaml")
	assert.Equal(t, "config.yaml", err.Context["path"])
}

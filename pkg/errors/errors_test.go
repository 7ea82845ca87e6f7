package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/svnrelease/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "path_error",
			code:    errors.ErrPath,
			message: "path to git repo not found",
			wantStr: "[PATH] path to git repo not found",
		},
		{
			name:    "user_abort",
			code:    errors.ErrUserAbort,
			message: "commit aborted",
			wantStr: "[USER_ABORT] commit aborted",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrVcs, "ignored"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrVcs, "ignored %d", 1))
	})

	t.Run("wrapped_error_is_unwrappable", func(t *testing.T) {
		base := stderrors.New("exit status 1")
		err := errors.Wrapf(base, errors.ErrVcs, "svn %s failed", "commit")

		assert.Equal(t, "[VCS] svn commit failed: exit status 1", err.Error())
		assert.True(t, stderrors.Is(err, base))
	})
}

func TestErrorCodeHelpers(t *testing.T) {
	err := fmt.Errorf("stage failed: %w",
		errors.New(errors.ErrStaging, "zip has no entries").WithDetail("archive", "/tmp/x.zip"))

	assert.True(t, errors.IsErrorCode(err, errors.ErrStaging))
	assert.False(t, errors.IsErrorCode(err, errors.ErrVcs))
	assert.Equal(t, errors.ErrStaging, errors.GetErrorCode(err))
	assert.Equal(t, "/tmp/x.zip", errors.GetErrorDetails(err)["archive"])

	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestIsComparesCodes(t *testing.T) {
	err := errors.New(errors.ErrUserAbort, "declined")
	assert.True(t, stderrors.Is(err, errors.New(errors.ErrUserAbort, "other message")))
	assert.False(t, stderrors.Is(err, errors.New(errors.ErrVcs, "declined")))
}

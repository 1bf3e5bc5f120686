package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingArgument(t *testing.T) {
	err := MissingArgument(FieldQuery)

	assert.Equal(t, "missing argument: query", err.Error())
	assert.True(t, IsMissingArgument(err))
	assert.False(t, IsIOFailure(err))

	var missingErr *MissingArgumentError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, FieldQuery, missingErr.Field)
}

func TestIOFailure_KeepsCause(t *testing.T) {
	cause := &fs.PathError{Op: "open", Path: "poem.txt", Err: fs.ErrNotExist}
	err := IOFailure("poem.txt", cause)

	assert.Equal(t, cause.Error(), err.Error())
	assert.True(t, IsIOFailure(err))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	var pathErr *fs.PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Same(t, cause, pathErr)
}

func TestIOFailure_NilAndAlreadyWrapped(t *testing.T) {
	assert.Nil(t, IOFailure("x", nil))

	first := IOFailure("a", fmt.Errorf("boom"))
	assert.Same(t, first, IOFailure("b", first))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(MissingArgument(FieldSource)))
	assert.Equal(t, 1, ExitCode(IOFailure("f", fs.ErrPermission)))
	assert.Equal(t, 1, ExitCode(fmt.Errorf("other")))
	assert.Equal(t, 2, ExitCode(fmt.Errorf("wrapped: %w", MissingArgument(FieldQuery))))
}

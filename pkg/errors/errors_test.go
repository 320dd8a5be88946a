// Package errors_test covers the AppError type, its factories and the
// error-chain helpers.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/CentralBankTalk/pkg/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// TestNew
// ─────────────────────────────────────────────────────────────────────────────

func TestNew_FieldsAreSetCorrectly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		code    errors.ErrorCode
		message string
	}{
		{"internal error", errors.ErrCodeInternal, "unexpected failure"},
		{"unknown indicator", errors.ErrCodeUnknownIndicator, "indicator foo is not registered"},
		{"bad request", errors.ErrCodeBadRequest, "amount must be within [0,1]"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ae := errors.New(tc.code, tc.message)

			require.NotNil(t, ae)
			assert.Equal(t, tc.code, ae.Code)
			assert.Equal(t, tc.message, ae.Message)
			assert.Empty(t, ae.Detail)
			assert.Nil(t, ae.Cause)
			assert.Contains(t, ae.Stack, "errors_test.go")
		})
	}
}

func TestAppError_ErrorFormat(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeUnknownPalette, "unknown palette")
	assert.Equal(t, "[CHORO_002] unknown palette", ae.Error())

	withDetail := ae.WithDetail("id=reds")
	assert.Equal(t, "[CHORO_002] unknown palette: id=reds", withDetail.Error())
	assert.Empty(t, ae.Detail, "WithDetail must not mutate the receiver")
}

func TestAppError_NilBuilders(t *testing.T) {
	t.Parallel()

	var ae *errors.AppError
	assert.Nil(t, ae.WithDetail("x"))
	assert.Nil(t, ae.WithCause(stderrors.New("x")))
}

// ─────────────────────────────────────────────────────────────────────────────
// TestWrap
// ─────────────────────────────────────────────────────────────────────────────

func TestWrap_NilReturnsNil(t *testing.T) {
	t.Parallel()
	assert.Nil(t, errors.Wrap(nil, errors.ErrCodeInternal, "x"))
}

func TestWrap_PreservesCauseChain(t *testing.T) {
	t.Parallel()

	root := stderrors.New("connection refused")
	ae := errors.Wrap(root, errors.ErrCodeDatasetUnavailable, "fetch failed")

	require.NotNil(t, ae)
	assert.True(t, stderrors.Is(ae, root))
	assert.Equal(t, root, stderrors.Unwrap(ae))
}

func TestWrap_UnknownCodeKeepsOriginal(t *testing.T) {
	t.Parallel()

	inner := errors.New(errors.ErrCodeDatasetParseError, "bad json")
	outer := errors.Wrap(inner, errors.CodeUnknown, "loading metadata")

	assert.Equal(t, errors.ErrCodeDatasetParseError, outer.Code)
}

// ─────────────────────────────────────────────────────────────────────────────
// Inspection helpers
// ─────────────────────────────────────────────────────────────────────────────

func TestIsCode_TraversesForeignWrappers(t *testing.T) {
	t.Parallel()

	ae := errors.New(errors.ErrCodeInvalidColor, "bad hex")
	wrapped := fmt.Errorf("outer: %w", ae)

	assert.True(t, errors.IsCode(wrapped, errors.ErrCodeInvalidColor))
	assert.False(t, errors.IsCode(wrapped, errors.ErrCodeInvalidMode))
	assert.False(t, errors.IsCode(nil, errors.ErrCodeInvalidColor))
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	assert.True(t, errors.IsNotFound(errors.New(errors.CodeNotFound, "missing")))
	assert.True(t, errors.IsNotFound(errors.New(errors.ErrCodeDatasetNotFound, "no such object")))
	assert.True(t, errors.IsNotFound(fmt.Errorf("wrap: %w", errors.New(errors.ErrCodeUnknownIndicator, "x"))))
	assert.False(t, errors.IsNotFound(errors.New(errors.ErrCodeInternal, "x")))
	assert.False(t, errors.IsNotFound(stderrors.New("plain")))
}

func TestGetCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.ErrCodeInvalidMode, errors.GetCode(fmt.Errorf("w: %w", errors.New(errors.ErrCodeInvalidMode, "x"))))
}

//Personal.AI order the ending

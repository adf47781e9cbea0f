package errors

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDocConfError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DocConfError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, test.err.Error())
		})
	}
}

func TestDocConfError_WithContext(t *testing.T) {
	err := New(CategoryAPIDoc, SeverityFatal, "step failed").
		WithContext("step", "bootstrap").
		WithContext("dir", "build")

	require.Equal(t, "bootstrap", err.Context["step"])
	require.Equal(t, "build", err.Context["dir"])
}

func TestAPIDocBuildFailed_PreservesProcessError(t *testing.T) {
	cause := &exec.ExitError{}
	err := fmt.Errorf("load: %w", APIDocBuildFailed("make doc", cause))

	var exitErr *exec.ExitError
	require.True(t, stdErrors.As(err, &exitErr))
	require.True(t, IsCategory(err, CategoryAPIDoc))
	require.Equal(t, CategoryAPIDoc, GetCategory(err))
}

func TestGetCategory_PlainError(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(fmt.Errorf("boom")))
	require.False(t, IsCategory(fmt.Errorf("boom"), CategoryConfig))
}

func TestCLIErrorAdapter_ExitCodes(t *testing.T) {
	a := NewCLIErrorAdapter(false, nil)
	cases := []struct {
		err  error
		code int
	}{
		{nil, 0},
		{fmt.Errorf("plain"), 1},
		{ValidationFailed("replacements", "duplicate"), 2},
		{ConfigNotFound("docconf.yaml"), 7},
		{APIDocBuildFailed("make doc", fmt.Errorf("exit status 2")), 8},
		{HookFailed("source-read", "index", fmt.Errorf("x")), 11},
		{InternalError("oops", nil), 10},
	}
	for _, c := range cases {
		require.Equal(t, c.code, a.ExitCodeFor(c.err), "%v", c.err)
	}
}

func TestCLIErrorAdapter_Handle(t *testing.T) {
	var logs, out bytes.Buffer
	a := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	a.out = &out

	code := a.Handle(ConfigNotFound("missing.yaml"))
	require.Equal(t, 7, code)
	require.Equal(t, "configuration file not found\n", out.String())
	require.Contains(t, logs.String(), "path=missing.yaml")
}

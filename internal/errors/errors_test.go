// Copyright 2025 XintLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserErrorWrapsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewNetworkError("Cannot reach package API", "POST /query failed", "Check XINT_PACKAGE_API_BASE_URL", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "Cannot reach package API")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFormatPlain(t *testing.T) {
	err := NewInputError("Query is required", "The search subcommand needs a non-empty query", "Run: xint search --query <text>", nil)
	out := err.Format(true)

	require.Contains(t, out, "Error: Query is required")
	assert.Contains(t, out, "The search subcommand needs a non-empty query")
	assert.Contains(t, out, "Hint: Run: xint search --query <text>")
	assert.NotContains(t, out, "\x1b[", "plain format must not emit ANSI escapes")
}

func TestFormatIncludesCause(t *testing.T) {
	err := NewConfigError("Cannot load config", "", "", stderrors.New("yaml: line 3"))
	out := err.Format(true)
	assert.Contains(t, out, "Cause: yaml: line 3")
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindPermission, NewPermissionError("t", "", "", nil).Kind)
	assert.Equal(t, KindInternal, NewInternalError("t", "", "", nil).Kind)
	assert.Equal(t, KindConfig, NewConfigError("t", "", "", nil).Kind)
}

// Copyright 2025 XintLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Mode
	}{
		{"read_only", ReadOnly},
		{"readonly", ReadOnly},
		{"READ_ONLY", ReadOnly},
		{"  engagement ", Engagement},
		{"Engagement", Engagement},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	_, err := Parse("admin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin")
}

func TestOrdering(t *testing.T) {
	assert.True(t, IsAllowed(ReadOnly, ReadOnly))
	assert.True(t, IsAllowed(Engagement, ReadOnly))
	assert.True(t, IsAllowed(Engagement, Engagement))
	assert.False(t, IsAllowed(ReadOnly, Engagement))
}

func TestStringRoundTrip(t *testing.T) {
	for _, m := range []Mode{ReadOnly, Engagement} {
		got, err := Parse(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
}

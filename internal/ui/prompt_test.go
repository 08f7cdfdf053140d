package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAskConflict(t *testing.T) {
	var out strings.Builder

	choice := AskConflict(strings.NewReader("o\n"), &out, "/dst/f")
	assert.Equal(t, ChoiceOverwrite, choice)
	assert.Contains(t, out.String(), "/dst/f already exists")

	assert.Equal(t, ChoiceSkip, AskConflict(strings.NewReader("skip\n"), &out, "/dst/f"))
	assert.Equal(t, ChoiceAbort, AskConflict(strings.NewReader("a\n"), &out, "/dst/f"))
}

func TestAskConflictReprompts(t *testing.T) {
	var out strings.Builder
	choice := AskConflict(strings.NewReader("huh\nS\n"), &out, "/dst/f")
	assert.Equal(t, ChoiceSkip, choice)
	assert.Equal(t, 2, strings.Count(out.String(), "already exists"))
}

func TestAskConflictEOFAborts(t *testing.T) {
	var out strings.Builder
	assert.Equal(t, ChoiceAbort, AskConflict(strings.NewReader(""), &out, "/dst/f"))
}

func TestAskPasswordEnvOverride(t *testing.T) {
	t.Setenv("FERRY_PASSWORD", "hunter2")
	pw, err := AskPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pw)
}

package main

import (
	"errors"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectOverrideKeepsSuggestedDefault(t *testing.T) {
	p := newHuhPrompter()
	p.runForm = func(*huh.Form) error { return nil }

	got, err := p.SelectOverride("dxgi", []string{"dxgi", "d3d9"})

	require.NoError(t, err)
	assert.Equal(t, "dxgi", got)
}

func TestSelectOverridePropagatesAbort(t *testing.T) {
	p := newHuhPrompter()
	p.runForm = func(*huh.Form) error { return huh.ErrUserAborted }

	_, err := p.SelectOverride("dxgi", []string{"dxgi"})

	require.ErrorIs(t, err, huh.ErrUserAborted)
}

func TestConfirmShadersKeepsDefault(t *testing.T) {
	p := newHuhPrompter()
	p.runForm = func(*huh.Form) error { return nil }

	got, err := p.ConfirmShaders(true)

	require.NoError(t, err)
	assert.True(t, got)
}

func TestConfirmShadersFormError(t *testing.T) {
	formErr := errors.New("no tty")
	p := newHuhPrompter()
	p.runForm = func(*huh.Form) error { return formErr }

	_, err := p.ConfirmShaders(false)

	require.ErrorIs(t, err, formErr)
}

package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// huhPrompter implements planner.Prompter with charmbracelet/huh forms.
type huhPrompter struct {
	runForm func(*huh.Form) error
}

func newHuhPrompter() *huhPrompter {
	return &huhPrompter{runForm: func(form *huh.Form) error { return form.Run() }}
}

func (p *huhPrompter) SelectOverride(suggested string, options []string) (string, error) {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		label := o
		if o == suggested {
			label = fmt.Sprintf("%s (detected)", o)
		}
		opts[i] = huh.NewOption(label, o)
	}
	selected := suggested
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Install the injector as which DLL?").
				Options(opts...).
				Value(&selected),
		),
	)
	if err := p.runForm(form); err != nil {
		return "", err
	}
	return selected, nil
}

func (p *huhPrompter) ConfirmShaders(defaultYes bool) (bool, error) {
	value := defaultYes
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Link the merged shader collection into the game?").
				Value(&value),
		),
	)
	if err := p.runForm(form); err != nil {
		return false, err
	}
	return value, nil
}

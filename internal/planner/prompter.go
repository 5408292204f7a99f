package planner

// Prompter gathers the two interactive decisions Configure can need. A nil
// Prompter means the suggested defaults are accepted without interaction.
type Prompter interface {
	// SelectOverride asks which DLL name the injector should claim inside
	// the install directory. suggested is the detected default; returning
	// an empty string keeps it.
	SelectOverride(suggested string, options []string) (string, error)

	// ConfirmShaders asks whether merged shaders should be linked in.
	ConfirmShaders(defaultYes bool) (bool, error)
}

// OverrideOptions lists the DLL names the injector can be installed as,
// detected default first in the priority order the analyzer uses.
func OverrideOptions() []string {
	return []string{"dxgi", "d3d9", "d3d11", "d3d10", "opengl32", "d3d8", "ddraw", "dinput8"}
}

// PromptFuncs adapts plain functions to the Prompter interface. Nil fields
// accept the default.
type PromptFuncs struct {
	SelectOverrideFunc func(suggested string, options []string) (string, error)
	ConfirmShadersFunc func(defaultYes bool) (bool, error)
}

func (p PromptFuncs) SelectOverride(suggested string, options []string) (string, error) {
	if p.SelectOverrideFunc == nil {
		return suggested, nil
	}
	return p.SelectOverrideFunc(suggested, options)
}

func (p PromptFuncs) ConfirmShaders(defaultYes bool) (bool, error) {
	if p.ConfirmShadersFunc == nil {
		return defaultYes, nil
	}
	return p.ConfirmShadersFunc(defaultYes)
}

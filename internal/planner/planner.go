// Package planner drives the install state machine for one application:
// Uninstalled → Analyzed → Configured → Installed. Each transition is an
// explicit call taking the previous state's value, so any front end (CLI,
// TUI, script) can drive it without the core knowing how input is gathered.
package planner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/glaze-tools/glaze/internal/config"
	"github.com/glaze-tools/glaze/internal/gamedb"
	"github.com/glaze-tools/glaze/internal/messages"
	"github.com/glaze-tools/glaze/internal/peinfo"
	"github.com/glaze-tools/glaze/internal/shaders"
	"github.com/glaze-tools/glaze/internal/steam"
	"github.com/glaze-tools/glaze/internal/warnings"
)

// AnalyzeFunc matches peinfo.Analyze.
type AnalyzeFunc func(path string) (peinfo.Profile, error)

// MergeFunc matches shaders.Merge.
type MergeFunc func(ctx context.Context, sources []shaders.Source, outputDir string) (shaders.Report, []warnings.Warning, error)

// Options configures a Planner. Config and Store are required; the function
// fields default to the real implementations and exist for tests.
type Options struct {
	Config     *config.Config
	Store      *gamedb.Store
	Prompter   Prompter
	WarnWriter io.Writer
	Analyze    AnalyzeFunc
	Merge      MergeFunc
}

// Planner executes installation transitions for one application at a time.
// It never mutates recorded application state except through the store.
type Planner struct {
	cfg      *config.Config
	store    *gamedb.Store
	prompter Prompter
	warn     io.Writer
	analyze  AnalyzeFunc
	merge    MergeFunc
}

// New returns a Planner over the given options.
func New(opts Options) *Planner {
	p := &Planner{
		cfg:      opts.Config,
		store:    opts.Store,
		prompter: opts.Prompter,
		warn:     opts.WarnWriter,
		analyze:  opts.Analyze,
		merge:    opts.Merge,
	}
	if p.warn == nil {
		p.warn = os.Stderr
	}
	if p.analyze == nil {
		p.analyze = peinfo.Analyze
	}
	if p.merge == nil {
		p.merge = shaders.Merge
	}
	return p
}

// Target identifies the application being worked on.
type Target struct {
	Identity   gamedb.Identity
	Name       string
	InstallDir string
	Executable string
}

// TargetFromEntry converts a scanned library entry. Steam entries are keyed
// by appid.
func TargetFromEntry(entry steam.ApplicationEntry) Target {
	return Target{
		Identity:   gamedb.Identity(entry.AppID),
		Name:       entry.Name,
		InstallDir: entry.InstallDir,
		Executable: entry.Executable,
	}
}

// TargetFromExecutable builds a target for a manually browsed executable.
// Without a platform-assigned id, the resolved install dir is the identity.
func TargetFromExecutable(exePath string) (Target, error) {
	abs, err := filepath.Abs(exePath)
	if err != nil {
		return Target{}, err
	}
	dir := filepath.Dir(abs)
	return Target{
		Identity:   gamedb.Identity(dir),
		Name:       filepath.Base(dir),
		InstallDir: dir,
		Executable: abs,
	}, nil
}

// Analysis is the Analyzed state: a fresh executable profile plus whatever
// the store previously recorded for this application.
type Analysis struct {
	Target  Target
	Profile peinfo.Profile
	Prior   *gamedb.Record
}

// Analyze performs the Uninstalled → Analyzed transition. The profile is
// always derived fresh; game updates can change the binary between runs.
func (p *Planner) Analyze(target Target) (*Analysis, error) {
	if target.Executable == "" {
		return nil, errors.New(messages.InstallEntryExecutableRequired)
	}
	profile, err := p.analyze(target.Executable)
	if err != nil {
		return nil, err
	}
	analysis := &Analysis{Target: target, Profile: profile}
	if record, ok, err := p.store.Get(target.Identity); err != nil {
		return nil, err
	} else if ok {
		analysis.Prior = &record
	}
	return analysis, nil
}

// Configured is the Configured state: everything Install needs.
type Configured struct {
	Analysis
	OverrideModule string
	InstallPath    string
	MergeShaders   bool
}

// Configure performs the Analyzed → Configured transition. Prior record
// values are reused when the fresh profile still matches them; only
// genuinely new or invalidated fields reach the prompter. Without a
// prompter, defaults are accepted as-is.
func (p *Planner) Configure(analysis *Analysis) (*Configured, error) {
	configured := &Configured{
		Analysis:       *analysis,
		OverrideModule: analysis.Profile.OverrideModule,
		InstallPath:    filepath.Dir(analysis.Target.Executable),
		MergeShaders:   p.cfg.MergeShadersEnabled(),
	}

	prior := analysis.Prior
	if prior != nil {
		configured.MergeShaders = prior.ShadersMerged
		if prior.InstallPath != "" {
			configured.InstallPath = prior.InstallPath
		}
		if profileMatchesRecord(analysis.Profile, *prior) {
			// Nothing changed since last install; reuse without prompting.
			configured.OverrideModule = prior.OverrideModule
			return configured, nil
		}
		// The binary changed since the record was written. Show what moved
		// and re-confirm the override choice.
		_, _ = fmt.Fprintln(p.warn, recordDiff(*prior, analysis.Profile))
	}

	if p.prompter == nil {
		return configured, nil
	}

	override, err := p.prompter.SelectOverride(analysis.Profile.OverrideModule, OverrideOptions())
	if err != nil {
		return nil, err
	}
	if override != "" {
		configured.OverrideModule = override
	}
	if prior == nil {
		mergeShaders, err := p.prompter.ConfirmShaders(configured.MergeShaders)
		if err != nil {
			return nil, err
		}
		configured.MergeShaders = mergeShaders
	}
	return configured, nil
}

func profileMatchesRecord(profile peinfo.Profile, record gamedb.Record) bool {
	return record.Architecture == string(profile.Architecture) &&
		record.GraphicsAPI == string(profile.API)
}

package planner

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/glaze-tools/glaze/internal/gamedb"
	"github.com/glaze-tools/glaze/internal/peinfo"
)

// recordDiff renders a unified diff between what the store recorded and what
// analysis just detected, so users can see why they are being re-asked.
func recordDiff(prior gamedb.Record, profile peinfo.Profile) string {
	recorded := profileText(prior.Architecture, prior.GraphicsAPI, prior.OverrideModule)
	detected := profileText(string(profile.Architecture), string(profile.API), profile.OverrideModule)
	return strings.TrimRight(udiff.Unified("recorded", "detected", recorded, detected), "\n")
}

func profileText(arch string, api string, override string) string {
	return fmt.Sprintf("architecture: %s\ngraphics_api: %s\noverride_module: %s\n", arch, api, override)
}

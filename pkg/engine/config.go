package engine

import (
	"github.com/go-drift/frameui/pkg/config"
	"github.com/go-drift/frameui/pkg/layout"
)

// OptionsFromConfig maps a resolved frameui.yaml onto engine options. Host
// specific fields (backend, watchers, host callback) are left for the caller.
func OptionsFromConfig(r *config.Resolved) Options {
	var opts Options
	if r == nil {
		return opts
	}
	opts.TieBreak, _ = ParseTieBreak(r.TieBreak)
	opts.DefaultConstraints = layout.Defaults(r.DefaultFlow, r.Gap)
	if opts.DefaultConstraints == nil {
		opts.DefaultConstraints = []layout.Constraint{}
	}
	opts.TraceCapacity = r.TraceCapacity
	opts.TraceThreshold = r.TraceThreshold
	return opts
}

// Package internal holds the per-package pass shared by the link and unlink
// commands.
package internal

import (
	"github.com/arthur-debert/linkfarm/pkg/executor"
	"github.com/arthur-debert/linkfarm/pkg/logging"
	"github.com/arthur-debert/linkfarm/pkg/planner"
	"github.com/arthur-debert/linkfarm/pkg/store"
	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/arthur-debert/linkfarm/pkg/zombies"
)

// Context is what a single package pass runs against
type Context struct {
	FS    types.FS
	Store *store.Store

	// Target is the expanded target root
	Target   string
	Dotfiles bool
	Adopt    bool
	DryRun   bool

	// Removed holds the targets this pass removed, or would have removed on
	// a dry run. RunPass fills it; classifiers read it.
	Removed map[string]bool
}

// Classifier decides the action for one planned link
type Classifier func(ctx Context, link types.Link) types.Decision

// RunPass collects zombies, plans the package in the given order and then
// classifies and executes each link. Zombie and planning failures end the
// pass with result.Err set; link failures are recorded per link and the
// remaining links still run.
func RunPass(ctx Context, pkg string, command types.Command, order planner.Order, classify Classifier) types.PackageResult {
	logger := logging.GetLogger("commands.pipeline").With().
		Str("package", pkg).
		Str("command", string(command)).
		Logger()
	done := logging.LogOperationStart(logger, string(command))
	defer done()

	result := types.PackageResult{
		Package: pkg,
		Target:  ctx.Target,
		Command: command,
	}

	report, err := zombies.New(ctx.FS, ctx.Store, ctx.DryRun).Collect(pkg, ctx.Target)
	if err != nil {
		logger.Error().Err(err).Msg("Zombie collection failed")
		result.Err = err
		return result
	}
	result.Zombies = report

	ctx.Removed = make(map[string]bool)
	for _, target := range append(append([]string{}, report.Links...), report.Dirs...) {
		ctx.Removed[target] = true
	}

	links, err := planner.Plan(ctx.FS, pkg, ctx.Target, ctx.Dotfiles, order)
	if err != nil {
		logger.Error().Err(err).Msg("Planning failed")
		result.Err = err
		return result
	}

	exec := executor.New(ctx.FS, ctx.Store, ctx.DryRun)
	result.Links = make([]types.LinkResult, 0, len(links))
	for _, link := range links {
		lr := exec.Execute(classify(ctx, link))
		switch lr.Decision.Kind {
		case types.ActionRemoveLink, types.ActionRemoveDir:
			if lr.Applied && lr.Err == nil {
				ctx.Removed[link.Target] = true
			}
		}
		result.Links = append(result.Links, lr)
	}

	logger.Debug().
		Int("links", len(result.Links)).
		Bool("failed", result.Failed()).
		Msg("Package processed")
	return result
}

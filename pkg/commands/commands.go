// Package commands provides high-level command implementations for linkfarm.
//
// This package is the orchestration layer between the CLI and the engine.
// It owns the run lifecycle: load the store once, process every package in
// order against it, and save it once at the end of a non-dry run.
//
// Each command is implemented in its own subdirectory:
//   - link/     - LinkPackage
//   - unlink/   - UnlinkPackage
//   - status/   - Status
//   - internal/ - the per-package pass shared by link and unlink
package commands

import (
	"github.com/arthur-debert/linkfarm/pkg/commands/internal"
	"github.com/arthur-debert/linkfarm/pkg/commands/link"
	"github.com/arthur-debert/linkfarm/pkg/commands/status"
	"github.com/arthur-debert/linkfarm/pkg/commands/unlink"
	"github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/arthur-debert/linkfarm/pkg/filesystem"
	"github.com/arthur-debert/linkfarm/pkg/logging"
	"github.com/arthur-debert/linkfarm/pkg/paths"
	"github.com/arthur-debert/linkfarm/pkg/store"
	"github.com/arthur-debert/linkfarm/pkg/types"
)

// Run executes opts.Command over every package. Store load and save
// failures are returned as errors and end the run; everything else is
// reported per package in the result.
func Run(opts types.Options) (*types.RunResult, error) {
	logger := logging.GetLogger("commands")
	logger.Debug().
		Str("command", string(opts.Command)).
		Strs("packages", opts.Packages).
		Str("target", opts.Target).
		Bool("dryRun", opts.DryRun).
		Msg("Executing command")

	st, err := store.Load(opts.StorePath)
	if err != nil {
		return nil, err
	}

	result := &types.RunResult{
		Command:  opts.Command,
		DryRun:   opts.DryRun,
		Packages: ProcessPackages(opts, filesystem.NewOS(), st),
	}

	if opts.DryRun {
		logger.Debug().Msg("Dry run, store not saved")
	} else if err := st.Save(); err != nil {
		return result, err
	}

	logger.Info().
		Str("command", string(opts.Command)).
		Int("packages", len(result.Packages)).
		Int("failed", result.FailedCount()).
		Msg("Command finished")
	return result, nil
}

// ProcessPackages runs opts.Command over each package strictly in order,
// sharing st. A failing package never stops the ones after it.
func ProcessPackages(opts types.Options, fs types.FS, st *store.Store) []types.PackageResult {
	results := make([]types.PackageResult, 0, len(opts.Packages))

	for _, pkg := range opts.Packages {
		logger := logging.GetLogger("commands")
		logger.Info().Str("package", pkg).Msg("Processing package")

		target, err := paths.Expand(opts.Target)
		if err != nil {
			results = append(results, types.PackageResult{
				Package: pkg,
				Target:  opts.Target,
				Command: opts.Command,
				Err:     err,
			})
			continue
		}

		ctx := internal.Context{
			FS:       fs,
			Store:    st,
			Target:   target,
			Dotfiles: opts.Dotfiles,
			Adopt:    opts.Adopt,
			DryRun:   opts.DryRun,
		}

		switch opts.Command {
		case types.CommandLink:
			results = append(results, link.LinkPackage(ctx, pkg))
		case types.CommandUnlink:
			results = append(results, unlink.UnlinkPackage(ctx, pkg))
		case types.CommandRelink:
			results = append(results, relink(ctx, pkg))
		default:
			results = append(results, types.PackageResult{
				Package: pkg,
				Target:  target,
				Command: opts.Command,
				Err:     errors.Newf(errors.ErrInvalidInput, "unknown command %q", opts.Command),
			})
		}
	}
	return results
}

// relink unlinks then links pkg and merges both passes into one result
func relink(ctx internal.Context, pkg string) types.PackageResult {
	removed := unlink.UnlinkPackage(ctx, pkg)
	installed := link.LinkPackage(ctx, pkg)

	merged := types.PackageResult{
		Package: pkg,
		Target:  ctx.Target,
		Command: types.CommandRelink,
		Zombies: mergeZombies(removed.Zombies, installed.Zombies),
		Links:   append(removed.Links, installed.Links...),
		Err:     removed.Err,
	}
	if merged.Err == nil {
		merged.Err = installed.Err
	}
	return merged
}

func mergeZombies(a, b *types.ZombieReport) *types.ZombieReport {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return &types.ZombieReport{
		Links:     append(append([]string{}, a.Links...), b.Links...),
		Dirs:      append(append([]string{}, a.Dirs...), b.Dirs...),
		Forgotten: append(append([]string{}, a.Forgotten...), b.Forgotten...),
	}
}

// StatusOptions defines the options for the Status command
type StatusOptions = status.StatusOptions

// Status reports the live state of the store's entries
func Status(opts StatusOptions) ([]types.StatusEntry, error) {
	return status.Status(filesystem.NewOS(), opts)
}

// Package executor carries out the decisions made by the reconciler: it
// creates and removes links and directories, performs adoption, and keeps
// the store in step with what it changed. In dry-run mode it touches neither
// the filesystem nor the store and only reports what would happen.
package executor

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/arthur-debert/linkfarm/pkg/logging"
	"github.com/arthur-debert/linkfarm/pkg/store"
	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/rs/zerolog"
)

// adoptSuffix names the temporary file adoption writes next to the source
const adoptSuffix = ".linkfarm-adopt"

// Executor applies decisions to a filesystem and a store
type Executor struct {
	fs     types.FS
	store  *store.Store
	dryRun bool
	logger zerolog.Logger
}

// New creates an Executor
func New(fs types.FS, st *store.Store, dryRun bool) *Executor {
	return &Executor{
		fs:     fs,
		store:  st,
		dryRun: dryRun,
		logger: logging.GetLogger("executor"),
	}
}

// Execute performs the side effects for one decision and reports the outcome
func (e *Executor) Execute(d types.Decision) types.LinkResult {
	result := types.LinkResult{Decision: d, DryRun: e.dryRun}
	logger := e.logger.With().
		Str("action", string(d.Kind)).
		Str("target", d.Link.Target).
		Str("source", d.Link.Source).
		Bool("dryRun", e.dryRun).
		Logger()

	var err error
	switch d.Kind {
	case types.ActionCreateDir:
		err = e.createDir(d.Link)
	case types.ActionRecordDir:
		e.record(d.Link)
	case types.ActionCreateLink:
		err = e.createLink(d.Link)
	case types.ActionAlreadyCorrect:
		err = e.alreadyCorrect(d)
	case types.ActionAdopt:
		err = e.adopt(d)
	case types.ActionConflict:
		err = errors.Newf(errors.ErrConflict, "conflict at %s: %s", d.Link.Target, d.Reason).
			WithDetail("target", d.Link.Target)
	case types.ActionRemoveDir, types.ActionRemoveLink:
		err = e.remove(d.Link)
	case types.ActionForget:
		e.retire(d.Link)
	case types.ActionSkip:
		logger.Debug().Str("reason", d.Reason).Msg("Skipping")
		return result
	case types.ActionError:
		err = d.Err
		if err == nil {
			err = errors.New(errors.ErrFSInspect, d.Reason)
		}
	default:
		err = errors.Newf(errors.ErrInternal, "unknown action %q", d.Kind)
	}

	if err != nil {
		result.Err = err
		if d.Kind == types.ActionConflict {
			logger.Warn().Str("reason", d.Reason).Msg("Target occupied, leaving it untouched")
		} else {
			logger.Error().Err(err).Msg("Action failed")
		}
		return result
	}

	result.Applied = applied(d)
	if result.Applied {
		logger.Info().Msg("Applied")
	} else {
		logger.Debug().Msg("Up to date")
	}
	return result
}

// applied reports whether a successful decision changed (or on a dry run
// would change) anything
func applied(d types.Decision) bool {
	switch d.Kind {
	case types.ActionAdopt:
		return !d.SameFile
	case types.ActionAlreadyCorrect:
		return d.Relative
	case types.ActionForget:
		return true
	default:
		return d.Kind.Mutates()
	}
}

func (e *Executor) createDir(link types.Link) error {
	if !e.dryRun {
		if err := e.fs.MkdirAll(link.Target, 0755); err != nil {
			return mutationError(err, "failed to create directory", link)
		}
	}
	e.record(link)
	return nil
}

func (e *Executor) createLink(link types.Link) error {
	if !e.dryRun {
		if err := e.fs.Symlink(link.Source, link.Target); err != nil {
			return mutationError(err, "failed to create link", link)
		}
	}
	e.record(link)
	return nil
}

// alreadyCorrect records the link, rewriting a relative link as absolute
func (e *Executor) alreadyCorrect(d types.Decision) error {
	if d.Relative && !e.dryRun {
		if err := e.fs.Remove(d.Link.Target); err != nil {
			return mutationError(err, "failed to remove relative link", d.Link)
		}
		if err := e.fs.Symlink(d.Link.Source, d.Link.Target); err != nil {
			return mutationError(err, "failed to recreate link", d.Link)
		}
	}
	e.record(d.Link)
	return nil
}

// adopt copies the content the target resolves to into the source and then
// swaps the target for a link. The target is only removed once the copy is in
// place. When the target already resolves to the source the copy would
// truncate it, so nothing is touched and nothing is recorded.
func (e *Executor) adopt(d types.Decision) error {
	if d.SameFile {
		e.logger.Info().
			Str("target", d.Link.Target).
			Msg("Target already resolves to the source through a link chain, leaving it alone")
		return nil
	}
	if e.dryRun {
		return nil
	}

	if err := e.copyInto(d.Canonical, d.Link.Source); err != nil {
		return errors.Wrapf(err, errors.ErrAdopt, "failed to adopt %s", d.Link.Target).
			WithDetail("target", d.Link.Target).
			WithDetail("source", d.Link.Source)
	}
	if err := e.fs.Remove(d.Link.Target); err != nil {
		return mutationError(err, "failed to remove adopted target", d.Link)
	}
	if err := e.fs.Symlink(d.Link.Source, d.Link.Target); err != nil {
		return mutationError(err, "failed to link adopted target", d.Link)
	}
	e.record(d.Link)
	return nil
}

// copyInto replaces dst's content with src's through a temporary file in
// dst's directory, keeping dst's mode.
func (e *Executor) copyInto(src, dst string) error {
	data, err := e.fs.ReadFile(src)
	if err != nil {
		return err
	}
	mode := os.FileMode(0644)
	if info, err := e.fs.Stat(dst); err == nil {
		mode = info.Mode().Perm()
	}

	tmp := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+adoptSuffix)
	if err := e.fs.WriteFile(tmp, data, mode); err != nil {
		_ = e.fs.Remove(tmp)
		return err
	}
	if err := e.fs.Rename(tmp, dst); err != nil {
		_ = e.fs.Remove(tmp)
		return err
	}
	return nil
}

func (e *Executor) remove(link types.Link) error {
	if !e.dryRun {
		if err := e.fs.Remove(link.Target); err != nil {
			return mutationError(err, "failed to remove", link)
		}
	}
	e.retire(link)
	return nil
}

func (e *Executor) record(link types.Link) {
	if !e.dryRun {
		e.store.Insert(link.Target, link.Source)
	}
}

// retire drops the entry for link, but only if it records this exact pair
func (e *Executor) retire(link types.Link) {
	if e.dryRun {
		return
	}
	if source, ok := e.store.Get(link.Target); ok && source == link.Source {
		e.store.Retire(link.Target)
	}
}

func mutationError(err error, msg string, link types.Link) error {
	return errors.Wrap(err, errors.ErrFSMutation, msg).
		WithDetail("target", link.Target).
		WithDetail("source", link.Source)
}

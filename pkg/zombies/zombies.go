// Package zombies finds and removes links left behind after files were
// deleted from a package, along with the managed directories that become
// empty as a result.
//
// Detection is driven by the store rather than by walking the target tree:
// only entries the store attributes to the package are ever considered, so
// unrelated files and directories in the target root are never touched.
package zombies

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/arthur-debert/linkfarm/pkg/logging"
	"github.com/arthur-debert/linkfarm/pkg/paths"
	"github.com/arthur-debert/linkfarm/pkg/reconciler"
	"github.com/arthur-debert/linkfarm/pkg/store"
	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/rs/zerolog"
)

// Collector retires zombie store entries for one package at a time
type Collector struct {
	fs     types.FS
	store  *store.Store
	dryRun bool
	logger zerolog.Logger
}

// New creates a Collector
func New(fs types.FS, st *store.Store, dryRun bool) *Collector {
	return &Collector{
		fs:     fs,
		store:  st,
		dryRun: dryRun,
		logger: logging.GetLogger("zombies"),
	}
}

// pass holds the state of a single Collect call
type pass struct {
	targetRoot string
	report     *types.ZombieReport

	// removed holds paths removed, or on a dry run marked would-be-removed
	removed map[string]bool
	pending map[string]bool
	seen    map[string]bool
}

// Collect retires the zombies of pkg under targetRoot. An entry is a zombie
// when its target is gone, when its target is a link that no longer
// resolves, or when its package source is gone. Zombie links are removed,
// then managed directories that end up empty are removed from the deepest
// up, never above the target root. On a dry run nothing is removed and the
// store is not touched; the report lists what would have been removed.
func (c *Collector) Collect(pkg, targetRoot string) (*types.ZombieReport, error) {
	targetAbs, err := filepath.Abs(targetRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve target root").
			WithDetail("target", targetRoot)
	}
	pkgRoot := paths.CanonicalOrClean(pkg)

	logger := c.logger.With().
		Str("package", pkgRoot).
		Str("target", targetAbs).
		Bool("dryRun", c.dryRun).
		Logger()

	p := &pass{
		targetRoot: targetAbs,
		report:     &types.ZombieReport{},
		removed:    make(map[string]bool),
		pending:    make(map[string]bool),
		seen:       make(map[string]bool),
	}

	entries := c.store.Under(targetAbs, pkgRoot)
	logger.Debug().Int("entries", len(entries)).Msg("Checking store entries for zombies")

	for _, entry := range entries {
		c.checkEntry(p, entry, logger)
	}
	c.sweepDirs(p, logger)

	if total := p.report.Total(); total > 0 {
		logger.Info().
			Int("links", len(p.report.Links)).
			Int("dirs", len(p.report.Dirs)).
			Int("forgotten", len(p.report.Forgotten)).
			Msg("Zombies collected")
	}
	return p.report, nil
}

func (c *Collector) checkEntry(p *pass, entry types.Link, logger zerolog.Logger) {
	info, err := c.fs.Lstat(entry.Target)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("target", entry.Target).Msg("Target vanished, forgetting it")
			c.retire(entry.Target)
			p.report.Forgotten = append(p.report.Forgotten, entry.Target)
			p.removed[entry.Target] = true
			p.enqueue(filepath.Dir(entry.Target))
			return
		}
		logger.Warn().Err(err).Str("target", entry.Target).Msg("Cannot inspect target, leaving it")
		return
	}

	sourceGone := false
	if _, err := c.fs.Lstat(entry.Source); err != nil && os.IsNotExist(err) {
		sourceGone = true
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		_, statErr := c.fs.Stat(entry.Target)
		if statErr == nil && !sourceGone {
			return
		}
		if statErr == nil && !c.pointsAt(entry) {
			// A live link to something else is not ours any more.
			logger.Debug().Str("target", entry.Target).Msg("Target relinked elsewhere and source gone, forgetting it")
			c.retire(entry.Target)
			p.report.Forgotten = append(p.report.Forgotten, entry.Target)
			return
		}
		if !c.dryRun {
			if err := c.fs.Remove(entry.Target); err != nil {
				logger.Warn().Err(err).Str("target", entry.Target).Msg("Failed to remove zombie link")
				return
			}
		}
		logger.Info().Str("target", entry.Target).Msg("Removed zombie link")
		c.retire(entry.Target)
		p.report.Links = append(p.report.Links, entry.Target)
		p.removed[entry.Target] = true
		p.enqueue(filepath.Dir(entry.Target))

	case info.IsDir():
		if sourceGone {
			p.enqueue(entry.Target)
		}

	default:
		// Something else took the link's place; forget it, keep the file.
		if sourceGone {
			logger.Debug().Str("target", entry.Target).Msg("Target replaced and source gone, forgetting it")
			c.retire(entry.Target)
			p.report.Forgotten = append(p.report.Forgotten, entry.Target)
		}
	}
}

// sweepDirs processes queued directories deepest first so a directory is
// only examined after everything queued beneath it.
func (c *Collector) sweepDirs(p *pass, logger zerolog.Logger) {
	for {
		dir, ok := p.next()
		if !ok {
			return
		}
		if dir == p.targetRoot || !paths.IsWithin(dir, p.targetRoot) || !c.store.Has(dir) {
			continue
		}

		entries, err := c.fs.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				c.retire(dir)
				p.report.Forgotten = append(p.report.Forgotten, dir)
				p.removed[dir] = true
				p.enqueue(filepath.Dir(dir))
				continue
			}
			logger.Warn().Err(err).Str("dir", dir).Msg("Cannot read managed directory")
			continue
		}
		if !p.emptyAfterRemoval(dir, entries, c.dryRun) {
			continue
		}

		if !c.dryRun {
			if err := c.fs.Remove(dir); err != nil {
				logger.Warn().Err(err).Str("dir", dir).Msg("Failed to remove empty managed directory")
				continue
			}
		}
		logger.Info().Str("dir", dir).Msg("Removed empty managed directory")
		c.retire(dir)
		p.report.Dirs = append(p.report.Dirs, dir)
		p.removed[dir] = true
		p.enqueue(filepath.Dir(dir))
	}
}

// pointsAt reports whether the link at entry.Target still points at
// entry.Source
func (c *Collector) pointsAt(entry types.Link) bool {
	raw, err := c.fs.Readlink(entry.Target)
	if err != nil {
		return false
	}
	return reconciler.LinkDestination(c.fs, entry.Target, raw) == entry.Source
}

func (c *Collector) retire(target string) {
	if !c.dryRun {
		c.store.Retire(target)
	}
}

func (p *pass) enqueue(dir string) {
	if !p.seen[dir] {
		p.pending[dir] = true
	}
}

// next pops the deepest pending directory, ties broken lexically
func (p *pass) next() (string, bool) {
	if len(p.pending) == 0 {
		return "", false
	}
	dirs := make([]string, 0, len(p.pending))
	for dir := range p.pending {
		dirs = append(dirs, dir)
	}
	sort.Slice(dirs, func(i, j int) bool {
		di, dj := depth(dirs[i]), depth(dirs[j])
		if di != dj {
			return di > dj
		}
		return dirs[i] < dirs[j]
	})
	dir := dirs[0]
	delete(p.pending, dir)
	p.seen[dir] = true
	return dir, true
}

// emptyAfterRemoval reports whether dir is empty on disk, or on a dry run
// whether everything in it has been marked would-be-removed
func (p *pass) emptyAfterRemoval(dir string, entries []os.DirEntry, dryRun bool) bool {
	if len(entries) == 0 {
		return true
	}
	if !dryRun {
		return false
	}
	for _, e := range entries {
		if !p.removed[filepath.Join(dir, e.Name())] {
			return false
		}
	}
	return true
}

func depth(path string) int {
	return strings.Count(filepath.Clean(path), string(filepath.Separator))
}

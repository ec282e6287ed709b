// Package planner turns a package directory into the ordered list of links
// that mirror it into a target root.
package planner

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/arthur-debert/linkfarm/pkg/logging"
	"github.com/arthur-debert/linkfarm/pkg/paths"
	"github.com/arthur-debert/linkfarm/pkg/types"
)

// Order selects whether directories come before or after their contents
type Order int

const (
	// DirsFirst yields a directory before anything inside it (installation)
	DirsFirst Order = iota

	// ContentsFirst yields a directory after everything inside it (removal)
	ContentsFirst
)

func (o Order) String() string {
	if o == ContentsFirst {
		return "contents-first"
	}
	return "dirs-first"
}

// Plan walks pkg depth first and returns one link per entry, excluding the
// package root itself. Sources are canonical absolute paths; targets are the
// entry's path relative to the package joined onto the absolute target root,
// with dot- segments mapped to "." when mapDotfiles is set. Siblings are
// visited in lexical order.
//
// Either every link is produced or none: any walk or resolution failure
// returns an ErrPlan error.
func Plan(fs types.FS, pkg, targetRoot string, mapDotfiles bool, order Order) ([]types.Link, error) {
	logger := logging.GetLogger("planner").With().
		Str("package", pkg).
		Str("order", order.String()).
		Logger()

	if strings.TrimSpace(pkg) == "" {
		return nil, errors.New(errors.ErrPlan, "package path is empty")
	}

	pkgAbs, err := filepath.Abs(pkg)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlan, "failed to resolve package path").
			WithDetail("package", pkg)
	}
	root, err := fs.EvalSymlinks(pkgAbs)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlan, "failed to resolve package %s", pkg).
			WithDetail("package", pkg)
	}
	info, err := fs.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlan, "failed to stat package %s", pkg).
			WithDetail("package", pkg)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrPlan, "package %s is not a directory", pkg).
			WithDetail("package", pkg)
	}

	targetAbs, err := filepath.Abs(targetRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlan, "failed to resolve target root").
			WithDetail("target", targetRoot)
	}

	w := &walker{
		fs:          fs,
		targetRoot:  targetAbs,
		mapDotfiles: mapDotfiles,
		order:       order,
	}
	if err := w.walk(root, ""); err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlan, "failed to plan package %s", pkg).
			WithDetail("package", pkg)
	}

	logger.Debug().Int("links", len(w.links)).Msg("Package planned")
	return w.links, nil
}

type walker struct {
	fs          types.FS
	targetRoot  string
	mapDotfiles bool
	order       Order
	links       []types.Link
}

// walk visits the entries of dir, whose path relative to the package root is
// rel. Symlinks inside the package are not followed into; they are linked
// through their canonical destination.
func (w *walker) walk(dir, rel string) error {
	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		entryPath := filepath.Join(dir, name)
		if !utf8.ValidString(name) {
			return errors.Newf(errors.ErrPlan, "non-representable path %q", entryPath)
		}

		entryRel := filepath.Join(rel, name)
		source, err := w.fs.EvalSymlinks(entryPath)
		if err != nil {
			return err
		}
		link := types.Link{Source: source, Target: w.target(entryRel)}

		descend := entry.IsDir()
		if w.order == DirsFirst || !descend {
			w.links = append(w.links, link)
		}
		if descend {
			if err := w.walk(entryPath, entryRel); err != nil {
				return err
			}
			if w.order == ContentsFirst {
				w.links = append(w.links, link)
			}
		}
	}
	return nil
}

func (w *walker) target(rel string) string {
	if w.mapDotfiles {
		rel = paths.MapDotfiles(rel)
	}
	return filepath.Join(w.targetRoot, rel)
}

// Package reconciler compares a planned link with the filesystem and the
// store and decides, once, what should happen to it. It never mutates
// anything; the executor carries the decision out.
package reconciler

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/arthur-debert/linkfarm/pkg/logging"
	"github.com/arthur-debert/linkfarm/pkg/store"
	"github.com/arthur-debert/linkfarm/pkg/types"
)

// ClassifyLink decides the installation action for link.
//
// Directory sources become CreateDir or RecordDir. File sources are checked
// in order: a free target is CreateLink, a symlink that already points at
// the source is AlreadyCorrect, an occupied target is Adopt when adopt is
// set and Conflict otherwise. Broken links that are not ours count as
// occupied.
func ClassifyLink(fs types.FS, st *store.Store, link types.Link, adopt bool) types.Decision {
	logger := logging.GetLogger("reconciler").With().
		Str("target", link.Target).
		Str("source", link.Source).
		Logger()

	srcInfo, err := fs.Stat(link.Source)
	if err != nil {
		return inspectError(link, err, "failed to stat source")
	}

	var d types.Decision
	if srcInfo.IsDir() {
		d = classifyDir(fs, link)
	} else {
		d = classifyFile(fs, st, link, adopt)
	}

	logger.Trace().Str("action", string(d.Kind)).Str("reason", d.Reason).Msg("Classified link")
	return d
}

func classifyDir(fs types.FS, link types.Link) types.Decision {
	if info, err := fs.Stat(link.Target); err == nil {
		if info.IsDir() {
			return types.Decision{Kind: types.ActionRecordDir, Link: link}
		}
		return conflict(link, "target exists and is not a directory")
	}

	if _, err := fs.Lstat(link.Target); err != nil {
		if os.IsNotExist(err) {
			return types.Decision{Kind: types.ActionCreateDir, Link: link}
		}
		return inspectError(link, err, "failed to inspect target")
	}

	// Lstat succeeded but Stat did not: a broken link sits where the
	// directory belongs.
	return conflict(link, "target is a broken link")
}

func classifyFile(fs types.FS, st *store.Store, link types.Link, adopt bool) types.Decision {
	info, err := fs.Lstat(link.Target)
	if err != nil {
		if os.IsNotExist(err) {
			return types.Decision{Kind: types.ActionCreateLink, Link: link}
		}
		return inspectError(link, err, "failed to inspect target")
	}

	isLink := info.Mode()&os.ModeSymlink != 0
	if isLink {
		raw, err := fs.Readlink(link.Target)
		if err != nil {
			return inspectError(link, err, "failed to read target link")
		}
		if LinkDestination(fs, link.Target, raw) == link.Source {
			return types.Decision{
				Kind:     types.ActionAlreadyCorrect,
				Link:     link,
				Relative: !filepath.IsAbs(raw),
			}
		}
	}

	if adopt {
		canonical, err := fs.EvalSymlinks(link.Target)
		if err != nil {
			return conflict(link, "target is a broken link and cannot be adopted")
		}
		cInfo, err := fs.Stat(canonical)
		if err != nil {
			return inspectError(link, err, "failed to stat adoption candidate")
		}
		if cInfo.IsDir() {
			return conflict(link, "target is a directory and cannot be adopted")
		}
		return types.Decision{
			Kind:      types.ActionAdopt,
			Link:      link,
			Canonical: canonical,
			SameFile:  canonical == link.Source,
		}
	}

	if owner, ok := st.Get(link.Target); ok && owner != link.Source {
		return conflict(link, "target is managed by another package ("+owner+")")
	}
	switch {
	case isLink:
		return conflict(link, "target is a link to somewhere else")
	case info.IsDir():
		return conflict(link, "target is an existing directory")
	default:
		return conflict(link, "target is an existing file")
	}
}

// ClassifyUnlink decides the removal action for link. Only empty
// directories and links pointing at the source are removed; everything else
// is skipped. An absent target whose exact pair is still recorded is
// forgotten.
func ClassifyUnlink(fs types.FS, st *store.Store, link types.Link) types.Decision {
	return ClassifyUnlinkPending(fs, st, link, nil)
}

// ClassifyUnlinkPending is ClassifyUnlink for a pass that has already
// removed the targets in removed, or would have on a dry run. A directory
// holding only such targets counts as empty.
func ClassifyUnlinkPending(fs types.FS, st *store.Store, link types.Link, removed map[string]bool) types.Decision {
	info, err := fs.Lstat(link.Target)
	if err != nil {
		if os.IsNotExist(err) {
			if source, ok := st.Get(link.Target); ok && source == link.Source {
				return types.Decision{Kind: types.ActionForget, Link: link}
			}
			return skip(link, "target does not exist")
		}
		return inspectError(link, err, "failed to inspect target")
	}

	if info.IsDir() {
		entries, err := fs.ReadDir(link.Target)
		if err != nil {
			return inspectError(link, err, "failed to read target directory")
		}
		remaining := 0
		for _, entry := range entries {
			if !removed[filepath.Join(link.Target, entry.Name())] {
				remaining++
			}
		}
		if remaining == 0 {
			return types.Decision{Kind: types.ActionRemoveDir, Link: link}
		}
		return skip(link, "directory is not empty")
	}

	if info.Mode()&os.ModeSymlink != 0 {
		raw, err := fs.Readlink(link.Target)
		if err != nil {
			return inspectError(link, err, "failed to read target link")
		}
		if LinkDestination(fs, link.Target, raw) == link.Source {
			return types.Decision{Kind: types.ActionRemoveLink, Link: link}
		}
		return skip(link, "link points somewhere else")
	}

	return skip(link, "target is not a link")
}

// LinkDestination returns where the link at path with raw value raw points,
// one hop only. Relative values are resolved against the link's parent. The
// directory part is canonicalized so the result compares against canonical
// sources; the final component is left alone so chains are not followed.
func LinkDestination(fs types.FS, path, raw string) string {
	dest := raw
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(path), dest)
	}
	dest = filepath.Clean(dest)

	dir, base := filepath.Split(dest)
	if resolved, err := fs.EvalSymlinks(dir); err == nil {
		return filepath.Join(resolved, base)
	}
	return dest
}

func conflict(link types.Link, reason string) types.Decision {
	return types.Decision{Kind: types.ActionConflict, Link: link, Reason: reason}
}

func skip(link types.Link, reason string) types.Decision {
	return types.Decision{Kind: types.ActionSkip, Link: link, Reason: reason}
}

func inspectError(link types.Link, err error, msg string) types.Decision {
	return types.Decision{
		Kind:   types.ActionError,
		Link:   link,
		Reason: msg,
		Err: errors.Wrap(err, errors.ErrFSInspect, msg).
			WithDetail("target", link.Target),
	}
}

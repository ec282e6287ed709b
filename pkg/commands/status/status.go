package status

import (
	"os"

	"github.com/arthur-debert/linkfarm/pkg/logging"
	"github.com/arthur-debert/linkfarm/pkg/paths"
	"github.com/arthur-debert/linkfarm/pkg/reconciler"
	"github.com/arthur-debert/linkfarm/pkg/store"
	"github.com/arthur-debert/linkfarm/pkg/types"
)

// StatusOptions defines the options for the Status command
type StatusOptions struct {
	// StorePath is the store to report on
	StorePath string

	// Packages restricts the report to entries whose source lies in one of
	// these packages. Empty means every entry.
	Packages []string
}

// Status loads the store and reports the live state of its entries. It
// never writes the store.
func Status(fs types.FS, opts StatusOptions) ([]types.StatusEntry, error) {
	logger := logging.GetLogger("commands.status")
	logger.Debug().Str("store", opts.StorePath).Strs("packages", opts.Packages).Msg("Executing command")

	st, err := store.Load(opts.StorePath)
	if err != nil {
		return nil, err
	}
	return Inspect(fs, st, opts.Packages), nil
}

// Inspect reports the state of every store entry belonging to packages, in
// target order
func Inspect(fs types.FS, st *store.Store, packages []string) []types.StatusEntry {
	roots := make([]string, 0, len(packages))
	for _, pkg := range packages {
		roots = append(roots, paths.CanonicalOrClean(pkg))
	}

	var entries []types.StatusEntry
	for _, link := range st.Entries() {
		if !belongs(link.Source, roots) {
			continue
		}
		entries = append(entries, types.StatusEntry{
			Target: link.Target,
			Source: link.Source,
			State:  stateOf(fs, link),
		})
	}
	return entries
}

func belongs(source string, roots []string) bool {
	if len(roots) == 0 {
		return true
	}
	for _, root := range roots {
		if paths.IsWithin(source, root) {
			return true
		}
	}
	return false
}

func stateOf(fs types.FS, link types.Link) types.StatusState {
	info, err := fs.Lstat(link.Target)
	if err != nil {
		return types.StatusMissing
	}

	if info.Mode()&os.ModeSymlink != 0 {
		raw, err := fs.Readlink(link.Target)
		if err != nil || reconciler.LinkDestination(fs, link.Target, raw) != link.Source {
			return types.StatusReplaced
		}
		if _, err := fs.Stat(link.Target); err != nil {
			return types.StatusBroken
		}
		return types.StatusLinked
	}

	if info.IsDir() {
		return types.StatusDir
	}
	return types.StatusReplaced
}

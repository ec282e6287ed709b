package unlink

import (
	"github.com/arthur-debert/linkfarm/pkg/commands/internal"
	"github.com/arthur-debert/linkfarm/pkg/planner"
	"github.com/arthur-debert/linkfarm/pkg/reconciler"
	"github.com/arthur-debert/linkfarm/pkg/types"
)

// UnlinkPackage removes one package: contents are handled before their
// directory so directories can be removed once emptied. Only links that
// point into the package and empty directories are removed.
func UnlinkPackage(ctx internal.Context, pkg string) types.PackageResult {
	return internal.RunPass(ctx, pkg, types.CommandUnlink, planner.ContentsFirst, classify)
}

func classify(ctx internal.Context, link types.Link) types.Decision {
	return reconciler.ClassifyUnlinkPending(ctx.FS, ctx.Store, link, ctx.Removed)
}

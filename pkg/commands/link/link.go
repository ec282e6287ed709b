package link

import (
	"github.com/arthur-debert/linkfarm/pkg/commands/internal"
	"github.com/arthur-debert/linkfarm/pkg/planner"
	"github.com/arthur-debert/linkfarm/pkg/reconciler"
	"github.com/arthur-debert/linkfarm/pkg/types"
)

// LinkPackage installs one package: directories are created before their
// contents, existing correct links are kept, occupied targets are adopted
// or reported as conflicts.
func LinkPackage(ctx internal.Context, pkg string) types.PackageResult {
	return internal.RunPass(ctx, pkg, types.CommandLink, planner.DirsFirst, classify)
}

func classify(ctx internal.Context, link types.Link) types.Decision {
	return reconciler.ClassifyLink(ctx.FS, ctx.Store, link, ctx.Adopt)
}

package linkfarm

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/linkfarm/pkg/testutil"
	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd := NewRootCmd()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLinkCmd(t *testing.T) {
	env := testutil.NewEnvironment(t)
	pkg := env.Package("vim", testutil.FileTree{"dot-vimrc": "set nu"})

	out, err := execute(t, "--target", env.Target, "--dotfiles", "link", pkg)
	require.NoError(t, err)
	assert.Contains(t, out, "1 created")

	testutil.AssertSymlink(t, env.TargetPath(".vimrc"), filepath.Join(pkg, "dot-vimrc"))
	assert.Equal(t, 1, env.LoadStore().Len())

	out, err = execute(t, "-t", env.Target, "--dotfiles", "unlink", pkg)
	require.NoError(t, err)
	assert.Contains(t, out, "1 removed")
	testutil.AssertNotExists(t, env.TargetPath(".vimrc"))
}

func TestLinkCmd_DryRun(t *testing.T) {
	env := testutil.NewEnvironment(t)
	pkg := env.Package("vim", testutil.FileTree{"vimrc": "set nu"})

	out, err := execute(t, "-n", "-t", env.Target, "link", pkg)
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")
	testutil.AssertNotExists(t, env.TargetPath("vimrc"))
	testutil.AssertNotExists(t, env.StorePath)
}

func TestLinkCmd_Adopt(t *testing.T) {
	env := testutil.NewEnvironment(t)
	pkg := env.Package("git", testutil.FileTree{"gitconfig": "from package"})
	env.WithTargetTree(testutil.FileTree{"gitconfig": "from target"})

	_, err := execute(t, "-t", env.Target, "link", pkg)
	require.Error(t, err)
	assert.Equal(t, "1 package failed to link", err.Error())
	testutil.AssertRegularFile(t, env.TargetPath("gitconfig"), "from target")

	_, err = execute(t, "-t", env.Target, "link", "--adopt", pkg)
	require.NoError(t, err)
	testutil.AssertSymlink(t, env.TargetPath("gitconfig"), filepath.Join(pkg, "gitconfig"))
	testutil.AssertRegularFile(t, filepath.Join(pkg, "gitconfig"), "from target")
}

func TestLinkCmd_RequiresPackages(t *testing.T) {
	testutil.NewEnvironment(t)

	_, err := execute(t, "link")
	assert.Error(t, err)
}

func TestStatusCmd(t *testing.T) {
	env := testutil.NewEnvironment(t)
	pkg := env.Package("vim", testutil.FileTree{"vimrc": "set nu"})

	_, err := execute(t, "-t", env.Target, "link", pkg)
	require.NoError(t, err)

	out, err := execute(t, "status", "--format", "json")
	require.NoError(t, err)

	var entries []types.StatusEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []types.StatusEntry{{
		Target: env.TargetPath("vimrc"),
		Source: filepath.Join(pkg, "vimrc"),
		State:  types.StatusLinked,
	}}, entries)

	_, err = execute(t, "status", "--format", "xml")
	assert.Error(t, err)
}

func TestGenConfigCmd(t *testing.T) {
	testutil.NewEnvironment(t)
	t.Setenv("LINKFARM_TARGET", "/from-env")

	out, err := execute(t, "--dotfiles", "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "# linkfarm configuration")
	assert.Contains(t, out, "target = '/from-env'")
	assert.Contains(t, out, "dotfiles = true")
}

func TestVersionCmd(t *testing.T) {
	testutil.NewEnvironment(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "linkfarm version dev")
}

func TestRootCmd_NoCommand(t *testing.T) {
	testutil.NewEnvironment(t)

	_, err := execute(t)
	assert.EqualError(t, err, MsgErrNoCommand)
}

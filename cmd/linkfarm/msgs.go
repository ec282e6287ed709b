package linkfarm

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Maintain a symlink farm from package directories"
	MsgLinkShort       = "Link packages into the target directory"
	MsgUnlinkShort     = "Remove the links of packages from the target directory"
	MsgRelinkShort     = "Unlink then link packages"
	MsgStatusShort     = "Show recorded links and their state on disk"
	MsgGenConfigShort  = "Print the effective configuration as TOML"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun   = "Report what would change without changing anything"
	MsgFlagDotfiles = `Map "dot-" path segments to "." in the target`
	MsgFlagTarget   = "Directory to create links in (default ~)"
	MsgFlagAdopt    = "Copy existing target files into the package before linking them"
	MsgFlagFormat   = "Output format: auto, term, text, json or yaml"

	// Error messages
	MsgErrNoCommand = "no command specified"
)

// Long messages
const (
	MsgRootLong = `linkfarm installs the files of one or more package directories into a
target directory as symbolic links, mirroring the package's directory tree
with real directories. It remembers what it created, so it can later remove
exactly that, clean up links whose source disappeared, and leave everything
else in the target alone.

Configuration is read from the built-in defaults, the global linkfarm.toml
in the XDG config directory, ./linkfarm.toml, LINKFARM_* environment
variables and flags, each overriding the previous.`

	MsgLinkLong = `Link every file of each package into the target directory. Directories
in the package become real directories in the target; files become absolute
symbolic links to the package file.

Existing content that linkfarm did not create is left alone and reported as
a conflict, unless --adopt is given: then the existing file is copied into
the package and replaced with a link.`

	MsgUnlinkLong = `Remove the links and now-empty directories a package owns from the
target directory. Links pointing elsewhere and foreign files are left alone.`

	MsgRelinkLong = `Unlink then link each package. Links whose package file disappeared are
cleaned up along the way.`

	MsgStatusLong = `List the links linkfarm recorded, with their current state on disk:
linked, dir, broken, missing or replaced. With package arguments only links
into those packages are shown.`
)

// Examples
const (
	MsgLinkExample = `  # Link two packages into your home directory
  linkfarm link ~/dotfiles/vim ~/dotfiles/git

  # Preview, mapping dot-vimrc to .vimrc
  linkfarm --dry-run --dotfiles link ~/dotfiles/vim

  # Take over existing files
  linkfarm link --adopt ~/dotfiles/zsh`

	MsgStatusExample = `  linkfarm status
  linkfarm status --format json ~/dotfiles/vim`
)

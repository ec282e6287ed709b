package types

// Command selects what the engine does with each package
type Command string

const (
	// CommandLink installs packages
	CommandLink Command = "link"

	// CommandUnlink removes packages
	CommandUnlink Command = "unlink"

	// CommandRelink removes then installs packages
	CommandRelink Command = "relink"
)

// Options is the fully resolved configuration record the engine runs with.
// Every field has a value by the time it reaches the engine; merging of
// defaults, configuration files, environment and flags happens in pkg/config.
type Options struct {
	// Command is the selected subcommand
	Command Command `validate:"required,oneof=link unlink relink"`

	// Packages lists the package directories to process, in order
	Packages []string `validate:"min=1,dive,required"`

	// Target is the directory links are created in
	Target string `validate:"required"`

	// StorePath is the location of the persisted store file
	StorePath string `validate:"required"`

	// Dotfiles maps "dot-" path segments to "." on the target side
	Dotfiles bool

	// Adopt copies existing target files into the package before linking
	Adopt bool

	// DryRun reports what would happen without changing anything
	DryRun bool

	// Verbosity is the log verbosity (0 warn, 1 info, 2 debug, 3 trace)
	Verbosity int `validate:"min=0"`
}

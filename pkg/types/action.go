package types

// ActionKind is the outcome the reconciler decides for a single planned link.
// It is computed once per link and then handed to the executor.
type ActionKind string

const (
	// ActionCreateDir creates a missing target directory
	ActionCreateDir ActionKind = "create_dir"

	// ActionRecordDir records an already existing target directory as managed
	ActionRecordDir ActionKind = "record_dir"

	// ActionCreateLink creates a symlink at a free target path
	ActionCreateLink ActionKind = "create_link"

	// ActionAlreadyCorrect means the target already links to the source
	ActionAlreadyCorrect ActionKind = "already_correct"

	// ActionAdopt copies the existing target content into the package and
	// replaces the target with a link
	ActionAdopt ActionKind = "adopt"

	// ActionConflict means the target is occupied by unmanaged content
	ActionConflict ActionKind = "conflict"

	// ActionRemoveDir removes an empty target directory
	ActionRemoveDir ActionKind = "remove_dir"

	// ActionRemoveLink removes a symlink that points at the source
	ActionRemoveLink ActionKind = "remove_link"

	// ActionForget retires a store entry whose target is already gone
	ActionForget ActionKind = "forget"

	// ActionSkip leaves the target untouched
	ActionSkip ActionKind = "skip"

	// ActionError means the filesystem state could not be inspected
	ActionError ActionKind = "error"
)

// Mutates reports whether executing the action changes the filesystem
func (k ActionKind) Mutates() bool {
	switch k {
	case ActionCreateDir, ActionCreateLink, ActionAdopt, ActionRemoveDir, ActionRemoveLink:
		return true
	default:
		return false
	}
}

// Decision is the tagged outcome for one link, together with the facts the
// executor needs to carry it out.
type Decision struct {
	Kind ActionKind
	Link Link

	// Relative is set on ActionAlreadyCorrect when the on-disk link value is
	// relative and must be rewritten as an absolute link.
	Relative bool

	// Canonical is the fully resolved path of the current target, set on
	// ActionAdopt.
	Canonical string

	// SameFile is set on ActionAdopt when Canonical is the source itself; the
	// copy is skipped and the existing link chain left alone.
	SameFile bool

	// Reason explains conflicts and skips
	Reason string

	// Err is set on ActionError
	Err error
}

package types

// StatusState is the live state of a store entry on disk
type StatusState string

const (
	// StatusLinked means the target is a symlink to the recorded source
	StatusLinked StatusState = "linked"

	// StatusDir means the target is a managed directory
	StatusDir StatusState = "dir"

	// StatusBroken means the target is a symlink whose destination is gone
	StatusBroken StatusState = "broken"

	// StatusMissing means nothing exists at the target any more
	StatusMissing StatusState = "missing"

	// StatusReplaced means something other than our link now lives at the target
	StatusReplaced StatusState = "replaced"
)

// StatusEntry describes one store entry and its state on disk
type StatusEntry struct {
	Target string      `json:"target" yaml:"target"`
	Source string      `json:"source" yaml:"source"`
	State  StatusState `json:"state" yaml:"state"`
}

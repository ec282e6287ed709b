package types

import "fmt"

// Link is a planned source -> target pairing. On disk it becomes a symbolic
// link at Target pointing at Source when Source is a file, or a plain
// directory at Target when Source is a directory.
type Link struct {
	// Source is the canonical absolute path of the entry inside the package
	Source string `json:"source" yaml:"source"`

	// Target is the absolute path inside the target root
	Target string `json:"target" yaml:"target"`
}

// String renders the link the way log lines and summaries show it
func (l Link) String() string {
	return fmt.Sprintf("%s -> %s", l.Target, l.Source)
}

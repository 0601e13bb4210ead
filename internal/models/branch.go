package models

// Branch is one selectable entry in the picker.
type Branch struct {
	Name       string
	Hash       string
	IsCurrent  bool
	IsRemote   bool
	Detached   bool   // synthetic "(HEAD detached at ...)" entry, never selectable
	Upstream   string // e.g., "origin/main: ahead 2"
	LastCommit string
	PRNumber   int // open PR for this head, 0 if none known
}

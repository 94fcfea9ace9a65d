package model

// FileEvent is a change notification for a watched data file.
type FileEvent struct {
	Path      string
	Operation string
}

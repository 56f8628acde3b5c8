// Package command defines the requests the UI sends to the drawing session:
// pointer input, canvas edits, prediction, file output and settings changes.
package command

// Command is a request queued to the session actor.
type Command interface {
	// CommandName identifies the command in logs.
	CommandName() string
}

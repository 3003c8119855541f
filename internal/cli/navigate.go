package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// replaceViewMsg replaces the current top view with a new one.
type replaceViewMsg struct {
	view View
}

// refreshViewMsg asks every view on the stack to reload its data. Sent after
// mutations so list views under a form or menu pick up the change.
type refreshViewMsg struct{}

// wizardCompleteMsg is sent when a modal form completes or is cancelled.
// The appModel handles it atomically: pop the form view, then run nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// flashMsg shows a transient one-line notice in the status area.
type flashMsg struct {
	text string
	warn bool
}

// logoutMsg tears down the session from anywhere: any view that receives an
// authentication rejection emits it, and the appModel clears local state and
// resets the stack to the login view.
type logoutMsg struct {
	notice string
}

// conflictRedirectMsg reports a refused mutation (record locked). The shell
// shows the warning, waits, then pops back to the list and refreshes it.
type conflictRedirectMsg struct {
	message string
}

// conflictRedirectFireMsg is the delayed second half of a conflict redirect.
type conflictRedirectFireMsg struct{}

// conflictRedirectDelay is how long the lock warning stays up before the
// shell navigates back to the list.
const conflictRedirectDelay = 2 * time.Second

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// replaceView returns a tea.Cmd that replaces the top view.
func replaceView(v View) tea.Cmd {
	return func() tea.Msg { return replaceViewMsg{view: v} }
}

// flash returns a tea.Cmd that shows a transient notice.
func flash(text string) tea.Cmd {
	return func() tea.Msg { return flashMsg{text: text} }
}

// flashWarn returns a tea.Cmd that shows a transient warning.
func flashWarn(text string) tea.Cmd {
	return func() tea.Msg { return flashMsg{text: text, warn: true} }
}

// logout returns a tea.Cmd that triggers the shared logout procedure.
func logout(notice string) tea.Cmd {
	return func() tea.Msg { return logoutMsg{notice: notice} }
}

package state

import "strings"

// FooterText returns the footer content for the current session.
func FooterText(session Session, busy bool, statusMessage, helpText string) string {
	status := strings.TrimSpace(statusMessage)
	if busy || status == "" || session == QuitView {
		return helpText
	}
	if helpText == "" {
		return status
	}
	return status + "\n" + helpText
}

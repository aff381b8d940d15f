package notify

import (
	"fmt"
	"strings"
)

// appName identifies eslint-watch to the desktop notification service.
const appName = "eslint-watch"

// notifySendArgs builds the notify-send argument vector for n. Failures are
// sent with critical urgency so they stay on screen.
func notifySendArgs(n Notification) []string {
	urgency := "normal"
	if n.NotificationType == TypeFailure {
		urgency = "critical"
	}
	return []string{
		"-u", urgency,
		"-i", n.Icon(),
		"-a", appName,
		n.Title, n.Message,
	}
}

// osascriptArgs builds the osascript argument vector for n.
func osascriptArgs(n Notification) []string {
	script := fmt.Sprintf(`display notification %q with title %q subtitle %q`,
		n.Message, n.Title, subtitle(n.NotificationType))
	return []string{"-e", script}
}

// subtitle stands in for a status icon, which osascript cannot set.
func subtitle(t NotificationType) string {
	switch t {
	case TypeSuccess:
		return "Passed"
	case TypeFailure:
		return "Failed"
	default:
		return ""
	}
}

// escapeForPowerShell doubles single quotes and backtick-escapes ` and $.
func escapeForPowerShell(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\'':
			b.WriteString("''")
		case '`', '$':
			b.WriteRune('`')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

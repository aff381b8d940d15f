package notify

import (
	"fmt"
	"strings"
)

// Title is the notification title used for lint results.
const Title = "ESLint results"

// Mode selects when inspection results produce a notification.
type Mode string

const (
	// ModeOff never notifies.
	ModeOff Mode = "off"
	// ModeFailed notifies only when an inspection fails.
	ModeFailed Mode = "failed"
	// ModeAlways notifies after every inspection.
	ModeAlways Mode = "always"
)

// ParseMode converts a raw `notification` option into a Mode.
// Booleans follow the original convention: true means always, false off.
// Strings are matched case-insensitively; "true"/"1" and "false"/"0" are
// accepted because environment variables cannot carry booleans.
func ParseMode(raw any) (Mode, error) {
	switch v := raw.(type) {
	case nil:
		return ModeOff, nil
	case Mode:
		return ParseMode(string(v))
	case bool:
		if v {
			return ModeAlways, nil
		}
		return ModeOff, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "off", "false", "0", "none":
			return ModeOff, nil
		case "failed", "failure", "on_failure":
			return ModeFailed, nil
		case "always", "true", "1", "on":
			return ModeAlways, nil
		}
		return "", fmt.Errorf("invalid notification mode %q (valid: off, failed, always)", v)
	default:
		return "", fmt.Errorf("invalid notification mode of type %T (valid: off, failed, always)", raw)
	}
}

// ShouldNotify applies the mode policy to an inspection outcome.
func (m Mode) ShouldNotify(passed bool) bool {
	switch m {
	case ModeAlways:
		return true
	case ModeFailed:
		return !passed
	default:
		return false
	}
}

// NotificationType represents the status a notification conveys
type NotificationType string

const (
	// TypeSuccess indicates a passing inspection
	TypeSuccess NotificationType = "success"
	// TypeFailure indicates a failing inspection or a run error
	TypeFailure NotificationType = "failure"
	// TypeInfo indicates an informational notification
	TypeInfo NotificationType = "info"
)

// OutputType represents the notification output type
type OutputType string

const (
	// OutputSound sends only an audible notification
	OutputSound OutputType = "sound"
	// OutputVisual sends only a visual notification
	OutputVisual OutputType = "visual"
	// OutputBoth sends both sound and visual notifications
	OutputBoth OutputType = "both"
)

// ValidOutputType checks if the given string is a valid output type
func ValidOutputType(s string) bool {
	switch OutputType(s) {
	case OutputSound, OutputVisual, OutputBoth:
		return true
	default:
		return false
	}
}

// NotificationConfig holds delivery preferences.
type NotificationConfig struct {
	// Type specifies the output: sound, visual, or both (default: visual)
	Type OutputType `koanf:"type" yaml:"type" json:"type" validate:"omitempty,oneof=sound visual both"`

	// SoundFile is an optional custom sound file path
	SoundFile string `koanf:"sound_file" yaml:"sound_file" json:"sound_file"`
}

// DefaultConfig returns a NotificationConfig with default values
func DefaultConfig() NotificationConfig {
	return NotificationConfig{
		Type:      OutputVisual,
		SoundFile: "",
	}
}

// Notification represents a single notification event to dispatch
type Notification struct {
	// Title is the notification title
	Title string

	// Message is the notification body text
	Message string

	// NotificationType selects the status icon: success, failure, or info
	NotificationType NotificationType
}

// NewNotification creates a new Notification with the given parameters
func NewNotification(title, message string, notificationType NotificationType) Notification {
	return Notification{
		Title:            title,
		Message:          message,
		NotificationType: notificationType,
	}
}

// Icon returns the freedesktop icon name for the notification's status.
func (n Notification) Icon() string {
	switch n.NotificationType {
	case TypeSuccess:
		return "dialog-information"
	case TypeFailure:
		return "dialog-error"
	default:
		return "dialog-information"
	}
}

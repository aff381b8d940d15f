package notify

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// dispatchTimeout bounds how long a notification may hold up the caller.
const dispatchTimeout = 5 * time.Second

// Handler turns inspection outcomes into notifications according to a Mode.
type Handler struct {
	mode      Mode
	config    NotificationConfig
	sender    Sender
	available func() bool
}

// NewHandler creates a handler using the platform sender. Notifications are
// suppressed in CI and when no terminal is attached.
func NewHandler(mode Mode, config NotificationConfig) *Handler {
	return &Handler{
		mode:      mode,
		config:    config,
		sender:    NewSender(),
		available: desktopSession,
	}
}

// NewHandlerWithSender creates a handler with a custom sender (for testing).
// No environment gating is applied.
func NewHandlerWithSender(mode Mode, config NotificationConfig, sender Sender) *Handler {
	return &Handler{
		mode:   mode,
		config: config,
		sender: sender,
	}
}

// Mode returns the handler's notification mode
func (h *Handler) Mode() Mode {
	return h.mode
}

// Config returns the handler's delivery configuration
func (h *Handler) Config() NotificationConfig {
	return h.config
}

func (h *Handler) isEnabled() bool {
	if h.mode == ModeOff || h.mode == "" {
		return false
	}
	if h.available != nil && !h.available() {
		return false
	}
	return true
}

// OnInspectionComplete notifies with the summary text when the mode asks
// for it: ModeFailed only on failure, ModeAlways every time.
func (h *Handler) OnInspectionComplete(passed bool, summary string) {
	if !h.isEnabled() || !h.mode.ShouldNotify(passed) {
		return
	}

	notifType := TypeSuccess
	if !passed {
		notifType = TypeFailure
	}
	h.dispatch(NewNotification(Title, summary, notifType))
}

// OnError notifies that an inspection could not complete. It is sent in
// every mode except ModeOff, since an errored run is a failed run.
func (h *Handler) OnError(err error) {
	if !h.isEnabled() {
		return
	}

	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	h.dispatch(NewNotification(Title, fmt.Sprintf("Inspection failed: %s", errMsg), TypeFailure))
}

// dispatch sends a notification on a goroutine and waits at most
// dispatchTimeout. A slow sound file keeps playing after we return.
func (h *Handler) dispatch(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.sendNotification(n)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (h *Handler) sendNotification(n Notification) {
	switch h.config.Type {
	case OutputSound:
		_ = h.sender.SendSound(h.config.SoundFile)
	case OutputBoth:
		_ = h.sender.SendVisual(n)
		_ = h.sender.SendSound(h.config.SoundFile)
	default:
		_ = h.sender.SendVisual(n)
	}
}

// desktopSession reports whether a user is likely to see a notification:
// not in CI, and attached to a terminal.
func desktopSession() bool {
	return !isCI() && isInteractive()
}

// isCI checks for common CI environment variables.
func isCI() bool {
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"JENKINS_URL",
		"BUILDKITE",
		"DRONE",
		"TEAMCITY_VERSION",
		"TF_BUILD",            // Azure DevOps
		"BITBUCKET_PIPELINES", // Bitbucket
		"CODEBUILD_BUILD_ID",  // AWS CodeBuild
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// isInteractive checks stdout, then stderr, then stdin for a TTY.
func isInteractive() bool {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return true
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return true
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

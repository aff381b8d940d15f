// Package notify_test tests the inspection notification policy and dispatch.
// Related: internal/notify/handler.go
// Tags: notify, handler, mode, policy, error-handling
package notify

import (
	"errors"
	"strings"
	"testing"
)

func TestNewHandler(t *testing.T) {
	t.Parallel()
	config := DefaultConfig()
	handler := NewHandler(ModeFailed, config)

	if handler == nil {
		t.Fatal("NewHandler returned nil")
	}
	if handler.Config() != config {
		t.Error("handler config doesn't match input")
	}
	if handler.Mode() != ModeFailed {
		t.Errorf("handler mode = %q, expected %q", handler.Mode(), ModeFailed)
	}
	if handler.available == nil {
		t.Error("production handler should gate on the desktop session")
	}
}

func TestNewHandlerWithSender(t *testing.T) {
	t.Parallel()
	rec := &recordingSender{}
	handler := NewHandlerWithSender(ModeAlways, DefaultConfig(), rec)

	if handler.sender != rec {
		t.Error("handler sender doesn't match input")
	}
	if handler.available != nil {
		t.Error("test handler should not gate on the desktop session")
	}
}

func TestHandler_OnInspectionComplete_Policy(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mode          Mode
		passed        bool
		expectedCalls int
		expectedType  NotificationType
	}{
		"failed mode, passing run": {
			mode:          ModeFailed,
			passed:        true,
			expectedCalls: 0,
		},
		"failed mode, failing run": {
			mode:          ModeFailed,
			passed:        false,
			expectedCalls: 1,
			expectedType:  TypeFailure,
		},
		"always mode, passing run": {
			mode:          ModeAlways,
			passed:        true,
			expectedCalls: 1,
			expectedType:  TypeSuccess,
		},
		"always mode, failing run": {
			mode:          ModeAlways,
			passed:        false,
			expectedCalls: 1,
			expectedType:  TypeFailure,
		},
		"off mode, failing run": {
			mode:          ModeOff,
			passed:        false,
			expectedCalls: 0,
		},
		"empty mode, failing run": {
			mode:          "",
			passed:        false,
			expectedCalls: 0,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec := &recordingSender{}
			handler := NewHandlerWithSender(tt.mode, DefaultConfig(), rec)

			handler.OnInspectionComplete(tt.passed, "1 file inspected, 1 error detected, no warning detected")

			if len(rec.sent()) != tt.expectedCalls {
				t.Fatalf("visual calls = %d, expected %d", len(rec.sent()), tt.expectedCalls)
			}
			if tt.expectedCalls == 0 {
				return
			}
			n := rec.last()
			if n.Title != Title {
				t.Errorf("title = %q, expected %q", n.Title, Title)
			}
			if n.Message != "1 file inspected, 1 error detected, no warning detected" {
				t.Errorf("message = %q", n.Message)
			}
			if n.NotificationType != tt.expectedType {
				t.Errorf("type = %q, expected %q", n.NotificationType, tt.expectedType)
			}
		})
	}
}

func TestHandler_OnInspectionComplete_OutputTypes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		output         OutputType
		expectedVisual int
		expectedSound  int
	}{
		"visual":        {output: OutputVisual, expectedVisual: 1, expectedSound: 0},
		"sound":         {output: OutputSound, expectedVisual: 0, expectedSound: 1},
		"both":          {output: OutputBoth, expectedVisual: 1, expectedSound: 1},
		"unset is text": {output: "", expectedVisual: 1, expectedSound: 0},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec := &recordingSender{}
			config := NotificationConfig{Type: tt.output, SoundFile: "/tmp/ding.wav"}
			handler := NewHandlerWithSender(ModeAlways, config, rec)

			handler.OnInspectionComplete(true, "ok")

			if len(rec.sent()) != tt.expectedVisual {
				t.Errorf("visual calls = %d, expected %d", len(rec.sent()), tt.expectedVisual)
			}
			if len(rec.played()) != tt.expectedSound {
				t.Errorf("sound calls = %d, expected %d", len(rec.played()), tt.expectedSound)
			}
			if tt.expectedSound > 0 && rec.played()[0] != "/tmp/ding.wav" {
				t.Error("sound not played with configured file")
			}
		})
	}
}

func TestHandler_OnInspectionComplete_UnavailableDesktop(t *testing.T) {
	t.Parallel()
	rec := &recordingSender{}
	handler := NewHandlerWithSender(ModeAlways, DefaultConfig(), rec)
	handler.available = func() bool { return false }

	handler.OnInspectionComplete(false, "summary")

	if len(rec.sent()) > 0 {
		t.Error("notification sent without a desktop session")
	}
}

func TestHandler_OnError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mode            Mode
		err             error
		expectedCalls   int
		expectedMessage string
	}{
		"failed mode sends": {
			mode:            ModeFailed,
			err:             errors.New("reading report: unexpected end of JSON input"),
			expectedCalls:   1,
			expectedMessage: "Inspection failed: reading report: unexpected end of JSON input",
		},
		"always mode sends": {
			mode:            ModeAlways,
			err:             errors.New("boom"),
			expectedCalls:   1,
			expectedMessage: "Inspection failed: boom",
		},
		"off mode is silent": {
			mode:          ModeOff,
			err:           errors.New("boom"),
			expectedCalls: 0,
		},
		"nil error": {
			mode:            ModeFailed,
			err:             nil,
			expectedCalls:   1,
			expectedMessage: "Inspection failed: unknown error",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			rec := &recordingSender{}
			handler := NewHandlerWithSender(tt.mode, DefaultConfig(), rec)

			handler.OnError(tt.err)

			if len(rec.sent()) != tt.expectedCalls {
				t.Fatalf("visual calls = %d, expected %d", len(rec.sent()), tt.expectedCalls)
			}
			if tt.expectedCalls == 0 {
				return
			}
			if rec.last().Message != tt.expectedMessage {
				t.Errorf("message = %q, expected %q", rec.last().Message, tt.expectedMessage)
			}
			if rec.last().NotificationType != TypeFailure {
				t.Error("error notification should use the failure type")
			}
		})
	}
}

func TestHandler_SenderErrorsAreSwallowed(t *testing.T) {
	t.Parallel()
	rec := &recordingSender{visualErr: errVisual, soundErr: errSound}
	handler := NewHandlerWithSender(ModeAlways, NotificationConfig{Type: OutputBoth}, rec)

	// Must not panic or block.
	handler.OnInspectionComplete(false, "summary")

	if len(rec.sent()) != 1 || len(rec.played()) != 1 {
		t.Errorf("expected both senders to be tried, got visual=%d sound=%d", len(rec.sent()), len(rec.played()))
	}
}

func TestIsCI(t *testing.T) {
	// Modifies environment; not parallel.
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "CIRCLECI", "TRAVIS", "JENKINS_URL",
		"BUILDKITE", "DRONE", "TEAMCITY_VERSION", "TF_BUILD", "BITBUCKET_PIPELINES", "CODEBUILD_BUILD_ID"} {
		t.Setenv(v, "")
	}
	if isCI() {
		t.Fatal("isCI() = true with no CI variables set")
	}

	t.Setenv("GITHUB_ACTIONS", "true")
	if !isCI() {
		t.Error("isCI() = false with GITHUB_ACTIONS set")
	}
}

func TestNotificationMessageIsSummaryVerbatim(t *testing.T) {
	t.Parallel()
	rec := &recordingSender{}
	handler := NewHandlerWithSender(ModeAlways, DefaultConfig(), rec)

	summary := "2 files inspected, 3 errors detected, 3 warnings detected"
	handler.OnInspectionComplete(false, summary)

	if strings.TrimSpace(rec.last().Message) != summary {
		t.Errorf("message = %q, expected %q", rec.last().Message, summary)
	}
}

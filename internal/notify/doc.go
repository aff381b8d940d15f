// Package notify delivers desktop notifications for lint results.
//
// Notifications go through the operating system's own tools, called with
// os/exec, so the binary stays CGO_ENABLED=0 friendly:
//
//   - macOS: osascript for banners, afplay for sound
//   - Linux: notify-send for banners (with a status icon), paplay for sound
//   - Windows: PowerShell toast notifications and sound
//
// A Handler decides whether an inspection result is worth a notification
// based on the configured Mode:
//
//	handler := notify.NewHandler(notify.ModeFailed, notify.DefaultConfig())
//	handler.OnInspectionComplete(false, "2 files inspected, 3 errors detected, no warning detected")
//
// Delivery failures are swallowed. A notification must never break a lint run.
package notify

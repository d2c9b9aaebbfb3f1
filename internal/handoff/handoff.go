// Package handoff opens the order deep link in whatever browser the host
// provides. Responsibility ends at launching the opener; delivery of the
// message is entirely outside this program's control.
package handoff

import (
	"fmt"
	"os/exec"
	"runtime"

	"umami/internal/logging"
)

// execCommand is swapped in tests.
var execCommand = exec.Command

// openerArgs returns the platform opener argv for the given link.
func openerArgs(goos, rawURL string) []string {
	switch goos {
	case "darwin":
		return []string{"open", rawURL}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", rawURL}
	default:
		return []string{"xdg-open", rawURL}
	}
}

// Open launches the platform URL opener for the given link. The opener is
// started and not waited on.
func Open(rawURL string) error {
	argv := openerArgs(runtime.GOOS, rawURL)
	cmd := execCommand(argv[0], argv[1:]...)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", rawURL, err)
	}
	logging.Checkout("Opened hand-off link")

	// Reap the opener in the background; its exit status tells us nothing
	// about message delivery.
	go func() { _ = cmd.Wait() }()
	return nil
}

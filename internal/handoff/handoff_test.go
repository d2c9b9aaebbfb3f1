package handoff

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpenerArgs(t *testing.T) {
	t.Parallel()

	const link = "https://wa.me/573022679121?text=hola"
	cases := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"open", link}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", link}},
		{"linux", []string{"xdg-open", link}},
		{"freebsd", []string{"xdg-open", link}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, openerArgs(tc.goos, link)); diff != "" {
			t.Errorf("openerArgs(%q) mismatch (-want +got):\n%s", tc.goos, diff)
		}
	}
}

func TestOpenStartsOpener(t *testing.T) {
	var gotName string
	var gotArgs []string
	execCommand = func(name string, args ...string) *exec.Cmd {
		gotName = name
		gotArgs = args
		cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
		cmd.Env = append(os.Environ(), "UMAMI_HELPER_PROCESS=1")
		return cmd
	}
	defer func() { execCommand = exec.Command }()

	if err := Open("https://wa.me/573022679121?text=hola"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if gotName == "" {
		t.Fatal("opener was never built")
	}
	if len(gotArgs) == 0 || gotArgs[len(gotArgs)-1] != "https://wa.me/573022679121?text=hola" {
		t.Errorf("link not passed to the opener: %v %v", gotName, gotArgs)
	}
}

func TestOpenReportsStartFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "no-such-opener")
	execCommand = func(name string, args ...string) *exec.Cmd {
		return exec.Command(missing)
	}
	defer func() { execCommand = exec.Command }()

	if err := Open("https://wa.me/573022679121?text=hola"); err == nil {
		t.Fatal("Open should surface a start failure")
	}
}

// TestHelperProcess stands in for the platform opener. It is only meaningful
// when re-executed by TestOpenStartsOpener.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("UMAMI_HELPER_PROCESS") != "1" {
		return
	}
	os.Exit(0)
}

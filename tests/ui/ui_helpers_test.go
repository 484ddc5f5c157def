package tests

import (
	"context"
	"os"
	"testing"

	"github.com/sanglocn/us-daily/tests/common"
)

// portalURL returns the base URL of the portal under test.
// Set SNAP_TEST_URL to run against an existing server; set SNAP_UI_TESTS=1
// to build and start the containerized environment. Otherwise the browser
// tests skip.
func portalURL(t *testing.T) string {
	t.Helper()
	if url := os.Getenv("SNAP_TEST_URL"); url != "" {
		return url
	}
	if os.Getenv("SNAP_UI_TESTS") == "" {
		t.Skip("set SNAP_TEST_URL or SNAP_UI_TESTS=1 to run browser tests")
	}
	return common.StartPortal(t).URL()
}

// newBrowser creates a headless Chrome context with a 30s timeout.
func newBrowser(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return common.NewBrowserContext(nil)
}

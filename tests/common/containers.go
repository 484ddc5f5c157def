package common

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var (
	imageBuildOnce  sync.Once
	imageBuildError error
	portalContainer *PortalContainer
	portalOnce      sync.Once
	portalStartErr  error
)

const (
	dailyFixtureCSV = "ticker,date,rs_to_spy,ret_intraday,ret_1d,rs_rank_21d,rs_rank_252d,pp_volume,ratio_pct_dist_to_atr_pct,above_sma10,above_sma20,group\n" +
		"SPY,2026-08-25,1.0,0.001,0.002,0.60,0.70,Normal,1.0,TRUE,TRUE,Market\n" +
		"SPY,2026-08-26,1.0,0.002,0.001,0.62,0.71,Normal,1.1,TRUE,TRUE,Market\n" +
		"XLE,2026-08-26,0.9,-0.004,-0.01,0.30,0.25,Normal,5.2,FALSE,FALSE,Sector\n" +
		"NVDA,2026-08-26,1.8,0.03,0.02,0.95,0.99,Pocket,3.0,TRUE,TRUE,Leader\n"
	weeklyFixtureCSV = "ticker,date,stage_label_core\n" +
		"SPY,2026-08-21,2\n" +
		"XLE,2026-08-21,4\n" +
		"NVDA,2026-08-21,2\n"
)

// PortalContainer wraps a testcontainers environment: the portal container
// plus a stub CSV feed served from the host.
type PortalContainer struct {
	portal testcontainers.Container
	feed   *http.Server
	ctx    context.Context
	cancel context.CancelFunc
	url    string
}

// URL returns the base URL of the running portal container.
func (p *PortalContainer) URL() string {
	return p.url
}

// CollectLogs saves container stdout/stderr to dir/.
func (p *PortalContainer) CollectLogs(dir string) {
	if p == nil || p.portal == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	os.MkdirAll(dir, 0755)

	reader, err := p.portal.Logs(ctx)
	if err != nil {
		return
	}
	defer reader.Close()

	logs, err := io.ReadAll(reader)
	if err != nil {
		return
	}
	os.WriteFile(filepath.Join(dir, "portal.log"), logs, 0644)
}

// Cleanup tears down the container and the stub feed.
// Uses a fresh context for teardown in case the main context expired.
func (p *PortalContainer) Cleanup() {
	if p == nil {
		return
	}

	cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cleanupCancel()

	if p.portal != nil {
		p.portal.Terminate(cleanupCtx)
	}
	if p.feed != nil {
		p.feed.Shutdown(cleanupCtx)
	}
	if p.cancel != nil {
		p.cancel()
	}
}

// FindProjectRoot walks up from the working directory to the directory
// containing go.mod.
func FindProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}

// buildPortalImage builds the snapshot-portal:test Docker image once per test run.
func buildPortalImage() error {
	imageBuildOnce.Do(func() {
		ctx := context.Background()

		req := testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				FromDockerfile: testcontainers.FromDockerfile{
					Context:    FindProjectRoot(),
					Dockerfile: "tests/docker/Dockerfile",
					Repo:       "snapshot-portal",
					Tag:        "test",
					KeepImage:  true,
				},
			},
		}

		_, imageBuildError = testcontainers.GenericContainer(ctx, req)
		if imageBuildError != nil {
			// Image may have built successfully even if container creation failed
			if strings.Contains(imageBuildError.Error(), "snapshot-portal:test") {
				imageBuildError = nil
			}
		}
	})
	return imageBuildError
}

// startFeedStub serves the CSV fixtures on a random host port.
func startFeedStub() (*http.Server, int, error) {
	listener, err := net.Listen("tcp", "0.0.0.0:0")
	if err != nil {
		return nil, 0, fmt.Errorf("listen for feed stub: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port

	mux := http.NewServeMux()
	mux.HandleFunc("/daily.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(dailyFixtureCSV))
	})
	mux.HandleFunc("/weekly.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(weeklyFixtureCSV))
	})

	srv := &http.Server{Handler: mux}
	go srv.Serve(listener)

	return srv, port, nil
}

// startTestEnvironment starts the stub feed and the portal container wired
// to it through the testcontainers host gateway.
func startTestEnvironment() (*PortalContainer, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 180*time.Second)

	feed, feedPort, err := startFeedStub()
	if err != nil {
		cancel()
		return nil, err
	}
	feedBase := fmt.Sprintf("http://%s:%d", testcontainers.HostInternal, feedPort)

	portalCtr, err := testcontainers.Run(ctx, "snapshot-portal:test",
		testcontainers.WithExposedPorts("4310/tcp"),
		testcontainers.WithHostPortAccess(feedPort),
		testcontainers.WithEnv(map[string]string{
			"SNAP_SERVER_HOST":     "0.0.0.0",
			"SNAP_FEED_DAILY_URL":  feedBase + "/daily.csv",
			"SNAP_FEED_WEEKLY_URL": feedBase + "/weekly.csv",
		}),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/api/health").WithPort("4310/tcp").WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		feed.Close()
		cancel()
		return nil, fmt.Errorf("start portal: %w", err)
	}

	mappedPort, err := portalCtr.MappedPort(ctx, "4310/tcp")
	if err != nil {
		portalCtr.Terminate(ctx)
		feed.Close()
		cancel()
		return nil, fmt.Errorf("get portal mapped port: %w", err)
	}

	host, err := portalCtr.Host(ctx)
	if err != nil {
		portalCtr.Terminate(ctx)
		feed.Close()
		cancel()
		return nil, fmt.Errorf("get portal host: %w", err)
	}

	return &PortalContainer{
		portal: portalCtr,
		feed:   feed,
		ctx:    ctx,
		cancel: cancel,
		url:    fmt.Sprintf("http://%s:%s", host, mappedPort.Port()),
	}, nil
}

// StartPortal starts the containerized test environment (one per test
// process). Returns nil when SNAP_TEST_URL is set -- tests use the existing
// server instead.
func StartPortal(t *testing.T) *PortalContainer {
	t.Helper()
	if os.Getenv("SNAP_TEST_URL") != "" {
		return nil
	}

	portalOnce.Do(func() {
		if err := buildPortalImage(); err != nil {
			portalStartErr = fmt.Errorf("build portal image: %w", err)
			return
		}
		var err error
		portalContainer, err = startTestEnvironment()
		if err != nil {
			portalStartErr = err
		}
	})

	if portalStartErr != nil {
		t.Fatalf("Failed to start test environment: %v", portalStartErr)
	}
	return portalContainer
}

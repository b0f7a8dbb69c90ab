package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"traduce/internal/config"
	"traduce/internal/crossref"
	"traduce/internal/investigation/gbooks"
)

// minFreeBytes is the floor below which the state disk is considered full.
// The queue database is small; this guards against a wedged filesystem, not
// capacity planning.
const minFreeBytes = 64 << 20

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckDiskSpace verifies the filesystem holding path has free space left for
// the queue database.
func CheckDiskSpace(name, path string) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < minFreeBytes {
		return Result{Name: name, Detail: fmt.Sprintf("%s (only %d MiB free)", path, free>>20)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB free)", path, free>>20)}
}

// CheckCatalog verifies the bibliographic catalog answers a minimal search.
func CheckCatalog(ctx context.Context, cfg *config.Config) Result {
	const name = "Catalog API"

	client, err := gbooks.New(cfg.Catalog.BaseURL, cfg.Catalog.APIKey,
		gbooks.WithHTTPClient(&http.Client{Timeout: 10 * time.Second}))
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err = client.SearchVolumes(checkCtx, gbooks.Query{Terms: []string{"test"}}, gbooks.SearchOptions{MaxResults: 1})
	if err != nil {
		return Result{Name: name, Detail: summarizeCatalogError(err)}
	}
	return Result{Name: name, Passed: true, Detail: "Reachable"}
}

// CheckCrossrefTables verifies the configured tables file parses.
func CheckCrossrefTables(path string) Result {
	const name = "Cross-reference tables"

	tables, err := crossref.Load(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{
		Name:   name,
		Passed: true,
		Detail: fmt.Sprintf("%d publishers, %d ISBN links", len(tables.Publishers()), tables.LinkCount()),
	}
}

func summarizeCatalogError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "health check timed out (catalog unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "health check timed out (catalog unreachable)"
	}
	return err.Error()
}

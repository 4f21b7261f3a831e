// Package downloadmgr downloads the artifacts a lockfile pins.
package downloadmgr

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mdpkg/mdpkg/pkg/recipe"
)

// DownloadManager includes a queue to download
type DownloadManager struct {
	queue      []Downloader
	OnProgress func(p int)
}

// Downloader allows the manager to download one item
type Downloader interface {
	Download(ctx context.Context) error
}

// Add adds a new item to the queue
func (d *DownloadManager) Add(i Downloader) {
	d.queue = append(d.queue, i)
}

// AddFromLockfile queues every locked dependency that has a download URL.
// Artifacts land in cacheDir as <name>-<version>.tar.gz. Dependencies
// without a URL are skipped, the caller is expected to have them locally
func (d *DownloadManager) AddFromLockfile(lock *recipe.Lockfile, cacheDir string) int {
	queued := 0
	for _, dep := range lock.Dependencies {
		if dep.URL == "" {
			continue
		}
		target := filepath.Join(cacheDir, fmt.Sprintf("%s-%s.tar.gz", dep.Name, dep.Version))
		item := NewHTTPItem(dep.URL, target)
		item.Sha256 = dep.Sha256
		d.Add(item)
		queued++
	}
	return queued
}

// Start starts the download queue
func (d *DownloadManager) Start(ctx context.Context) error {
	sem := make(chan int, 8)
	// buffered so remaining workers can finish after an early return
	errc := make(chan error, len(d.queue))

	if d.queue == nil {
		return nil
	}

	go func() {
		for _, item := range d.queue {
			sem <- 1
			go func(item Downloader, err chan error) {
				err <- item.Download(ctx)
				<-sem
			}(item, errc)
		}
	}()

	for i := 0; i < len(d.queue); i++ {
		maybeErr := <-errc
		if maybeErr != nil {
			return maybeErr
		}
		if d.OnProgress != nil {
			d.OnProgress(int(float32(i) / float32(len(d.queue)) * 100))
		}
	}
	return nil
}

// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package objectstore

import (
	"context"
	"strings"
	"sync"

	"code.vegaprotocol.io/stateproof/logging"
	"code.vegaprotocol.io/stateproof/metrics"

	"golang.org/x/sync/errgroup"
)

// File is an object downloaded successfully.
type File struct {
	PartialPath string
	Data        []byte
}

// NodeAccountID is the first segment of the partial path, the account id of
// the node which uploaded the file.
func (f File) NodeAccountID() string {
	id, _, _ := strings.Cut(f.PartialPath, "/")
	return id
}

type Downloader struct {
	log    *logging.Logger
	bucket Bucket

	mu     sync.RWMutex
	config Config
}

func NewDownloader(log *logging.Logger, config Config, bucket Bucket) *Downloader {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Downloader{
		log:    log,
		bucket: bucket,
		config: config,
	}
}

// ReloadConf updates the internal configuration.
func (d *Downloader) ReloadConf(cfg Config) {
	d.log.Info("reloading configuration")
	if d.log.GetLevel() != cfg.Level.Get() {
		d.log.Info("updating log level",
			logging.String("old", d.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		d.log.SetLevel(cfg.Level.Get())
	}

	d.mu.Lock()
	d.config = cfg
	d.mu.Unlock()
}

// FetchAll downloads every partial path concurrently and returns the files
// which could be retrieved, in no particular order. Failed downloads are
// logged and dropped so a handful of unreachable nodes don't fail the batch.
func (d *Downloader) FetchAll(ctx context.Context, partialPaths ...string) []File {
	d.mu.RLock()
	cfg := d.config
	d.mu.RUnlock()

	results := make([]*File, len(partialPaths))

	var g errgroup.Group
	if cfg.MaxConcurrency > 0 {
		g.SetLimit(cfg.MaxConcurrency)
	}
	for i, path := range partialPaths {
		i, path := i, path
		g.Go(func() error {
			data, err := d.fetch(ctx, cfg, path)
			if err != nil {
				metrics.ObjectStoreRequestInc("failure")
				d.log.Debug("could not download file",
					logging.String("partial-path", path),
					logging.Error(err),
				)
				return nil
			}
			metrics.ObjectStoreRequestInc("success")
			results[i] = &File{PartialPath: path, Data: data}
			return nil
		})
	}
	_ = g.Wait()

	files := make([]File, 0, len(results))
	for _, f := range results {
		if f != nil {
			files = append(files, *f)
		}
	}
	return files
}

func (d *Downloader) fetch(ctx context.Context, cfg Config, partialPath string) ([]byte, error) {
	if timeout := cfg.Timeout.Get(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return d.bucket.Get(ctx, cfg.StreamPrefix+partialPath)
}

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

package node

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"code.vegaprotocol.io/stateproof/config"
	"code.vegaprotocol.io/stateproof/gateway"
	"code.vegaprotocol.io/stateproof/logging"
	"code.vegaprotocol.io/stateproof/metrics"
	"code.vegaprotocol.io/stateproof/objectstore"
	"code.vegaprotocol.io/stateproof/sqlstore"
	"code.vegaprotocol.io/stateproof/stateproof"

	"github.com/cenkalti/backoff"
	"golang.org/x/sync/errgroup"
)

// NodeCommand use to implement 'node' command.
type NodeCommand struct {
	ctx    context.Context
	cancel context.CancelFunc

	connectionSource *sqlstore.ConnectionSource

	// Stores
	transactionStore *sqlstore.Transactions
	recordFileStore  *sqlstore.RecordFiles
	addressBookStore *sqlstore.AddressBooks

	// Services
	downloader        *objectstore.Downloader
	stateProofService *stateproof.Service

	Log           *logging.Logger
	configWatcher *config.Watcher
	conf          config.Config

	Version     string
	VersionHash string
}

func (l *NodeCommand) Run(cfgwatchr *config.Watcher, args []string) error {
	l.configWatcher = cfgwatchr
	l.conf = cfgwatchr.Get()

	stages := []func([]string) error{
		l.persistentPre,
		l.runNode,
		l.postRun,
	}
	for _, fn := range stages {
		if err := fn(args); err != nil {
			return err
		}
	}

	return nil
}

func (l *NodeCommand) persistentPre([]string) (err error) {
	// ensure we cancel the context on error
	defer func() {
		if err != nil {
			l.cancel()
		}
	}()
	l.ctx, l.cancel = context.WithCancel(context.Background())

	// reload logger with the setup from configuration
	l.Log = logging.NewLoggerFromConfig(l.conf.Logging)

	l.Log.Info("Starting state proof service",
		logging.String("version", l.Version),
		logging.String("version-hash", l.VersionHash))

	operation := func() (opErr error) {
		l.Log.Info("Attempting to connect to the mirror node database...")
		l.connectionSource, opErr = sqlstore.NewConnectionSource(l.ctx, l.Log, l.conf.SQLStore.ConnectionConfig)
		if opErr == nil {
			opErr = l.connectionSource.Ping(l.ctx)
		}
		if opErr != nil {
			l.Log.Error("Failed to connect to the mirror node database, retrying...", logging.Error(opErr))
		}
		return opErr
	}

	retryConfig := l.conf.SQLStore.ConnectionRetryConfig

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = retryConfig.InitialInterval.Duration
	expBackoff.MaxInterval = retryConfig.MaxInterval.Duration
	expBackoff.MaxElapsedTime = retryConfig.MaxElapsedTime.Duration

	if err = backoff.Retry(operation, backoff.WithMaxRetries(expBackoff, retryConfig.MaxRetries)); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err = l.createStores(); err != nil {
		return err
	}

	bucket, err := objectstore.NewBucket(l.ctx, l.conf.ObjectStore)
	if err != nil {
		return fmt.Errorf("failed to create object store bucket: %w", err)
	}
	l.downloader = objectstore.NewDownloader(l.Log, l.conf.ObjectStore, bucket)

	l.stateProofService = stateproof.NewService(
		l.Log,
		l.conf.StateProof,
		l.transactionStore,
		l.recordFileStore,
		l.addressBookStore,
		l.downloader,
	)

	l.configWatcher.OnConfigUpdate(
		func(cfg config.Config) { l.transactionStore.ReloadConf(cfg.SQLStore) },
		func(cfg config.Config) { l.recordFileStore.ReloadConf(cfg.SQLStore) },
		func(cfg config.Config) { l.downloader.ReloadConf(cfg.ObjectStore) },
		func(cfg config.Config) { l.stateProofService.ReloadConf(cfg.StateProof) },
	)

	return nil
}

func (l *NodeCommand) createStores() error {
	l.transactionStore = sqlstore.NewTransactions(l.connectionSource, l.conf.SQLStore)
	l.recordFileStore = sqlstore.NewRecordFiles(l.connectionSource, l.conf.SQLStore)

	addressBookStore, err := sqlstore.NewAddressBooks(l.connectionSource, l.conf.SQLStore)
	if err != nil {
		return fmt.Errorf("failed to create address book store: %w", err)
	}
	l.addressBookStore = addressBookStore
	return nil
}

// runNode is the entry of node command.
func (l *NodeCommand) runNode([]string) error {
	defer l.cancel()

	ctx, cancel := context.WithCancel(l.ctx)
	eg, ctx := errgroup.WithContext(ctx)

	gty := gateway.New(l.Log, l.conf.Gateway, l.stateProofService)

	// watch configs
	l.configWatcher.OnConfigUpdate(
		func(cfg config.Config) { gty.ReloadConf(cfg.Gateway) },
	)

	eg.Go(func() error { return gty.Start() })
	eg.Go(func() error {
		<-ctx.Done()
		return gty.Stop()
	})

	// waitSig will wait for a sigterm or sigint interrupt.
	eg.Go(func() error {
		gracefulStop := make(chan os.Signal, 1)
		signal.Notify(gracefulStop, syscall.SIGTERM, syscall.SIGINT)

		select {
		case sig := <-gracefulStop:
			l.Log.Info("Caught signal", logging.String("name", fmt.Sprintf("%+v", sig)))
			cancel()
		case <-ctx.Done():
			return ctx.Err()
		}

		return nil
	})

	if err := metrics.Start(l.conf.Metrics); err != nil {
		cancel()
		return err
	}

	l.Log.Info("State proof service startup complete")

	err := eg.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func (l *NodeCommand) postRun([]string) error {
	if l.connectionSource != nil {
		l.connectionSource.Close()
	}
	l.Log.AtExit()
	return nil
}

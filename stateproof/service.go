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

package stateproof

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"code.vegaprotocol.io/stateproof/entities"
	"code.vegaprotocol.io/stateproof/logging"
	"code.vegaprotocol.io/stateproof/metrics"
	"code.vegaprotocol.io/stateproof/objectstore"
	"code.vegaprotocol.io/stateproof/recordfile"

	"golang.org/x/sync/errgroup"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/stores_mock.go -package mocks code.vegaprotocol.io/stateproof/stateproof TransactionStore,RecordFileStore,AddressBookStore,Downloader

type TransactionStore interface {
	GetSuccessfulConsensusTimestamp(ctx context.Context, txID entities.TransactionID, nonce int32, scheduled bool) (int64, error)
}

type RecordFileStore interface {
	GetByConsensusTimestamp(ctx context.Context, consensusTimestamp int64) (entities.RecordFileInfo, error)
}

type AddressBookStore interface {
	GetByConsensusTimestamp(ctx context.Context, consensusTimestamp int64) ([]string, []string, error)
}

type Downloader interface {
	FetchAll(ctx context.Context, partialPaths ...string) []objectstore.File
}

type Service struct {
	log          *logging.Logger
	transactions TransactionStore
	recordFiles  RecordFileStore
	addressBooks AddressBookStore
	downloader   Downloader

	mu     sync.RWMutex
	config Config
}

func NewService(
	log *logging.Logger,
	config Config,
	transactions TransactionStore,
	recordFiles RecordFileStore,
	addressBooks AddressBookStore,
	downloader Downloader,
) *Service {
	log = log.Named(namedLogger)
	log.SetLevel(config.Level.Get())

	return &Service{
		log:          log,
		transactions: transactions,
		recordFiles:  recordFiles,
		addressBooks: addressBooks,
		downloader:   downloader,
		config:       config,
	}
}

// ReloadConf updates the internal configuration.
func (s *Service) ReloadConf(cfg Config) {
	s.log.Info("reloading configuration")
	if s.log.GetLevel() != cfg.Level.Get() {
		s.log.Info("updating log level",
			logging.String("old", s.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		s.log.SetLevel(cfg.Level.Get())
	}

	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

// Build assembles the state proof of the transaction. When too few
// signature files can be downloaded the partially filled proof is returned
// along with ErrInsufficientSignatureFiles.
func (s *Service) Build(ctx context.Context, txID entities.TransactionID, nonce int32, scheduled bool) (*entities.StateProof, error) {
	proof, err := s.build(ctx, txID, nonce, scheduled)
	metrics.StateProofInc(outcome(err))
	return proof, err
}

func (s *Service) build(ctx context.Context, txID entities.TransactionID, nonce int32, scheduled bool) (*entities.StateProof, error) {
	s.mu.RLock()
	timeout := s.config.Timeout.Get()
	s.mu.RUnlock()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	consensusTimestamp, err := s.transactions.GetSuccessfulConsensusTimestamp(ctx, txID, nonce, scheduled)
	if err != nil {
		return nil, fmt.Errorf("resolving transaction %s: %w", txID, err)
	}

	var (
		recordFile     entities.RecordFileInfo
		addressBooks   []string
		nodeAccountIDs []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		recordFile, err = s.recordFiles.GetByConsensusTimestamp(gctx, consensusTimestamp)
		if err != nil {
			return fmt.Errorf("locating record file: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		addressBooks, nodeAccountIDs, err = s.addressBooks.GetByConsensusTimestamp(gctx, consensusTimestamp)
		if err != nil {
			return fmt.Errorf("resolving address books: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	partialPaths := make([]string, 0, len(nodeAccountIDs)+1)
	for _, id := range nodeAccountIDs {
		partialPaths = append(partialPaths, recordFile.SignatureFilePartialPath(id))
	}
	// an empty payload means the file content lives in the bucket only
	recordFileBytes := recordFile.Bytes
	downloadRecordFile := len(recordFileBytes) == 0
	if downloadRecordFile {
		partialPaths = append(partialPaths, recordFile.PartialPath())
	}

	signatureFiles := make(map[string]string, len(nodeAccountIDs))
	for _, f := range s.downloader.FetchAll(ctx, partialPaths...) {
		if downloadRecordFile && f.PartialPath == recordFile.PartialPath() {
			recordFileBytes = f.Data
			continue
		}
		signatureFiles[f.NodeAccountID()] = base64.StdEncoding.EncodeToString(f.Data)
	}

	s.log.Debug("downloaded signature files",
		logging.String("transaction-id", txID.String()),
		logging.String("record-file", recordFile.Name),
		logging.Int("signature-files", len(signatureFiles)),
		logging.Int("nodes", len(nodeAccountIDs)),
	)

	proof := &entities.StateProof{
		AddressBooks:   addressBooks,
		NodeAccountIDs: nodeAccountIDs,
		RecordFile:     recordFile,
		SignatureFiles: signatureFiles,
	}

	if !CanReachConsensus(len(signatureFiles), len(nodeAccountIDs)) {
		return proof, fmt.Errorf("%d of %d signature files for %s: %w",
			len(signatureFiles), len(nodeAccountIDs), recordFile.Name, entities.ErrInsufficientSignatureFiles)
	}
	if len(recordFileBytes) == 0 {
		return nil, fmt.Errorf("record file %s: %w", recordFile.PartialPath(), entities.ErrNotFound)
	}

	file, err := recordfile.Parse(recordFileBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrFormatting, err)
	}

	key := entities.TransactionKey{ID: txID, Nonce: nonce, Scheduled: scheduled}
	view, err := FormatRecordFile(file, key, file.Compactable())
	if err != nil {
		return nil, err
	}
	proof.CompactRecordFile = view.Compact
	proof.FullRecordFile = view.Full

	return proof, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, entities.ErrNotFound):
		return "not_found"
	case errors.Is(err, entities.ErrInsufficientSignatureFiles):
		return "insufficient_signature_files"
	default:
		return "error"
	}
}

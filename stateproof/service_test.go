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

package stateproof_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"code.vegaprotocol.io/stateproof/config/encoding"
	"code.vegaprotocol.io/stateproof/entities"
	"code.vegaprotocol.io/stateproof/logging"
	"code.vegaprotocol.io/stateproof/objectstore"
	"code.vegaprotocol.io/stateproof/stateproof"
	"code.vegaprotocol.io/stateproof/stateproof/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	consensusTimestamp = int64(1666670827022907003)
	recordFileName     = "2022-10-25T04_07_07.022907003Z.rcd"
)

var (
	nodeAccountIDs = []string{"0.0.3", "0.0.4", "0.0.5", "0.0.6"}
	addressBooks   = []string{"YWRkcmVzcyBib29rIDE=", "YWRkcmVzcyBib29rIDI="}
	txID           = entities.TransactionID{
		Payer:        entities.EntityID{Num: 1001},
		ValidStartNs: 1666670820000000001,
	}
)

type testService struct {
	*stateproof.Service
	ctx          context.Context
	ctrl         *gomock.Controller
	transactions *mocks.MockTransactionStore
	recordFiles  *mocks.MockRecordFileStore
	addressBooks *mocks.MockAddressBookStore
	downloader   *mocks.MockDownloader
}

func getTestService(t *testing.T) *testService {
	t.Helper()
	ctrl := gomock.NewController(t)
	transactions := mocks.NewMockTransactionStore(ctrl)
	recordFiles := mocks.NewMockRecordFileStore(ctrl)
	addressBookStore := mocks.NewMockAddressBookStore(ctrl)
	downloader := mocks.NewMockDownloader(ctrl)

	svc := stateproof.NewService(
		logging.NewTestLogger(),
		stateproof.NewDefaultConfig(),
		transactions,
		recordFiles,
		addressBookStore,
		downloader,
	)
	return &testService{
		Service:      svc,
		ctx:          context.Background(),
		ctrl:         ctrl,
		transactions: transactions,
		recordFiles:  recordFiles,
		addressBooks: addressBookStore,
		downloader:   downloader,
	}
}

func (s *testService) expectLookups(recordFile entities.RecordFileInfo) {
	s.transactions.EXPECT().
		GetSuccessfulConsensusTimestamp(gomock.Any(), txID, int32(0), false).
		Times(1).Return(consensusTimestamp, nil)
	s.recordFiles.EXPECT().
		GetByConsensusTimestamp(gomock.Any(), consensusTimestamp).
		Times(1).Return(recordFile, nil)
	s.addressBooks.EXPECT().
		GetByConsensusTimestamp(gomock.Any(), consensusTimestamp).
		Times(1).Return(addressBooks, nodeAccountIDs, nil)
}

// serve answers FetchAll with the content of the paths listed in objects,
// recording the paths it was asked for.
func (s *testService) serve(objects map[string][]byte, requested *[]string) {
	s.downloader.EXPECT().
		FetchAll(gomock.Any(), gomock.Any()).
		Times(1).
		DoAndReturn(func(_ context.Context, paths ...string) []objectstore.File {
			*requested = append(*requested, paths...)
			var files []objectstore.File
			for _, p := range paths {
				if data, ok := objects[p]; ok {
					files = append(files, objectstore.File{PartialPath: p, Data: data})
				}
			}
			return files
		})
}

func signatureFiles(nodes ...string) map[string][]byte {
	files := map[string][]byte{}
	for _, n := range nodes {
		files[n+"/"+recordFileName+"_sig"] = []byte("signature of " + n)
	}
	return files
}

func encodedSignatureFiles(nodes ...string) map[string]string {
	files := map[string]string{}
	for _, n := range nodes {
		files[n] = base64.StdEncoding.EncodeToString([]byte("signature of " + n))
	}
	return files
}

func versionTwoFile() []byte {
	b := binary.BigEndian.AppendUint32(nil, 2)
	return append(b, []byte("version 2 content")...)
}

func hashObject(fill byte) []byte {
	b := binary.BigEndian.AppendUint64(nil, 0xf422da83a251741e)
	b = binary.BigEndian.AppendUint32(b, 1)
	b = binary.BigEndian.AppendUint32(b, 0x58ff811b)
	b = binary.BigEndian.AppendUint32(b, 48)
	return append(b, bytes.Repeat([]byte{fill}, 48)...)
}

func recordStreamObject(id entities.TransactionID) []byte {
	var ts, account, transactionID, record []byte
	ts = protowire.AppendTag(ts, 1, protowire.VarintType)
	ts = protowire.AppendVarint(ts, uint64(id.ValidStartNs/1_000_000_000))
	ts = protowire.AppendTag(ts, 2, protowire.VarintType)
	ts = protowire.AppendVarint(ts, uint64(id.ValidStartNs%1_000_000_000))
	account = protowire.AppendTag(account, 3, protowire.VarintType)
	account = protowire.AppendVarint(account, uint64(id.Payer.Num))
	transactionID = protowire.AppendTag(transactionID, 1, protowire.BytesType)
	transactionID = protowire.AppendBytes(transactionID, ts)
	transactionID = protowire.AppendTag(transactionID, 2, protowire.BytesType)
	transactionID = protowire.AppendBytes(transactionID, account)
	record = protowire.AppendTag(record, 4, protowire.BytesType)
	record = protowire.AppendBytes(record, transactionID)

	b := binary.BigEndian.AppendUint64(nil, 0xe370929ba5429d8b)
	b = binary.BigEndian.AppendUint32(b, 1)
	b = binary.BigEndian.AppendUint32(b, uint32(len(record)))
	b = append(b, record...)
	b = binary.BigEndian.AppendUint32(b, 2)
	return append(b, 't', 'x')
}

func versionFiveFile(ids ...entities.TransactionID) []byte {
	b := binary.BigEndian.AppendUint32(nil, 5)
	b = binary.BigEndian.AppendUint32(b, 0)
	b = binary.BigEndian.AppendUint32(b, 30)
	b = binary.BigEndian.AppendUint32(b, 0)
	b = append(b, hashObject(1)...)
	for _, id := range ids {
		b = append(b, recordStreamObject(id)...)
	}
	return append(b, hashObject(2)...)
}

func TestBuild(t *testing.T) {
	t.Run("Record file stored inline", testBuildInlineRecordFile)
	t.Run("Record file downloaded and compacted", testBuildDownloadedRecordFile)
	t.Run("Empty inline record file is downloaded", testBuildEmptyInlineRecordFile)
	t.Run("Failed nodes are left out", testBuildWithFailedNodes)
	t.Run("Insufficient signature files", testBuildInsufficientSignatureFiles)
	t.Run("Record file can't be downloaded", testBuildRecordFileNotDownloaded)
	t.Run("Transaction missing from compactable record file", testBuildTransactionMissingFromRecordFile)
	t.Run("Corrupted record file", testBuildCorruptedRecordFile)
	t.Run("Transaction not found", testBuildTransactionNotFound)
	t.Run("Record file not found", testBuildRecordFileNotFound)
	t.Run("Inconsistent address book", testBuildInconsistentAddressBook)
}

func testBuildInlineRecordFile(t *testing.T) {
	svc := getTestService(t)
	recordFile := entities.RecordFileInfo{
		Name:          recordFileName,
		Bytes:         versionTwoFile(),
		NodeAccountID: "0.0.3",
		Version:       2,
	}
	svc.expectLookups(recordFile)
	var requested []string
	svc.serve(signatureFiles(nodeAccountIDs...), &requested)

	proof, err := svc.Build(svc.ctx, txID, 0, false)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"0.0.3/" + recordFileName + "_sig",
		"0.0.4/" + recordFileName + "_sig",
		"0.0.5/" + recordFileName + "_sig",
		"0.0.6/" + recordFileName + "_sig",
	}, requested)
	assert.Equal(t, addressBooks, proof.AddressBooks)
	assert.Equal(t, nodeAccountIDs, proof.NodeAccountIDs)
	assert.Equal(t, recordFile, proof.RecordFile)
	assert.Equal(t, encodedSignatureFiles(nodeAccountIDs...), proof.SignatureFiles)
	assert.Nil(t, proof.CompactRecordFile)
	assert.Equal(t, base64.StdEncoding.EncodeToString(versionTwoFile()), proof.FullRecordFile)
}

func testBuildDownloadedRecordFile(t *testing.T) {
	svc := getTestService(t)
	other := entities.TransactionID{Payer: entities.EntityID{Num: 98}, ValidStartNs: txID.ValidStartNs}
	raw := versionFiveFile(other, txID, other)
	recordFile := entities.RecordFileInfo{
		Name:          recordFileName,
		NodeAccountID: "0.0.4",
		Version:       5,
	}
	svc.expectLookups(recordFile)

	objects := signatureFiles(nodeAccountIDs...)
	objects["0.0.4/"+recordFileName] = raw
	var requested []string
	svc.serve(objects, &requested)

	proof, err := svc.Build(svc.ctx, txID, 0, false)
	require.NoError(t, err)

	assert.Len(t, requested, 5)
	assert.Contains(t, requested, "0.0.4/"+recordFileName)
	assert.Equal(t, encodedSignatureFiles(nodeAccountIDs...), proof.SignatureFiles)
	assert.Empty(t, proof.FullRecordFile)
	require.NotNil(t, proof.CompactRecordFile)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw[:16]), proof.CompactRecordFile.Head)
	assert.Equal(t, base64.StdEncoding.EncodeToString(hashObject(1)), proof.CompactRecordFile.StartRunningHashObject)
	assert.Equal(t, base64.StdEncoding.EncodeToString(recordStreamObject(txID)), proof.CompactRecordFile.RecordStreamObject)
	assert.Len(t, proof.CompactRecordFile.HashesBefore, 1)
	assert.Len(t, proof.CompactRecordFile.HashesAfter, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString(hashObject(2)), proof.CompactRecordFile.EndRunningHashObject)
}

func testBuildEmptyInlineRecordFile(t *testing.T) {
	svc := getTestService(t)
	raw := versionFiveFile(txID)
	recordFile := entities.RecordFileInfo{
		Name:          recordFileName,
		Bytes:         []byte{},
		NodeAccountID: "0.0.3",
		Version:       5,
	}
	svc.expectLookups(recordFile)

	objects := signatureFiles(nodeAccountIDs...)
	objects["0.0.3/"+recordFileName] = raw
	var requested []string
	svc.serve(objects, &requested)

	proof, err := svc.Build(svc.ctx, txID, 0, false)
	require.NoError(t, err)

	assert.Len(t, requested, 5)
	assert.Contains(t, requested, "0.0.3/"+recordFileName)
	assert.Equal(t, encodedSignatureFiles(nodeAccountIDs...), proof.SignatureFiles)
	require.NotNil(t, proof.CompactRecordFile)
	assert.Equal(t, base64.StdEncoding.EncodeToString(recordStreamObject(txID)), proof.CompactRecordFile.RecordStreamObject)
	assert.Empty(t, proof.CompactRecordFile.HashesBefore)
	assert.Empty(t, proof.CompactRecordFile.HashesAfter)
}

func testBuildWithFailedNodes(t *testing.T) {
	svc := getTestService(t)
	svc.expectLookups(entities.RecordFileInfo{
		Name:          recordFileName,
		Bytes:         versionTwoFile(),
		NodeAccountID: "0.0.3",
		Version:       2,
	})
	var requested []string
	svc.serve(signatureFiles("0.0.4", "0.0.6"), &requested)

	proof, err := svc.Build(svc.ctx, txID, 0, false)
	require.NoError(t, err)
	assert.Equal(t, encodedSignatureFiles("0.0.4", "0.0.6"), proof.SignatureFiles)
}

func testBuildInsufficientSignatureFiles(t *testing.T) {
	svc := getTestService(t)
	recordFile := entities.RecordFileInfo{
		Name:          recordFileName,
		Bytes:         versionTwoFile(),
		NodeAccountID: "0.0.3",
		Version:       2,
	}
	svc.expectLookups(recordFile)
	var requested []string
	svc.serve(signatureFiles("0.0.5"), &requested)

	proof, err := svc.Build(svc.ctx, txID, 0, false)
	assert.ErrorIs(t, err, entities.ErrInsufficientSignatureFiles)
	require.NotNil(t, proof)
	assert.Equal(t, addressBooks, proof.AddressBooks)
	assert.Equal(t, nodeAccountIDs, proof.NodeAccountIDs)
	assert.Equal(t, recordFile, proof.RecordFile)
	assert.Equal(t, encodedSignatureFiles("0.0.5"), proof.SignatureFiles)
	assert.Empty(t, proof.FullRecordFile)
}

func testBuildRecordFileNotDownloaded(t *testing.T) {
	svc := getTestService(t)
	svc.expectLookups(entities.RecordFileInfo{
		Name:          recordFileName,
		NodeAccountID: "0.0.3",
		Version:       5,
	})
	var requested []string
	svc.serve(signatureFiles(nodeAccountIDs...), &requested)

	proof, err := svc.Build(svc.ctx, txID, 0, false)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Nil(t, proof)
	assert.Contains(t, requested, "0.0.3/"+recordFileName)
}

func testBuildTransactionMissingFromRecordFile(t *testing.T) {
	svc := getTestService(t)
	other := entities.TransactionID{Payer: entities.EntityID{Num: 98}, ValidStartNs: txID.ValidStartNs}
	svc.expectLookups(entities.RecordFileInfo{
		Name:          recordFileName,
		Bytes:         versionFiveFile(other),
		NodeAccountID: "0.0.3",
		Version:       5,
	})
	var requested []string
	svc.serve(signatureFiles(nodeAccountIDs...), &requested)

	_, err := svc.Build(svc.ctx, txID, 0, false)
	assert.ErrorIs(t, err, entities.ErrFormatting)
}

func testBuildCorruptedRecordFile(t *testing.T) {
	svc := getTestService(t)
	raw := versionFiveFile(txID)
	svc.expectLookups(entities.RecordFileInfo{
		Name:          recordFileName,
		Bytes:         raw[:len(raw)-10],
		NodeAccountID: "0.0.3",
		Version:       5,
	})
	var requested []string
	svc.serve(signatureFiles(nodeAccountIDs...), &requested)

	_, err := svc.Build(svc.ctx, txID, 0, false)
	assert.ErrorIs(t, err, entities.ErrFormatting)
}

func testBuildTransactionNotFound(t *testing.T) {
	svc := getTestService(t)
	svc.transactions.EXPECT().
		GetSuccessfulConsensusTimestamp(gomock.Any(), txID, int32(1), true).
		Times(1).Return(int64(0), entities.ErrNotFound)

	proof, err := svc.Build(svc.ctx, txID, 1, true)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Nil(t, proof)
}

func testBuildRecordFileNotFound(t *testing.T) {
	svc := getTestService(t)
	svc.transactions.EXPECT().
		GetSuccessfulConsensusTimestamp(gomock.Any(), txID, int32(0), false).
		Times(1).Return(consensusTimestamp, nil)
	svc.recordFiles.EXPECT().
		GetByConsensusTimestamp(gomock.Any(), consensusTimestamp).
		Times(1).Return(entities.RecordFileInfo{}, entities.ErrNotFound)
	svc.addressBooks.EXPECT().
		GetByConsensusTimestamp(gomock.Any(), consensusTimestamp).
		AnyTimes().Return(addressBooks, nodeAccountIDs, nil)

	proof, err := svc.Build(svc.ctx, txID, 0, false)
	assert.ErrorIs(t, err, entities.ErrNotFound)
	assert.Nil(t, proof)
}

func testBuildInconsistentAddressBook(t *testing.T) {
	svc := getTestService(t)
	svc.transactions.EXPECT().
		GetSuccessfulConsensusTimestamp(gomock.Any(), txID, int32(0), false).
		Times(1).Return(consensusTimestamp, nil)
	svc.recordFiles.EXPECT().
		GetByConsensusTimestamp(gomock.Any(), consensusTimestamp).
		AnyTimes().Return(entities.RecordFileInfo{Name: recordFileName, NodeAccountID: "0.0.3"}, nil)
	svc.addressBooks.EXPECT().
		GetByConsensusTimestamp(gomock.Any(), consensusTimestamp).
		Times(1).Return(nil, nil, entities.ErrAddressBookInconsistent)

	proof, err := svc.Build(svc.ctx, txID, 0, false)
	assert.ErrorIs(t, err, entities.ErrAddressBookInconsistent)
	assert.Nil(t, proof)
}

func TestBuildStoreErrorsPropagate(t *testing.T) {
	svc := getTestService(t)
	dbErr := errors.New("connection refused")
	svc.transactions.EXPECT().
		GetSuccessfulConsensusTimestamp(gomock.Any(), txID, int32(0), false).
		Times(1).Return(int64(0), dbErr)

	_, err := svc.Build(svc.ctx, txID, 0, false)
	assert.ErrorIs(t, err, dbErr)
}

func TestBuildTimeout(t *testing.T) {
	svc := getTestService(t)
	cfg := stateproof.NewDefaultConfig()
	cfg.Timeout = encoding.Duration{Duration: time.Millisecond}
	svc.ReloadConf(cfg)

	svc.transactions.EXPECT().
		GetSuccessfulConsensusTimestamp(gomock.Any(), txID, int32(0), false).
		Times(1).
		DoAndReturn(func(ctx context.Context, _ entities.TransactionID, _ int32, _ bool) (int64, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})

	_, err := svc.Build(svc.ctx, txID, 0, false)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReloadConf(t *testing.T) {
	svc := getTestService(t)
	cfg := stateproof.NewDefaultConfig()
	cfg.Level.Level = logging.DebugLevel
	svc.ReloadConf(cfg)
	cfg.Level.Level = logging.InfoLevel
	svc.ReloadConf(cfg)
}

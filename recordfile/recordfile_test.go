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

package recordfile_test

import (
	"testing"

	"code.vegaprotocol.io/stateproof/recordfile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Version 5 files are compactable", testParseVersion5)
	t.Run("Other versions are kept whole", testParseOtherVersions)
	t.Run("Truncated files are refused", testParseTruncated)
	t.Run("Missing end running hash", testParseMissingEndRunningHash)
	t.Run("Missing start running hash", testParseMissingStartRunningHash)
	t.Run("Trailing bytes after end running hash", testParseTrailingBytes)
	t.Run("Unknown class id", testParseUnknownClassID)
}

func testParseVersion5(t *testing.T) {
	raw := v5File(
		testRecord{key: key(1001, 1_234_567_890_000_000_001, 0, false), transaction: []byte("tx 1")},
		testRecord{key: key(1002, 1_234_567_890_000_000_002, 0, false), transaction: []byte("tx 2")},
	)

	f, err := recordfile.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, int32(5), f.Version())
	assert.True(t, f.Compactable())
	assert.Equal(t, 2, f.Count())
	assert.Equal(t, raw, f.Bytes())
}

func testParseOtherVersions(t *testing.T) {
	for _, version := range []uint32{1, 2, 6} {
		raw := append(head(version), []byte("opaque content")...)
		f, err := recordfile.Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, int32(version), f.Version())
		assert.False(t, f.Compactable())
		assert.Equal(t, 0, f.Count())
		assert.Equal(t, raw, f.Bytes())

		_, err = f.ToCompactObject(key(1001, 1, 0, false))
		assert.ErrorIs(t, err, recordfile.ErrNotCompactable)
	}
}

func testParseTruncated(t *testing.T) {
	_, err := recordfile.Parse([]byte{0, 0})
	assert.ErrorIs(t, err, recordfile.ErrTruncated)

	raw := v5File(testRecord{key: key(1001, 1, 0, false), transaction: []byte("tx")})
	_, err = recordfile.Parse(raw[:len(raw)-60])
	assert.ErrorIs(t, err, recordfile.ErrTruncated)
}

func testParseMissingEndRunningHash(t *testing.T) {
	raw := head(5)
	raw = append(raw, hashObject(0x01)...)
	raw = append(raw, recordStreamObject(testRecord{key: key(1001, 1, 0, false)})...)

	_, err := recordfile.Parse(raw)
	assert.ErrorIs(t, err, recordfile.ErrMissingRunningHash)
}

func testParseMissingStartRunningHash(t *testing.T) {
	raw := head(5)
	raw = append(raw, recordStreamObject(testRecord{key: key(1001, 1, 0, false)})...)
	raw = append(raw, hashObject(0x02)...)

	_, err := recordfile.Parse(raw)
	assert.ErrorIs(t, err, recordfile.ErrMissingRunningHash)
}

func testParseTrailingBytes(t *testing.T) {
	raw := append(v5File(), 0x00)

	_, err := recordfile.Parse(raw)
	assert.Error(t, err)
}

func testParseUnknownClassID(t *testing.T) {
	raw := head(5)
	raw = append(raw, hashObject(0x01)...)
	raw = append(raw, 0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 1)
	raw = append(raw, hashObject(0x02)...)

	_, err := recordfile.Parse(raw)
	assert.Error(t, err)
}

func TestToCompactObject(t *testing.T) {
	records := []testRecord{
		{key: key(1001, 1_234_567_890_000_000_001, 0, false), transaction: []byte("tx 1")},
		{key: key(1002, 1_234_567_890_000_000_002, 0, false), transaction: []byte("tx 2")},
		{key: key(1002, 1_234_567_890_000_000_002, 1, false), transaction: []byte("child")},
		{key: key(1002, 1_234_567_890_000_000_002, 0, true), transaction: []byte("scheduled")},
		{key: key(1003, 1_234_567_890_000_000_003, 0, false), transaction: []byte("tx 3")},
	}
	f, err := recordfile.Parse(v5File(records...))
	require.NoError(t, err)

	for i, r := range records {
		compact, err := f.ToCompactObject(r.key)
		require.NoError(t, err, "record %d", i)

		assert.Equal(t, head(5), compact.Head)
		assert.Equal(t, hashObject(0x01), compact.StartRunningHashObject)
		assert.Equal(t, hashObject(0x02), compact.EndRunningHashObject)
		assert.Equal(t, recordStreamObject(r), compact.RecordStreamObject)

		require.Len(t, compact.HashesBefore, i)
		for j, h := range compact.HashesBefore {
			assert.Equal(t, sha384(recordStreamObject(records[j])), h)
		}
		require.Len(t, compact.HashesAfter, len(records)-i-1)
		for j, h := range compact.HashesAfter {
			assert.Equal(t, sha384(recordStreamObject(records[i+1+j])), h)
		}
	}
}

func TestToCompactObjectTransactionNotFound(t *testing.T) {
	f, err := recordfile.Parse(v5File(
		testRecord{key: key(1001, 1_234_567_890_000_000_001, 0, false), transaction: []byte("tx 1")},
	))
	require.NoError(t, err)

	for _, k := range []struct {
		name string
		num  int64
		ts   int64
		n    int32
		s    bool
	}{
		{"other payer", 1002, 1_234_567_890_000_000_001, 0, false},
		{"other valid start", 1001, 1_234_567_890_000_000_002, 0, false},
		{"other nonce", 1001, 1_234_567_890_000_000_001, 1, false},
		{"scheduled", 1001, 1_234_567_890_000_000_001, 0, true},
	} {
		_, err := f.ToCompactObject(key(k.num, k.ts, k.n, k.s))
		assert.ErrorIs(t, err, recordfile.ErrTransactionNotFound, k.name)
	}
}

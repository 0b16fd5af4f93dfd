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
	"encoding/base64"
	"errors"
	"testing"

	"code.vegaprotocol.io/stateproof/entities"
	"code.vegaprotocol.io/stateproof/recordfile"
	"code.vegaprotocol.io/stateproof/stateproof"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecordFile struct {
	raw     []byte
	compact *recordfile.Compact
	err     error
	keys    []entities.TransactionKey
}

func (s *stubRecordFile) Bytes() []byte {
	return s.raw
}

func (s *stubRecordFile) ToCompactObject(key entities.TransactionKey) (*recordfile.Compact, error) {
	s.keys = append(s.keys, key)
	return s.compact, s.err
}

func b64(b ...byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func TestFormatRecordFile(t *testing.T) {
	key := entities.TransactionKey{
		ID: entities.TransactionID{
			Payer:        entities.EntityID{Num: 1},
			ValidStartNs: 123_012_345_678,
		},
	}

	t.Run("Compact projection", func(t *testing.T) {
		stub := &stubRecordFile{
			compact: &recordfile.Compact{
				Head:                   []byte{1},
				StartRunningHashObject: []byte{2},
				HashesBefore:           [][]byte{{3}},
				RecordStreamObject:     []byte{4},
				HashesAfter:            [][]byte{{5}},
				EndRunningHashObject:   []byte{6},
			},
		}

		view, err := stateproof.FormatRecordFile(stub, key, true)
		require.NoError(t, err)
		assert.Empty(t, view.Full)
		assert.Equal(t, &entities.CompactRecordFile{
			Head:                   b64(1),
			StartRunningHashObject: b64(2),
			HashesBefore:           []string{b64(3)},
			RecordStreamObject:     b64(4),
			HashesAfter:            []string{b64(5)},
			EndRunningHashObject:   b64(6),
		}, view.Compact)
		assert.Equal(t, []entities.TransactionKey{key}, stub.keys)
	})

	t.Run("Empty hash lists", func(t *testing.T) {
		stub := &stubRecordFile{
			compact: &recordfile.Compact{Head: []byte{1}},
		}

		view, err := stateproof.FormatRecordFile(stub, key, true)
		require.NoError(t, err)
		assert.NotNil(t, view.Compact.HashesBefore)
		assert.Empty(t, view.Compact.HashesBefore)
		assert.Empty(t, view.Compact.HashesAfter)
	})

	t.Run("Whole file", func(t *testing.T) {
		stub := &stubRecordFile{raw: []byte{0, 0, 0, 2, 9, 9}}

		view, err := stateproof.FormatRecordFile(stub, key, false)
		require.NoError(t, err)
		assert.Nil(t, view.Compact)
		assert.Equal(t, b64(0, 0, 0, 2, 9, 9), view.Full)
		assert.Empty(t, stub.keys)
	})

	t.Run("Projection failure", func(t *testing.T) {
		cause := errors.New("oops")
		stub := &stubRecordFile{err: cause}

		_, err := stateproof.FormatRecordFile(stub, key, true)
		assert.ErrorIs(t, err, entities.ErrFormatting)
		assert.ErrorIs(t, err, cause)
	})
}

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

package entities_test

import (
	"testing"

	"code.vegaprotocol.io/stateproof/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityID(t *testing.T) {
	t.Run("canonical and encoded forms agree", testEntityIDForms)
	t.Run("invalid ids are rejected", testEntityIDInvalid)
}

func testEntityIDForms(t *testing.T) {
	id, err := entities.ParseEntityID("0.0.3")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id.EncodedID())

	fromEncoded, err := entities.ParseEntityID("3")
	require.NoError(t, err)
	assert.Equal(t, id, fromEncoded)
	assert.Equal(t, "0.0.3", fromEncoded.String())

	big, err := entities.NewEntityID(1, 2, 3)
	require.NoError(t, err)
	decoded, err := entities.EntityIDFromEncoded(big.EncodedID())
	require.NoError(t, err)
	assert.Equal(t, big, decoded)
	assert.Equal(t, "1.2.3", decoded.String())
}

func testEntityIDInvalid(t *testing.T) {
	for _, s := range []string{"", "0.0", "a.b.c", "0.0.-1", "-5", "1024.0.1", "0.65536.1"} {
		_, err := entities.ParseEntityID(s)
		assert.ErrorIs(t, err, entities.ErrInvalidID, s)
	}
}

func TestParseTransactionID(t *testing.T) {
	id, err := entities.ParseTransactionID("0.0.1-1234567891-000111222")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.Payer.Num)
	assert.Equal(t, int64(1234567891000111222), id.ValidStartNs)
	assert.Equal(t, "0.0.1-1234567891-000111222", id.String())

	sdk, err := entities.ParseTransactionID("0.0.1@1234567891.000111222")
	require.NoError(t, err)
	assert.Equal(t, id, sdk)

	for _, s := range []string{
		"0.0.1",
		"0.0.1-1234567891",
		"1-1234567891-000111222",
		"0.0.1-abc-000111222",
		"0.0.1-1234567891-0001112223",
		"0.0.1@1234567891",
	} {
		_, err := entities.ParseTransactionID(s)
		assert.ErrorIs(t, err, entities.ErrInvalidID, s)
	}
}

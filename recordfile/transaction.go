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

package recordfile

import (
	"fmt"

	"code.vegaprotocol.io/stateproof/entities"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the hapi messages read from a TransactionRecord.
const (
	transactionRecordTransactionIDField protowire.Number = 4

	transactionIDValidStartField protowire.Number = 1
	transactionIDAccountIDField  protowire.Number = 2
	transactionIDScheduledField  protowire.Number = 3
	transactionIDNonceField      protowire.Number = 4

	timestampSecondsField protowire.Number = 1
	timestampNanosField   protowire.Number = 2

	accountIDShardField protowire.Number = 1
	accountIDRealmField protowire.Number = 2
	accountIDNumField   protowire.Number = 3
)

type recordTransactionID struct {
	payer        entities.EntityID
	validStartNs int64
	nonce        int32
	scheduled    bool
}

func (id recordTransactionID) matches(key entities.TransactionKey) bool {
	return id.payer == key.ID.Payer &&
		id.validStartNs == key.ID.ValidStartNs &&
		id.nonce == key.Nonce &&
		id.scheduled == key.Scheduled
}

// decodeRecordTransactionID extracts the transaction id of a serialized
// TransactionRecord.
func decodeRecordTransactionID(record []byte) (recordTransactionID, error) {
	var id recordTransactionID
	err := walkFields(record, func(num protowire.Number, typ protowire.Type, value []byte, _ uint64) error {
		if num != transactionRecordTransactionIDField || typ != protowire.BytesType {
			return nil
		}
		return walkFields(value, func(num protowire.Number, typ protowire.Type, value []byte, v uint64) error {
			switch {
			case num == transactionIDValidStartField && typ == protowire.BytesType:
				ns, err := decodeTimestamp(value)
				if err != nil {
					return err
				}
				id.validStartNs = ns
			case num == transactionIDAccountIDField && typ == protowire.BytesType:
				payer, err := decodeAccountID(value)
				if err != nil {
					return err
				}
				id.payer = payer
			case num == transactionIDScheduledField && typ == protowire.VarintType:
				id.scheduled = protowire.DecodeBool(v)
			case num == transactionIDNonceField && typ == protowire.VarintType:
				id.nonce = int32(v)
			}
			return nil
		})
	})
	return id, err
}

func decodeTimestamp(b []byte) (int64, error) {
	var seconds, nanos int64
	err := walkFields(b, func(num protowire.Number, typ protowire.Type, _ []byte, v uint64) error {
		if typ != protowire.VarintType {
			return nil
		}
		switch num {
		case timestampSecondsField:
			seconds = int64(v)
		case timestampNanosField:
			nanos = int64(int32(v))
		}
		return nil
	})
	return seconds*1_000_000_000 + nanos, err
}

func decodeAccountID(b []byte) (entities.EntityID, error) {
	var id entities.EntityID
	err := walkFields(b, func(n protowire.Number, typ protowire.Type, _ []byte, v uint64) error {
		if typ != protowire.VarintType {
			return nil
		}
		switch n {
		case accountIDShardField:
			id.Shard = int64(v)
		case accountIDRealmField:
			id.Realm = int64(v)
		case accountIDNumField:
			id.Num = int64(v)
		}
		return nil
	})
	return id, err
}

// walkFields calls fn for every top level field of a protobuf message.
// Length delimited fields are passed as value, varints as v.
func walkFields(b []byte, fn func(num protowire.Number, typ protowire.Type, value []byte, v uint64) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return fmt.Errorf("invalid protobuf tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		var (
			value []byte
			v     uint64
		)
		switch typ {
		case protowire.VarintType:
			v, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			value, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return fmt.Errorf("invalid protobuf field %d: %w", num, protowire.ParseError(n))
		}
		b = b[n:]

		if err := fn(num, typ, value, v); err != nil {
			return err
		}
	}
	return nil
}

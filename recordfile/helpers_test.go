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
	"bytes"
	"crypto/sha512"
	"encoding/binary"

	"code.vegaprotocol.io/stateproof/entities"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	hashClassID               uint64 = 0xf422da83a251741e
	recordStreamObjectClassID uint64 = 0xe370929ba5429d8b
	sha384DigestType          uint32 = 0x58ff811b
)

type testRecord struct {
	key         entities.TransactionKey
	transaction []byte
}

func head(version uint32) []byte {
	b := binary.BigEndian.AppendUint32(nil, version)
	b = binary.BigEndian.AppendUint32(b, 0)
	b = binary.BigEndian.AppendUint32(b, 23)
	return binary.BigEndian.AppendUint32(b, 1)
}

func hashObject(fill byte) []byte {
	b := binary.BigEndian.AppendUint64(nil, hashClassID)
	b = binary.BigEndian.AppendUint32(b, 1)
	b = binary.BigEndian.AppendUint32(b, sha384DigestType)
	b = binary.BigEndian.AppendUint32(b, 48)
	return append(b, bytes.Repeat([]byte{fill}, 48)...)
}

func transactionRecord(key entities.TransactionKey) []byte {
	var ts []byte
	ts = protowire.AppendTag(ts, 1, protowire.VarintType)
	ts = protowire.AppendVarint(ts, uint64(key.ID.ValidStartNs/1_000_000_000))
	ts = protowire.AppendTag(ts, 2, protowire.VarintType)
	ts = protowire.AppendVarint(ts, uint64(key.ID.ValidStartNs%1_000_000_000))

	var account []byte
	account = protowire.AppendTag(account, 1, protowire.VarintType)
	account = protowire.AppendVarint(account, uint64(key.ID.Payer.Shard))
	account = protowire.AppendTag(account, 2, protowire.VarintType)
	account = protowire.AppendVarint(account, uint64(key.ID.Payer.Realm))
	account = protowire.AppendTag(account, 3, protowire.VarintType)
	account = protowire.AppendVarint(account, uint64(key.ID.Payer.Num))

	var txID []byte
	txID = protowire.AppendTag(txID, 1, protowire.BytesType)
	txID = protowire.AppendBytes(txID, ts)
	txID = protowire.AppendTag(txID, 2, protowire.BytesType)
	txID = protowire.AppendBytes(txID, account)
	if key.Scheduled {
		txID = protowire.AppendTag(txID, 3, protowire.VarintType)
		txID = protowire.AppendVarint(txID, protowire.EncodeBool(true))
	}
	if key.Nonce != 0 {
		txID = protowire.AppendTag(txID, 4, protowire.VarintType)
		txID = protowire.AppendVarint(txID, uint64(key.Nonce))
	}

	var record []byte
	// receipt and transaction hash come before the id in real records
	record = protowire.AppendTag(record, 1, protowire.BytesType)
	record = protowire.AppendBytes(record, []byte{0x08, 0x16})
	record = protowire.AppendTag(record, 2, protowire.BytesType)
	record = protowire.AppendBytes(record, bytes.Repeat([]byte{0xab}, 48))
	record = protowire.AppendTag(record, 4, protowire.BytesType)
	record = protowire.AppendBytes(record, txID)
	record = protowire.AppendTag(record, 5, protowire.BytesType)
	return protowire.AppendString(record, "memo")
}

func recordStreamObject(r testRecord) []byte {
	record := transactionRecord(r.key)
	b := binary.BigEndian.AppendUint64(nil, recordStreamObjectClassID)
	b = binary.BigEndian.AppendUint32(b, 1)
	b = binary.BigEndian.AppendUint32(b, uint32(len(record)))
	b = append(b, record...)
	b = binary.BigEndian.AppendUint32(b, uint32(len(r.transaction)))
	return append(b, r.transaction...)
}

func v5File(records ...testRecord) []byte {
	b := head(5)
	b = append(b, hashObject(0x01)...)
	for _, r := range records {
		b = append(b, recordStreamObject(r)...)
	}
	return append(b, hashObject(0x02)...)
}

func sha384(b []byte) []byte {
	sum := sha512.Sum384(b)
	return sum[:]
}

func key(num int64, validStartNs int64, nonce int32, scheduled bool) entities.TransactionKey {
	return entities.TransactionKey{
		ID: entities.TransactionID{
			Payer:        entities.EntityID{Num: num},
			ValidStartNs: validStartNs,
		},
		Nonce:     nonce,
		Scheduled: scheduled,
	}
}

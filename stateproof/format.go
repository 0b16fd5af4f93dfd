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
	"encoding/base64"
	"fmt"

	"code.vegaprotocol.io/stateproof/entities"
	"code.vegaprotocol.io/stateproof/recordfile"
)

// CompactableRecordFile is a record file which may be projected around one
// of its transactions.
type CompactableRecordFile interface {
	Bytes() []byte
	ToCompactObject(key entities.TransactionKey) (*recordfile.Compact, error)
}

// FormatRecordFile renders the record file for the state proof: the compact
// projection around the transaction when compact is set, the whole file
// otherwise.
func FormatRecordFile(file CompactableRecordFile, key entities.TransactionKey, compact bool) (entities.RecordFileView, error) {
	if !compact {
		return entities.RecordFileView{
			Full: base64.StdEncoding.EncodeToString(file.Bytes()),
		}, nil
	}

	c, err := file.ToCompactObject(key)
	if err != nil {
		return entities.RecordFileView{}, fmt.Errorf("%w: %w", entities.ErrFormatting, err)
	}

	return entities.RecordFileView{
		Compact: &entities.CompactRecordFile{
			Head:                   encode(c.Head),
			StartRunningHashObject: encode(c.StartRunningHashObject),
			HashesBefore:           encodeAll(c.HashesBefore),
			RecordStreamObject:     encode(c.RecordStreamObject),
			HashesAfter:            encodeAll(c.HashesAfter),
			EndRunningHashObject:   encode(c.EndRunningHashObject),
		},
	}, nil
}

func encode(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func encodeAll(bs [][]byte) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		out = append(out, encode(b))
	}
	return out
}

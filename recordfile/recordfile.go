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
	"encoding/binary"

	"github.com/pkg/errors"
)

// CompactableVersion is the only record stream version with a compact form.
const CompactableVersion int32 = 5

var (
	ErrTruncated           = errors.New("record file is truncated")
	ErrNotCompactable      = errors.New("record file version has no compact form")
	ErrTransactionNotFound = errors.New("transaction not found in record file")
	ErrMissingRunningHash  = errors.New("record file is missing a running hash object")
)

// Compact is the projection of a record file around a single record stream
// object. The other objects are replaced by their hashes.
type Compact struct {
	Head                   []byte
	StartRunningHashObject []byte
	HashesBefore           [][]byte
	RecordStreamObject     []byte
	HashesAfter            [][]byte
	EndRunningHashObject   []byte
}

// File is a parsed record file.
type File struct {
	version int32
	raw     []byte
	v5      *v5File
}

// Parse reads the version of the record file and, when the version has a
// compact form, its objects.
func Parse(raw []byte) (*File, error) {
	if len(raw) < 4 {
		return nil, errors.Wrap(ErrTruncated, "reading version")
	}
	f := &File{
		version: int32(binary.BigEndian.Uint32(raw)),
		raw:     raw,
	}
	if f.version != CompactableVersion {
		return f, nil
	}

	v5, err := parseV5(raw)
	if err != nil {
		return nil, errors.Wrap(err, "parsing version 5 record file")
	}
	f.v5 = v5
	return f, nil
}

func (f *File) Version() int32 {
	return f.version
}

// Bytes returns the file as it was read.
func (f *File) Bytes() []byte {
	return f.raw
}

func (f *File) Compactable() bool {
	return f.v5 != nil
}

// Count is the number of record stream objects in a compactable file.
func (f *File) Count() int {
	if f.v5 == nil {
		return 0
	}
	return len(f.v5.objects)
}

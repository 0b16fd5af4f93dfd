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
	"crypto/sha512"
	"fmt"

	"code.vegaprotocol.io/stateproof/entities"

	"github.com/pkg/errors"
)

const (
	hashClassID                    uint64 = 0xf422da83a251741e
	hashClassVersion               int32  = 1
	recordStreamObjectClassID      uint64 = 0xe370929ba5429d8b
	recordStreamObjectClassVersion int32  = 1

	sha384DigestType int32 = 0x58ff811b
	sha384Length     int32 = 48

	// head is the version followed by the hapi proto major, minor and patch.
	headLength = 16

	maxRecordLength      int32 = 64 * 1024
	maxTransactionLength int32 = 64 * 1024
)

type streamObject struct {
	raw    []byte
	record []byte
	hash   []byte
}

type v5File struct {
	head             []byte
	startRunningHash []byte
	endRunningHash   []byte
	objects          []streamObject
}

func parseV5(raw []byte) (*v5File, error) {
	r := newReader(raw)
	head, err := r.next(headLength, "head")
	if err != nil {
		return nil, err
	}
	f := &v5File{head: head}

	if f.startRunningHash, err = readHashObject(r); err != nil {
		return nil, errors.Wrap(err, "start running hash object")
	}

	for r.remaining() > 0 {
		classID, ok := r.peekUint64()
		if !ok {
			return nil, errors.Wrap(ErrTruncated, "reading class id")
		}
		switch classID {
		case recordStreamObjectClassID:
			obj, err := readRecordStreamObject(r)
			if err != nil {
				return nil, errors.Wrapf(err, "record stream object %d", len(f.objects))
			}
			f.objects = append(f.objects, obj)
		case hashClassID:
			if f.endRunningHash, err = readHashObject(r); err != nil {
				return nil, errors.Wrap(err, "end running hash object")
			}
			if r.remaining() != 0 {
				return nil, fmt.Errorf("%d unexpected bytes after end running hash object", r.remaining())
			}
		default:
			return nil, fmt.Errorf("unknown class id %#x at offset %d", classID, r.pos)
		}
	}

	if f.endRunningHash == nil {
		return nil, errors.Wrap(ErrMissingRunningHash, "end")
	}
	return f, nil
}

func readClassHeader(r *reader, classID uint64, classVersion int32) error {
	id, err := r.uint64("class id")
	if err != nil {
		return err
	}
	if id != classID {
		return fmt.Errorf("expected class id %#x, got %#x", classID, id)
	}
	version, err := r.int32("class version")
	if err != nil {
		return err
	}
	if version != classVersion {
		return fmt.Errorf("unsupported class version %d for class id %#x", version, classID)
	}
	return nil
}

// readHashObject returns the serialized hash object, header included.
func readHashObject(r *reader) ([]byte, error) {
	start := r.pos
	if classID, ok := r.peekUint64(); !ok || classID != hashClassID {
		return nil, ErrMissingRunningHash
	}
	if err := readClassHeader(r, hashClassID, hashClassVersion); err != nil {
		return nil, err
	}
	digestType, err := r.int32("digest type")
	if err != nil {
		return nil, err
	}
	if digestType != sha384DigestType {
		return nil, fmt.Errorf("unsupported digest type %#x", digestType)
	}
	if _, err := r.lengthPrefixed("hash", sha384Length); err != nil {
		return nil, err
	}
	return r.buf[start:r.pos], nil
}

func readRecordStreamObject(r *reader) (streamObject, error) {
	start := r.pos
	if err := readClassHeader(r, recordStreamObjectClassID, recordStreamObjectClassVersion); err != nil {
		return streamObject{}, err
	}
	record, err := r.lengthPrefixed("record", maxRecordLength)
	if err != nil {
		return streamObject{}, err
	}
	if _, err := r.lengthPrefixed("transaction", maxTransactionLength); err != nil {
		return streamObject{}, err
	}
	raw := r.buf[start:r.pos]
	sum := sha512.Sum384(raw)
	return streamObject{
		raw:    raw,
		record: record,
		hash:   sum[:],
	}, nil
}

// ToCompactObject projects the file around the record stream object of the
// transaction identified by key.
func (f *File) ToCompactObject(key entities.TransactionKey) (*Compact, error) {
	if f.v5 == nil {
		return nil, errors.Wrapf(ErrNotCompactable, "version %d", f.version)
	}

	index := -1
	for i, obj := range f.v5.objects {
		id, err := decodeRecordTransactionID(obj.record)
		if err != nil {
			return nil, errors.Wrapf(err, "decoding record %d", i)
		}
		if id.matches(key) {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, errors.Wrap(ErrTransactionNotFound, key.ID.String())
	}

	hashes := func(objects []streamObject) [][]byte {
		out := make([][]byte, 0, len(objects))
		for _, o := range objects {
			out = append(out, o.hash)
		}
		return out
	}

	return &Compact{
		Head:                   f.v5.head,
		StartRunningHashObject: f.v5.startRunningHash,
		HashesBefore:           hashes(f.v5.objects[:index]),
		RecordStreamObject:     f.v5.objects[index].raw,
		HashesAfter:            hashes(f.v5.objects[index+1:]),
		EndRunningHashObject:   f.v5.endRunningHash,
	}, nil
}

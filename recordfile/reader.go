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
	"fmt"

	"github.com/pkg/errors"
)

// reader walks a big endian byte stream, keeping slices into the source.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) next(n int, what string) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, errors.Wrap(ErrTruncated, fmt.Sprintf("reading %s at offset %d", what, r.pos))
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) int32(what string) (int32, error) {
	b, err := r.next(4, what)
	if err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

func (r *reader) uint64(what string) (uint64, error) {
	b, err := r.next(8, what)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (r *reader) peekUint64() (uint64, bool) {
	if r.remaining() < 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(r.buf[r.pos:]), true
}

// lengthPrefixed reads an int32 length followed by that many bytes,
// refusing lengths above limit.
func (r *reader) lengthPrefixed(what string, limit int32) ([]byte, error) {
	l, err := r.int32(what + " length")
	if err != nil {
		return nil, err
	}
	if l < 0 || l > limit {
		return nil, fmt.Errorf("invalid %s length %d", what, l)
	}
	return r.next(int(l), what)
}

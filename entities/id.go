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

package entities

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	shardBits = 10
	realmBits = 16
	numBits   = 38

	maxShard = int64(1)<<shardBits - 1
	maxRealm = int64(1)<<realmBits - 1
	maxNum   = int64(1)<<numBits - 1
)

// EntityID identifies an account, file, topic... on the ledger. In the
// database it is stored in its 64 bit encoded form.
type EntityID struct {
	Shard int64
	Realm int64
	Num   int64
}

// NewEntityID validates every component against its bit width.
func NewEntityID(shard, realm, num int64) (EntityID, error) {
	if shard < 0 || shard > maxShard || realm < 0 || realm > maxRealm || num < 0 || num > maxNum {
		return EntityID{}, fmt.Errorf("%d.%d.%d: %w", shard, realm, num, ErrInvalidID)
	}
	return EntityID{Shard: shard, Realm: realm, Num: num}, nil
}

// EntityIDFromEncoded decodes the database representation of an entity id.
func EntityIDFromEncoded(encoded int64) (EntityID, error) {
	if encoded < 0 {
		return EntityID{}, fmt.Errorf("encoded id %d: %w", encoded, ErrInvalidID)
	}
	return EntityID{
		Shard: encoded >> (realmBits + numBits),
		Realm: (encoded >> numBits) & maxRealm,
		Num:   encoded & maxNum,
	}, nil
}

// ParseEntityID accepts either the canonical shard.realm.num form or the
// encoded decimal form.
func ParseEntityID(s string) (EntityID, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ".")
	switch len(parts) {
	case 1:
		encoded, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			return EntityID{}, fmt.Errorf("%q: %w", s, ErrInvalidID)
		}
		return EntityIDFromEncoded(encoded)
	case 3:
		var nums [3]int64
		for i, p := range parts {
			n, err := strconv.ParseInt(p, 10, 64)
			if err != nil {
				return EntityID{}, fmt.Errorf("%q: %w", s, ErrInvalidID)
			}
			nums[i] = n
		}
		return NewEntityID(nums[0], nums[1], nums[2])
	default:
		return EntityID{}, fmt.Errorf("%q: %w", s, ErrInvalidID)
	}
}

// EncodedID returns the 64 bit form used as primary key in the database.
func (id EntityID) EncodedID() int64 {
	return id.Shard<<(realmBits+numBits) | id.Realm<<numBits | id.Num
}

func (id EntityID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Shard, id.Realm, id.Num)
}

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
	"strings"
)

// NodeListEncoding tells how an address book row lists its nodes. Older
// address books only carry the memo of each node.
type NodeListEncoding int

const (
	NodeListEncodingUnspecified NodeListEncoding = iota
	// NodeListEncodingAccountIDs is a comma separated list of encoded node
	// account ids.
	NodeListEncodingAccountIDs
	// NodeListEncodingMemos is a comma separated list of node memos, each of
	// them a shard.realm.num account id.
	NodeListEncodingMemos
)

func (e NodeListEncoding) String() string {
	switch e {
	case NodeListEncodingAccountIDs:
		return "node_account_ids"
	case NodeListEncodingMemos:
		return "memos"
	default:
		return "unspecified"
	}
}

// AddressBookRow is one address book effective at or before a consensus
// timestamp, with its entries aggregated in both legacy encodings.
type AddressBookRow struct {
	FileData       []byte  `db:"file_data"`
	NodeCount      int32   `db:"node_count"`
	NodeAccountIDs *string `db:"node_account_ids"`
	Memos          *string `db:"memos"`
}

// NodeList is the node listing of a row once its variant has been detected.
type NodeList struct {
	Encoding NodeListEncoding
	Raw      string
}

// NodeList detects which encoding the row uses. Account ids win over memos.
func (r AddressBookRow) NodeList() NodeList {
	if r.NodeAccountIDs != nil && len(strings.TrimSpace(*r.NodeAccountIDs)) > 0 {
		return NodeList{Encoding: NodeListEncodingAccountIDs, Raw: *r.NodeAccountIDs}
	}
	if r.Memos != nil && len(strings.TrimSpace(*r.Memos)) > 0 {
		return NodeList{Encoding: NodeListEncodingMemos, Raw: *r.Memos}
	}
	return NodeList{Encoding: NodeListEncodingUnspecified}
}

// Decode parses every listed node into its canonical account id. The
// returned slice keeps duplicates so callers can check the declared count.
func (l NodeList) Decode() ([]EntityID, error) {
	if l.Encoding == NodeListEncodingUnspecified {
		return nil, fmt.Errorf("no node account ids nor memos: %w", ErrAddressBookInconsistent)
	}

	fields := strings.Split(l.Raw, ",")
	ids := make([]EntityID, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if l.Encoding == NodeListEncodingMemos && strings.Count(f, ".") != 2 {
			return nil, fmt.Errorf("memo %q is not a node account id: %w", f, ErrAddressBookInconsistent)
		}
		id, err := ParseEntityID(f)
		if err != nil {
			return nil, fmt.Errorf("%s entry %q: %w", l.Encoding, f, ErrAddressBookInconsistent)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

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

package sqlstore

import (
	"context"
	"encoding/base64"
	"fmt"

	"code.vegaprotocol.io/stateproof/entities"
	"code.vegaprotocol.io/stateproof/logging"
	"code.vegaprotocol.io/stateproof/metrics"

	"github.com/georgysavva/scany/pgxscan"
)

var addressBooksByConsensusTimestampQuery = fmt.Sprintf(`SELECT ab.%[3]s, ab.%[4]s,
		(SELECT string_agg(cast(abe.%[9]s AS varchar), ',' ORDER BY abe.%[9]s)
			FROM %[2]s abe
			WHERE abe.%[7]s = ab.%[5]s) AS %[10]s,
		(SELECT string_agg(abe.%[8]s, ',' ORDER BY abe.%[8]s)
			FROM %[2]s abe
			WHERE abe.%[7]s = ab.%[5]s) AS %[11]s
	FROM %[1]s ab
	WHERE ab.%[5]s <= $1 AND ab.%[6]s = $2
	ORDER BY ab.%[5]s`,
	addressBookTable,
	addressBookEntryTable,
	addressBookFileDataColumn,
	addressBookNodeCountColumn,
	addressBookStartConsensusTimestampColumn,
	addressBookFileIDColumn,
	addressBookEntryConsensusTimestampColumn,
	addressBookEntryMemoColumn,
	addressBookEntryNodeAccountIDColumn,
	addressBookEntryNodeAccountIDsAggregate,
	addressBookEntryMemosAggregate,
)

type AddressBooks struct {
	*ConnectionSource
	fileID entities.EntityID
}

func NewAddressBooks(connectionSource *ConnectionSource, config Config) (*AddressBooks, error) {
	fileID, err := entities.ParseEntityID(config.AddressBookFileID)
	if err != nil {
		return nil, fmt.Errorf("invalid address book file id: %w", err)
	}
	return &AddressBooks{
		ConnectionSource: connectionSource,
		fileID:           fileID,
	}, nil
}

// GetByConsensusTimestamp returns every address book effective at or before
// consensusTimestamp, oldest first and base64 encoded, with the account ids
// of the nodes listed by the newest one.
func (a *AddressBooks) GetByConsensusTimestamp(ctx context.Context, consensusTimestamp int64) ([]string, []string, error) {
	defer metrics.StartSQLQuery("AddressBooks", "GetByConsensusTimestamp")()

	var rows []entities.AddressBookRow
	if err := pgxscan.Select(ctx, a.Connection, &rows, addressBooksByConsensusTimestampQuery,
		consensusTimestamp,
		a.fileID.EncodedID(),
	); err != nil {
		return nil, nil, fmt.Errorf("could not get address books for consensus timestamp %d: %w", consensusTimestamp, err)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("address book for consensus timestamp %d: %w", consensusTimestamp, entities.ErrNotFound)
	}

	addressBooks := make([]string, 0, len(rows))
	for _, row := range rows {
		addressBooks = append(addressBooks, base64.StdEncoding.EncodeToString(row.FileData))
	}

	newest := rows[len(rows)-1]
	nodeList := newest.NodeList()
	ids, err := nodeList.Decode()
	if err != nil {
		return nil, nil, fmt.Errorf("newest address book for consensus timestamp %d: %w", consensusTimestamp, err)
	}
	if len(ids) != int(newest.NodeCount) {
		return nil, nil, fmt.Errorf("newest address book lists %d nodes by %s but declares %d: %w",
			len(ids), nodeList.Encoding, newest.NodeCount, entities.ErrAddressBookInconsistent)
	}

	a.log.Debug("resolved address books",
		logging.Int("count", len(rows)),
		logging.String("encoding", nodeList.Encoding.String()),
	)

	seen := make(map[string]struct{}, len(ids))
	nodeAccountIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		s := id.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		nodeAccountIDs = append(nodeAccountIDs, s)
	}

	return addressBooks, nodeAccountIDs, nil
}

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
	"fmt"
	"sync"
	"time"

	"code.vegaprotocol.io/stateproof/entities"
	"code.vegaprotocol.io/stateproof/metrics"

	"github.com/georgysavva/scany/pgxscan"
)

var recordFileByConsensusTimestampQuery = fmt.Sprintf(`SELECT %[2]s, %[3]s, %[4]s, %[5]s
	FROM %[1]s
	WHERE %[6]s >= $1 AND %[6]s <= $2
	ORDER BY %[6]s
	LIMIT 1`,
	recordFileTable,
	recordFileBytesColumn,
	recordFileNameColumn,
	recordFileNodeAccountIDColumn,
	recordFileVersionColumn,
	recordFileConsensusEndColumn,
)

type recordFileRow struct {
	Bytes         []byte `db:"bytes"`
	Name          string `db:"name"`
	NodeAccountID int64  `db:"node_account_id"`
	Version       int32  `db:"version"`
}

type RecordFiles struct {
	*ConnectionSource

	mu               sync.RWMutex
	maxCloseInterval time.Duration
}

func NewRecordFiles(connectionSource *ConnectionSource, config Config) *RecordFiles {
	return &RecordFiles{
		ConnectionSource: connectionSource,
		maxCloseInterval: config.MaxRecordFileCloseInterval.Get(),
	}
}

// ReloadConf updates how long after a consensus timestamp the holding
// record file may close.
func (r *RecordFiles) ReloadConf(config Config) {
	r.mu.Lock()
	r.maxCloseInterval = config.MaxRecordFileCloseInterval.Get()
	r.mu.Unlock()
}

// GetByConsensusTimestamp returns the record file holding the transaction
// that reached consensus at consensusTimestamp.
func (r *RecordFiles) GetByConsensusTimestamp(ctx context.Context, consensusTimestamp int64) (entities.RecordFileInfo, error) {
	defer metrics.StartSQLQuery("RecordFiles", "GetByConsensusTimestamp")()

	r.mu.RLock()
	maxCloseInterval := r.maxCloseInterval
	r.mu.RUnlock()

	var rows []recordFileRow
	if err := pgxscan.Select(ctx, r.Connection, &rows, recordFileByConsensusTimestampQuery,
		consensusTimestamp,
		consensusTimestamp+maxCloseInterval.Nanoseconds(),
	); err != nil {
		return entities.RecordFileInfo{}, fmt.Errorf("could not get record file for consensus timestamp %d: %w", consensusTimestamp, err)
	}

	if len(rows) == 0 {
		return entities.RecordFileInfo{}, fmt.Errorf("record file for consensus timestamp %d: %w", consensusTimestamp, entities.ErrNotFound)
	}

	row := rows[0]
	nodeAccountID, err := entities.EntityIDFromEncoded(row.NodeAccountID)
	if err != nil {
		return entities.RecordFileInfo{}, fmt.Errorf("record file %s has an invalid node account id: %w", row.Name, err)
	}

	return entities.RecordFileInfo{
		Name:          row.Name,
		Bytes:         row.Bytes,
		NodeAccountID: nodeAccountID.String(),
		Version:       row.Version,
	}, nil
}

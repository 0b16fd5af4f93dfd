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

var successfulTransactionQuery = fmt.Sprintf(`SELECT %[2]s
	FROM %[1]s
	WHERE %[3]s = $1
		AND %[2]s >= $2
		AND %[2]s <= $5
		AND %[4]s = $2
		AND %[5]s = $3
		AND %[6]s = $4
		AND %[7]s = ANY($6)
	ORDER BY %[2]s
	LIMIT 1`,
	transactionTable,
	transactionConsensusTimestampColumn,
	transactionPayerAccountIDColumn,
	transactionValidStartNsColumn,
	transactionNonceColumn,
	transactionScheduledColumn,
	transactionResultColumn,
)

type Transactions struct {
	*ConnectionSource

	mu                sync.RWMutex
	maxConsensusRange time.Duration
}

func NewTransactions(connectionSource *ConnectionSource, config Config) *Transactions {
	return &Transactions{
		ConnectionSource:  connectionSource,
		maxConsensusRange: config.MaxTransactionConsensusTimestampRange.Get(),
	}
}

// ReloadConf updates the consensus timestamp range of the lookups.
func (t *Transactions) ReloadConf(config Config) {
	t.mu.Lock()
	t.maxConsensusRange = config.MaxTransactionConsensusTimestampRange.Get()
	t.mu.Unlock()
}

// GetSuccessfulConsensusTimestamp returns the consensus timestamp of the
// successful transaction identified by txID, nonce and scheduled. Only
// transactions reaching consensus within the configured range after their
// valid start are considered.
func (t *Transactions) GetSuccessfulConsensusTimestamp(ctx context.Context, txID entities.TransactionID, nonce int32, scheduled bool) (int64, error) {
	defer metrics.StartSQLQuery("Transactions", "GetSuccessfulConsensusTimestamp")()

	t.mu.RLock()
	maxConsensusRange := t.maxConsensusRange
	t.mu.RUnlock()

	validStart := txID.ValidStartNs
	var timestamps []int64
	if err := pgxscan.Select(ctx, t.Connection, &timestamps, successfulTransactionQuery,
		txID.Payer.EncodedID(),
		validStart,
		nonce,
		scheduled,
		validStart+maxConsensusRange.Nanoseconds(),
		successfulResults,
	); err != nil {
		return 0, fmt.Errorf("could not get transaction %s: %w", txID, err)
	}

	if len(timestamps) == 0 {
		return 0, fmt.Errorf("transaction %s with nonce %d and scheduled %t: %w", txID, nonce, scheduled, entities.ErrNotFound)
	}
	return timestamps[0], nil
}

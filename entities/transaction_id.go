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

const maxNanos = 999_999_999

// TransactionID is the payer account together with the valid start time
// chosen by the client.
type TransactionID struct {
	Payer        EntityID
	ValidStartNs int64
}

// ParseTransactionID understands both the REST form 0.0.1-1234567891-000111222
// and the SDK form 0.0.1@1234567891.000111222.
func ParseTransactionID(s string) (TransactionID, error) {
	var payer, seconds, nanos string

	if at := strings.IndexByte(s, '@'); at >= 0 {
		payer = s[:at]
		ts := strings.SplitN(s[at+1:], ".", 2)
		if len(ts) != 2 {
			return TransactionID{}, fmt.Errorf("transaction id %q: %w", s, ErrInvalidID)
		}
		seconds, nanos = ts[0], ts[1]
	} else {
		parts := strings.Split(s, "-")
		if len(parts) != 3 {
			return TransactionID{}, fmt.Errorf("transaction id %q: %w", s, ErrInvalidID)
		}
		payer, seconds, nanos = parts[0], parts[1], parts[2]
	}

	payerID, err := ParseEntityID(payer)
	if err != nil || strings.Count(payer, ".") != 2 {
		return TransactionID{}, fmt.Errorf("transaction id %q: %w", s, ErrInvalidID)
	}

	secs, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil || secs < 0 {
		return TransactionID{}, fmt.Errorf("transaction id %q: %w", s, ErrInvalidID)
	}
	if len(nanos) == 0 || len(nanos) > 9 {
		return TransactionID{}, fmt.Errorf("transaction id %q: %w", s, ErrInvalidID)
	}
	ns, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil || ns < 0 || ns > maxNanos {
		return TransactionID{}, fmt.Errorf("transaction id %q: %w", s, ErrInvalidID)
	}

	return TransactionID{
		Payer:        payerID,
		ValidStartNs: secs*1_000_000_000 + ns,
	}, nil
}

func (t TransactionID) String() string {
	return fmt.Sprintf("%s-%d-%09d", t.Payer, t.ValidStartNs/1_000_000_000, t.ValidStartNs%1_000_000_000)
}

// TransactionKey identifies the record of one transaction inside a record
// file: child and scheduled transactions share the id of their parent.
type TransactionKey struct {
	ID        TransactionID
	Nonce     int32
	Scheduled bool
}

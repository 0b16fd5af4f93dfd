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

// Tables and columns of the mirror node schema read by the stores.
const (
	transactionTable                    = "transaction"
	transactionConsensusTimestampColumn = "consensus_timestamp"
	transactionPayerAccountIDColumn     = "payer_account_id"
	transactionValidStartNsColumn       = "valid_start_ns"
	transactionNonceColumn              = "nonce"
	transactionScheduledColumn          = "scheduled"
	transactionResultColumn             = "result"

	recordFileTable               = "record_file"
	recordFileBytesColumn         = "bytes"
	recordFileConsensusEndColumn  = "consensus_end"
	recordFileNameColumn          = "name"
	recordFileNodeAccountIDColumn = "node_account_id"
	recordFileVersionColumn       = "version"

	addressBookTable                         = "address_book"
	addressBookFileDataColumn                = "file_data"
	addressBookFileIDColumn                  = "file_id"
	addressBookNodeCountColumn               = "node_count"
	addressBookStartConsensusTimestampColumn = "start_consensus_timestamp"

	addressBookEntryTable                    = "address_book_entry"
	addressBookEntryConsensusTimestampColumn = "consensus_timestamp"
	addressBookEntryMemoColumn               = "memo"
	addressBookEntryNodeAccountIDColumn      = "node_account_id"
	addressBookEntryNodeAccountIDsAggregate  = "node_account_ids"
	addressBookEntryMemosAggregate           = "memos"
)

// Transaction results counted as a successful execution.
const (
	resultSuccess                            = 22
	resultFeeScheduleFilePartUploaded        = 104
	resultSuccessButMissingExpectedOperation = 220
)

var successfulResults = []int32{
	resultSuccess,
	resultFeeScheduleFilePartUploaded,
	resultSuccessButMissingExpectedOperation,
}

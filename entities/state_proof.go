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

// CompactRecordFile is the minimal hash chain a client needs to recompute
// the end running hash of a record file from the one transaction it cares
// about. Every field is base64 encoded.
type CompactRecordFile struct {
	Head                   string   `json:"head"`
	StartRunningHashObject string   `json:"start_running_hash_object"`
	HashesBefore           []string `json:"hashes_before"`
	RecordStreamObject     string   `json:"record_stream_object"`
	HashesAfter            []string `json:"hashes_after"`
	EndRunningHashObject   string   `json:"end_running_hash_object"`
}

// RecordFileView is how the record file is delivered, either compacted or
// as a whole base64 encoded file when its version has no compact form.
type RecordFileView struct {
	Compact *CompactRecordFile
	Full    string
}

// StateProof is everything a client needs to verify a transaction without
// trusting the mirror node.
type StateProof struct {
	AddressBooks      []string           `json:"address_books"`
	NodeAccountIDs    []string           `json:"node_account_ids"`
	RecordFile        RecordFileInfo     `json:"record_file"`
	SignatureFiles    map[string]string  `json:"signature_files"`
	CompactRecordFile *CompactRecordFile `json:"compact_record_file,omitempty"`
	FullRecordFile    string             `json:"full_record_file,omitempty"`
}

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

import "fmt"

// RecordFileInfo is the part of a record_file row needed to build a state
// proof. Bytes is only set when the file content is kept in the database.
type RecordFileInfo struct {
	Name          string `json:"name"`
	Bytes         []byte `json:"bytes"`
	NodeAccountID string `json:"node_account_id"`
	Version       int32  `json:"version"`
}

// PartialPath is the location of the record file relative to the stream
// prefix of the bucket.
func (r RecordFileInfo) PartialPath() string {
	return fmt.Sprintf("%s/%s", r.NodeAccountID, r.Name)
}

// SignatureFileName is the name of the signature file every node uploads
// next to the record file.
func (r RecordFileInfo) SignatureFileName() string {
	return r.Name + "_sig"
}

// SignatureFilePartialPath is the location of nodeAccountID's signature file.
func (r RecordFileInfo) SignatureFilePartialPath(nodeAccountID string) string {
	return fmt.Sprintf("%s/%s", nodeAccountID, r.SignatureFileName())
}

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

import "errors"

var (
	// ErrNotFound is returned when no transaction, record file or address
	// book matches the query.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID signals a malformed entity or transaction id.
	ErrInvalidID = errors.New("invalid id")
	// ErrAddressBookInconsistent is returned when the node count declared by
	// an address book does not match the nodes listed for it.
	ErrAddressBookInconsistent = errors.New("address book is inconsistent")
	// ErrInsufficientSignatureFiles is returned when too few nodes' signature
	// files could be retrieved to reach consensus.
	ErrInsufficientSignatureFiles = errors.New("insufficient signature files to reach consensus")
	// ErrFormatting is returned when the record file can't be projected into
	// its compact form.
	ErrFormatting = errors.New("unable to format record file")
)

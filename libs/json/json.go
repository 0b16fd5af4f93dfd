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

package json

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Prettify marshals data as indented JSON.
func Prettify(data interface{}) ([]byte, error) {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unable to marshal message: %w", err)
	}
	return bytes, nil
}

func PrettyPrint(data interface{}) error {
	return Fprint(os.Stdout, data)
}

// Fprint writes the prettified data followed by a newline.
func Fprint(w io.Writer, data interface{}) error {
	prettifiedData, err := Prettify(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(prettifiedData))
	return err
}

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

package gateway

import (
	"time"

	"code.vegaprotocol.io/stateproof/config/encoding"
	libhttp "code.vegaprotocol.io/stateproof/libs/http"
	"code.vegaprotocol.io/stateproof/logging"
)

// namedLogger is the identifier for package and should ideally match the package name
// this is simply emitted as a hierarchical label e.g. 'api.grpc'.
const namedLogger = "gateway"

// Config represents the configuration of the REST gateway.
type Config struct {
	Level             encoding.LogLevel  `long:"log-level"`
	IP                string             `long:"ip" description:"Listening address"`
	Port              int                `long:"port" description:"Listening port"`
	ReadHeaderTimeout encoding.Duration  `long:"read-header-timeout"`
	WriteTimeout      encoding.Duration  `long:"write-timeout"`
	CORS              libhttp.CORSConfig `group:"CORS" namespace:"cors"`
}

func NewDefaultConfig() Config {
	return Config{
		Level:             encoding.LogLevel{Level: logging.InfoLevel},
		IP:                "0.0.0.0",
		Port:              5551,
		ReadHeaderTimeout: encoding.Duration{Duration: 10 * time.Second},
		WriteTimeout:      encoding.Duration{Duration: time.Minute},
		CORS: libhttp.CORSConfig{
			AllowedOrigins: []string{"*"},
			MaxAge:         7200,
		},
	}
}

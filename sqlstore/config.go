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
	"fmt"
	"net/url"
	"time"

	"code.vegaprotocol.io/stateproof/config/encoding"
	"code.vegaprotocol.io/stateproof/logging"

	"github.com/jackc/pgx/v4/pgxpool"
)

// namedLogger is the identifier for package and should ideally match the package name
// this is simply emitted as a hierarchical label e.g. 'api.grpc'.
const namedLogger = "sqlstore"

type Config struct {
	ConnectionConfig      ConnectionConfig      `group:"ConnectionConfig" namespace:"ConnectionConfig"`
	ConnectionRetryConfig ConnectionRetryConfig `group:"ConnectionRetryConfig" namespace:"ConnectionRetryConfig"`
	Level                 encoding.LogLevel     `long:"log-level"`

	MaxTransactionConsensusTimestampRange encoding.Duration `long:"max-transaction-consensus-timestamp-range" description:"Maximum time between the valid start of a transaction and its consensus"`
	MaxRecordFileCloseInterval            encoding.Duration `long:"max-record-file-close-interval" description:"Maximum time between a transaction's consensus and the end of the record file holding it"`
	AddressBookFileID                     string            `long:"address-book-file-id" description:"File id of the address book listing node account ids"`
}

type ConnectionConfig struct {
	Host                  string            `long:"host"`
	Port                  int               `long:"port"`
	Username              string            `long:"username"`
	Password              string            `long:"password"`
	Database              string            `long:"database"`
	SocketDir             string            `long:"socket-dir" description:"location of postgres UNIX socket directory (used if host is empty string)"`
	MaxConnLifetime       encoding.Duration `long:"max-conn-lifetime"`
	MaxConnLifetimeJitter encoding.Duration `long:"max-conn-lifetime-jitter"`
	MaxConnPoolSize       int               `long:"max-conn-pool-size"`
	MinConnPoolSize       int32             `long:"min-conn-pool-size"`
	RuntimeParams         map[string]string `long:"runtime-params"`
}

type ConnectionRetryConfig struct {
	MaxRetries      uint64            `long:"max-retries" description:"the maximum number of times to retry connecting to the database"`
	InitialInterval encoding.Duration `long:"initial-interval" description:"the initial interval to wait before retrying"`
	MaxInterval     encoding.Duration `long:"max-interval" description:"the maximum interval to wait before retrying"`
	MaxElapsedTime  encoding.Duration `long:"max-elapsed-time" description:"the maximum elapsed time to wait before giving up"`
}

func (conf ConnectionConfig) GetConnectionString() string {
	if conf.Host == "" {
		return fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable",
			conf.Username,
			conf.Password,
			conf.Database,
			conf.SocketDir,
			conf.Port)
	}
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s",
		url.PathEscape(conf.Username),
		url.PathEscape(conf.Password),
		conf.Host,
		conf.Port,
		conf.Database)
}

func (conf ConnectionConfig) GetPoolConfig() (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(conf.GetConnectionString())
	if err != nil {
		return nil, err
	}
	cfg.ConnConfig.RuntimeParams["application_name"] = "State Proof"
	for k, v := range conf.RuntimeParams {
		cfg.ConnConfig.RuntimeParams[k] = v
	}
	cfg.MaxConnLifetime = conf.MaxConnLifetime.Duration
	cfg.MaxConnLifetimeJitter = conf.MaxConnLifetimeJitter.Duration
	cfg.MaxConns = int32(conf.MaxConnPoolSize)
	cfg.MinConns = conf.MinConnPoolSize
	return cfg, nil
}

func NewDefaultConfig() Config {
	return Config{
		ConnectionConfig: ConnectionConfig{
			Host:                  "localhost",
			Port:                  5432,
			Username:              "mirror_rest",
			Password:              "mirror_rest_pass",
			Database:              "mirror_node",
			SocketDir:             "/tmp",
			MaxConnLifetime:       encoding.Duration{Duration: time.Minute * 30},
			MaxConnLifetimeJitter: encoding.Duration{Duration: time.Minute * 5},
			MaxConnPoolSize:       10,
			MinConnPoolSize:       1,
			RuntimeParams: map[string]string{
				"default_transaction_read_only": "on",
			},
		},
		ConnectionRetryConfig: ConnectionRetryConfig{
			MaxRetries:      10,
			InitialInterval: encoding.Duration{Duration: time.Second},
			MaxInterval:     encoding.Duration{Duration: 20 * time.Second},
			MaxElapsedTime:  encoding.Duration{Duration: time.Minute},
		},
		Level:                                 encoding.LogLevel{Level: logging.InfoLevel},
		MaxTransactionConsensusTimestampRange: encoding.Duration{Duration: 35 * time.Minute},
		MaxRecordFileCloseInterval:            encoding.Duration{Duration: 10 * time.Second},
		AddressBookFileID:                     "0.0.102",
	}
}

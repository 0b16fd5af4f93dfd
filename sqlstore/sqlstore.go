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

	"code.vegaprotocol.io/stateproof/logging"

	"github.com/georgysavva/scany/pgxscan"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Connection is the read-only subset of a pgx pool the stores need.
type Connection interface {
	pgxscan.Querier
}

// ConnectionSource hands the shared pool to every store. The pool is safe
// for concurrent use so a single state proof may query several stores at once.
type ConnectionSource struct {
	Connection Connection
	pool       *pgxpool.Pool
	log        *logging.Logger
}

func NewConnectionSource(ctx context.Context, log *logging.Logger, conf ConnectionConfig) (*ConnectionSource, error) {
	poolConfig, err := conf.GetPoolConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get pool config: %w", err)
	}

	pool, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	return &ConnectionSource{
		Connection: pool,
		pool:       pool,
		log:        log.Named(namedLogger),
	}, nil
}

// NewConnectionSourceFromConnection wires the stores to an existing connection.
func NewConnectionSourceFromConnection(log *logging.Logger, conn Connection) *ConnectionSource {
	return &ConnectionSource{
		Connection: conn,
		log:        log.Named(namedLogger),
	}
}

// Ping checks the database can be reached.
func (s *ConnectionSource) Ping(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	return s.pool.Ping(ctx)
}

func (s *ConnectionSource) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

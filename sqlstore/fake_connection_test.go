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

package sqlstore_test

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgproto3/v2"
	"github.com/jackc/pgx/v4"
)

type queryCall struct {
	query string
	args  []interface{}
}

// fakeConnection answers every query with the same rows, or error, and
// records the calls it received.
type fakeConnection struct {
	mu      sync.Mutex
	columns []string
	rows    [][]interface{}
	err     error
	calls   []queryCall
}

func newFakeConnection(columns []string, rows ...[]interface{}) *fakeConnection {
	return &fakeConnection{columns: columns, rows: rows}
}

func newFailingConnection(err error) *fakeConnection {
	return &fakeConnection{err: err}
}

func (c *fakeConnection) Query(_ context.Context, query string, args ...interface{}) (pgx.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, queryCall{query: query, args: args})
	if c.err != nil {
		return nil, c.err
	}
	return &fakeRows{columns: c.columns, rows: c.rows, idx: -1}, nil
}

func (c *fakeConnection) Calls() []queryCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]queryCall(nil), c.calls...)
}

type fakeRows struct {
	columns []string
	rows    [][]interface{}
	idx     int
	err     error
}

func (r *fakeRows) Close() {}

func (r *fakeRows) Err() error { return r.err }

func (r *fakeRows) CommandTag() pgconn.CommandTag {
	return pgconn.CommandTag(fmt.Sprintf("SELECT %d", len(r.rows)))
}

func (r *fakeRows) FieldDescriptions() []pgproto3.FieldDescription {
	fds := make([]pgproto3.FieldDescription, 0, len(r.columns))
	for _, c := range r.columns {
		fds = append(fds, pgproto3.FieldDescription{Name: []byte(c)})
	}
	return fds
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx < len(r.rows)
}

func (r *fakeRows) Scan(dest ...interface{}) error {
	row := r.rows[r.idx]
	if len(dest) != len(row) {
		return fmt.Errorf("scan expects %d destinations, got %d", len(row), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if row[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		v := reflect.ValueOf(row[i])
		if target.Kind() == reflect.Ptr && v.Kind() != reflect.Ptr {
			p := reflect.New(target.Type().Elem())
			p.Elem().Set(v.Convert(target.Type().Elem()))
			target.Set(p)
			continue
		}
		target.Set(v.Convert(target.Type()))
	}
	return nil
}

func (r *fakeRows) Values() ([]interface{}, error) {
	return r.rows[r.idx], nil
}

func (r *fakeRows) RawValues() [][]byte {
	return nil
}

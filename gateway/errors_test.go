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
	"net/http"
	"net/http/httptest"
	"testing"

	"code.vegaprotocol.io/stateproof/logging"

	"github.com/stretchr/testify/assert"
)

func TestWriteJSON(t *testing.T) {
	t.Run("Reply is marshalled with its status", testWriteJSONReply)
	t.Run("Unmarshallable reply is an internal error", testWriteJSONMarshalFailure)
}

func testWriteJSONReply(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(logging.NewTestLogger(), rec, map[string]string{"status": "ok"}, http.StatusAccepted)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func testWriteJSONMarshalFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(logging.NewTestLogger(), rec, map[string]interface{}{"data": make(chan int)}, http.StatusOK)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"_status":{"messages":[{"message":"Internal error"}]}}`, rec.Body.String())
}

func TestRecoverMiddleware(t *testing.T) {
	handler := RecoverMiddleware(logging.NewTestLogger(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/transactions/x/stateproof", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"_status":{"messages":[{"message":"Internal error"}]}}`, rec.Body.String())
}

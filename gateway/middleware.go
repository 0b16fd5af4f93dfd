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

	"code.vegaprotocol.io/stateproof/logging"
	"code.vegaprotocol.io/stateproof/metrics"

	"github.com/julienschmidt/httprouter"
)

// MetricCollectionMiddleware records the request and the time taken to
// service it under the name of the route.
func MetricCollectionMiddleware(route string, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		defer metrics.StartAPIRequestAndTimeREST(route)()
		next(w, r, ps)
	}
}

// RecoverMiddleware turns a panic in a handler into an internal error
// instead of a dropped connection.
func RecoverMiddleware(log *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic while serving request",
					logging.String("uri", r.RequestURI),
					logging.String("panic", fmtPanic(rec)),
				)
				writeError(log, w, http.StatusInternalServerError, "Internal error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"code.vegaprotocol.io/stateproof/entities"
	"code.vegaprotocol.io/stateproof/logging"
)

// internalErrorBody is sent when a reply can't be marshalled.
var internalErrorBody = []byte(`{"_status":{"messages":[{"message":"Internal error"}]}}`)

// errorResponse is the error body of the mirror node REST API.
type errorResponse struct {
	Status errorStatus `json:"_status"`
}

type errorStatus struct {
	Messages []errorMessage `json:"messages"`
}

type errorMessage struct {
	Message string `json:"message"`
}

func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, entities.ErrInvalidID):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, entities.ErrInsufficientSignatureFiles):
		return http.StatusBadGateway, "Require at least 1/3 signature files to prove consensus, got fewer"
	default:
		return http.StatusInternalServerError, "Internal error"
	}
}

func writeError(log *logging.Logger, w http.ResponseWriter, status int, messages ...string) {
	resp := errorResponse{}
	for _, m := range messages {
		resp.Status.Messages = append(resp.Status.Messages, errorMessage{Message: m})
	}
	writeJSON(log, w, resp, status)
}

func writeJSON(log *logging.Logger, w http.ResponseWriter, data interface{}, status int) {
	buf, err := json.Marshal(data)
	if err != nil {
		log.Error("could not marshal reply", logging.Error(err))
		status = http.StatusInternalServerError
		buf = internalErrorBody
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf); err != nil {
		log.Debug("could not write reply", logging.Error(err))
	}
}

func fmtPanic(rec interface{}) string {
	return fmt.Sprintf("%v", rec)
}

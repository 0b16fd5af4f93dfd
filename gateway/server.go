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
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"code.vegaprotocol.io/stateproof/entities"
	libhttp "code.vegaprotocol.io/stateproof/libs/http"
	"code.vegaprotocol.io/stateproof/logging"

	"github.com/julienschmidt/httprouter"
)

//go:generate go run github.com/golang/mock/mockgen -destination mocks/state_proof_service_mock.go -package mocks code.vegaprotocol.io/stateproof/gateway StateProofService

const (
	StateProofRoute = "/api/v1/transactions/:transactionId/stateproof"
	HealthRoute     = "/health"
)

// StateProofService builds the state proof of a transaction.
type StateProofService interface {
	Build(ctx context.Context, txID entities.TransactionID, nonce int32, scheduled bool) (*entities.StateProof, error)
}

// Server is the REST gateway in front of the state proof service.
type Server struct {
	*httprouter.Router

	log *logging.Logger
	cfg Config
	svc StateProofService

	mu  sync.Mutex
	srv *http.Server
}

func New(log *logging.Logger, cfg Config, svc StateProofService) *Server {
	log = log.Named(namedLogger)
	log.SetLevel(cfg.Level.Get())

	s := &Server{
		Router: httprouter.New(),
		log:    log,
		cfg:    cfg,
		svc:    svc,
	}

	s.GET(StateProofRoute, MetricCollectionMiddleware("stateproof", s.GetStateProof))
	s.GET(HealthRoute, MetricCollectionMiddleware("health", s.Health))
	return s
}

// HTTPHandler is the router wrapped with the CORS policy.
func (s *Server) HTTPHandler() http.Handler {
	return RecoverMiddleware(s.log, libhttp.NewCORSHandler(s.cfg.CORS, s))
}

// Start listens and serves until Stop is called.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.cfg.IP, strconv.Itoa(s.cfg.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.HTTPHandler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout.Get(),
		WriteTimeout:      s.cfg.WriteTimeout.Get(),
	}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	s.log.Info("starting REST gateway", logging.String("address", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve REST gateway: %w", err)
	}
	return nil
}

// ReloadConf updates the log level, listener settings only apply on restart.
func (s *Server) ReloadConf(cfg Config) {
	s.log.Info("reloading configuration")
	if s.log.GetLevel() != cfg.Level.Get() {
		s.log.Info("updating log level",
			logging.String("old", s.log.GetLevel().String()),
			logging.String("new", cfg.Level.String()),
		)
		s.log.SetLevel(cfg.Level.Get())
	}
}

func (s *Server) Stop() error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	s.log.Info("stopping REST gateway")
	return srv.Shutdown(context.Background())
}

func (s *Server) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(s.log, w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) GetStateProof(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	txID, err := entities.ParseTransactionID(ps.ByName("transactionId"))
	if err != nil {
		writeError(s.log, w, http.StatusBadRequest, "Invalid parameter: transactionId")
		return
	}
	nonce, scheduled, invalid := parseQueryParams(r)
	if invalid != "" {
		writeError(s.log, w, http.StatusBadRequest, "Invalid parameter: "+invalid)
		return
	}

	proof, err := s.svc.Build(r.Context(), txID, nonce, scheduled)
	if err != nil {
		status, msg := statusFromError(err)
		if status >= http.StatusInternalServerError {
			s.log.Error("could not build state proof",
				logging.String("transaction-id", txID.String()),
				logging.Error(err),
			)
		}
		writeError(s.log, w, status, msg)
		return
	}

	writeJSON(s.log, w, proof, http.StatusOK)
}

// parseQueryParams reads nonce and scheduled, the last value wins when a
// parameter is repeated. The name of the first malformed parameter is
// returned, if any.
func parseQueryParams(r *http.Request) (int32, bool, string) {
	var (
		nonce     int32
		scheduled bool
		query     = r.URL.Query()
	)

	if values := query["nonce"]; len(values) > 0 {
		n, err := strconv.ParseInt(values[len(values)-1], 10, 32)
		if err != nil || n < 0 {
			return 0, false, "nonce"
		}
		nonce = int32(n)
	}

	if values := query["scheduled"]; len(values) > 0 {
		switch strings.ToLower(values[len(values)-1]) {
		case "true":
			scheduled = true
		case "false":
			scheduled = false
		default:
			return 0, false, "scheduled"
		}
	}

	return nonce, scheduled, ""
}

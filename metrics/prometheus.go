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

package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// Counter ...
	Counter instrument = iota
	// Histogram ...
	Histogram
)

// ErrInstrumentNotSupported signals the specified instrument is not yet supported.
var ErrInstrumentNotSupported = errors.New("instrument type unsupported")

var (
	sqlQueryTime *prometheus.HistogramVec
	// Object storage requests by outcome (ok, error)
	objectStoreRequests *prometheus.CounterVec
	// State proofs built by outcome
	stateProofs *prometheus.CounterVec
	// Call counters for each request type per API
	apiRequestCallCounter *prometheus.CounterVec
	// Total time counters for each request type per API
	apiRequestTimeCounter *prometheus.CounterVec
)

// abstract prometheus types.
type instrument int

type instrumentOpts struct {
	opts    prometheus.Opts
	buckets []float64
	vectors []string
}

// InstrumentOption - vararg for instrument options setting.
type InstrumentOption func(o *instrumentOpts)

// Vectors - configuration used to create a vector of a given interface, slice of label names.
func Vectors(labels ...string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.vectors = labels
	}
}

// Help - set the help field on instrument.
func Help(help string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Help = help
	}
}

// Namespace - set namespace.
func Namespace(ns string) InstrumentOption {
	return func(o *instrumentOpts) {
		o.opts.Namespace = ns
	}
}

// Buckets - specific to histogram type.
func Buckets(b []float64) InstrumentOption {
	return func(o *instrumentOpts) {
		o.buckets = b
	}
}

// addVecInstrument configures and registers a new vector instrument on reg.
func addVecInstrument(reg prometheus.Registerer, t instrument, name string, opts ...InstrumentOption) (prometheus.Collector, error) {
	opt := instrumentOpts{
		opts: prometheus.Opts{
			Name: name,
		},
	}
	for _, o := range opts {
		o(&opt)
	}

	var col prometheus.Collector
	switch t {
	case Counter:
		col = prometheus.NewCounterVec(prometheus.CounterOpts(opt.opts), opt.vectors)
	case Histogram:
		col = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        opt.opts.Name,
			Namespace:   opt.opts.Namespace,
			Subsystem:   opt.opts.Subsystem,
			ConstLabels: opt.opts.ConstLabels,
			Help:        opt.opts.Help,
			Buckets:     opt.buckets,
		}, opt.vectors)
	default:
		return nil, ErrInstrumentNotSupported
	}

	if err := reg.Register(col); err != nil {
		return nil, err
	}
	return col, nil
}

// Start enable metrics (given config).
func Start(conf Config) error {
	if !conf.Enabled {
		return nil
	}
	if err := setupMetrics(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("could not set up metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(conf.Path, promhttp.Handler())
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Port),
		Handler:           mux,
		ReadHeaderTimeout: conf.Timeout.Get(),
	}
	go srv.ListenAndServe()
	return nil
}

func setupMetrics(reg prometheus.Registerer) error {
	c, err := addVecInstrument(reg,
		Histogram,
		"sql_query_duration_seconds",
		Namespace("stateproof"),
		Vectors("store", "query"),
		Help("Time spent running SQL queries"),
	)
	if err != nil {
		return err
	}
	sqlQueryTime = c.(*prometheus.HistogramVec)

	c, err = addVecInstrument(reg,
		Counter,
		"object_store_requests_total",
		Namespace("stateproof"),
		Vectors("outcome"),
		Help("Object storage GET requests by outcome"),
	)
	if err != nil {
		return err
	}
	objectStoreRequests = c.(*prometheus.CounterVec)

	c, err = addVecInstrument(reg,
		Counter,
		"state_proofs_total",
		Namespace("stateproof"),
		Vectors("outcome"),
		Help("State proofs built by outcome"),
	)
	if err != nil {
		return err
	}
	stateProofs = c.(*prometheus.CounterVec)

	//
	// API usage metrics start here
	//

	c, err = addVecInstrument(reg,
		Counter,
		"request_count_total",
		Namespace("stateproof"),
		Vectors("apiType", "requestType"),
		Help("Count of API requests"),
	)
	if err != nil {
		return err
	}
	apiRequestCallCounter = c.(*prometheus.CounterVec)

	c, err = addVecInstrument(reg,
		Counter,
		"request_time_total",
		Namespace("stateproof"),
		Vectors("apiType", "requestType"),
		Help("Total time spent in each API request"),
	)
	if err != nil {
		return err
	}
	apiRequestTimeCounter = c.(*prometheus.CounterVec)

	return nil
}

// StartSQLQuery returns a function to be deferred which records the time spent in the query.
func StartSQLQuery(store, query string) func() {
	startTime := time.Now()
	return func() {
		if sqlQueryTime == nil {
			return
		}
		sqlQueryTime.WithLabelValues(store, query).Observe(time.Since(startTime).Seconds())
	}
}

// ObjectStoreRequestInc counts one object storage request with its outcome.
func ObjectStoreRequestInc(outcome string) {
	if objectStoreRequests == nil {
		return
	}
	objectStoreRequests.WithLabelValues(outcome).Inc()
}

// StateProofInc counts one state proof request with its outcome.
func StateProofInc(outcome string) {
	if stateProofs == nil {
		return
	}
	stateProofs.WithLabelValues(outcome).Inc()
}

// StartAPIRequestAndTimeREST updates the metrics for REST API calls.
func StartAPIRequestAndTimeREST(request string) func() {
	startTime := time.Now()
	return func() {
		if apiRequestCallCounter == nil || apiRequestTimeCounter == nil {
			return
		}
		apiRequestCallCounter.WithLabelValues("REST", request).Inc()
		duration := time.Since(startTime).Seconds()
		apiRequestTimeCounter.WithLabelValues("REST", request).Add(duration)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/0x0FACED/go-clarkwright/pkg/client"
	"github.com/0x0FACED/go-clarkwright/pkg/logger"
	"github.com/0x0FACED/go-clarkwright/pkg/metrics"
	"github.com/0x0FACED/go-clarkwright/pkg/savings"
	"github.com/0x0FACED/go-clarkwright/pkg/voronoi"
	"github.com/0x0FACED/go-clarkwright/static"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type app struct {
	cfg     Config
	log     *logger.Logger
	metrics *metrics.Collector
	seed    func() int64
}

type result struct {
	reg     *client.Registry
	diagram *voronoi.Diagram
	sol     *savings.Solution
}

func newApp(cfg Config, log *logger.Logger, reg prometheus.Registerer) *app {
	return &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics.New(reg),
		seed:    func() int64 { return time.Now().UnixNano() },
	}
}

func (a *app) routes(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", a.diagramHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}

func (a *app) formValues(r *http.Request) static.FormValues {
	v := static.FormValues{
		Width:     a.cfg.Width,
		Height:    a.cfg.Height,
		Clients:   a.cfg.Clients,
		Capacity:  a.cfg.Capacity,
		MaxDemand: a.cfg.MaxDemand,
		Random:    a.cfg.Random,
	}
	if r.Method != http.MethodPost {
		return v
	}
	_ = r.ParseForm()
	formInt(r, "width", &v.Width)
	formInt(r, "height", &v.Height)
	formInt(r, "clients", &v.Clients)
	formInt(r, "capacity", &v.Capacity)
	formInt(r, "demand", &v.MaxDemand)
	v.Random = r.FormValue("random") == "true"
	if a.cfg.MaxClients > 0 {
		v.Clients = min(v.Clients, a.cfg.MaxClients)
	}
	return v
}

// formInt keeps the default unless the field holds a positive integer.
func formInt(r *http.Request, key string, dst *int) {
	if n, err := strconv.Atoi(r.FormValue(key)); err == nil && n > 0 {
		*dst = n
	}
}

// solve runs the sweep and the savings merge for one instance. The sweep cannot be
// interrupted, so the deadline is enforced around the whole computation.
func (a *app) solve(ctx context.Context, clients []*client.Client, capacity int, log *logger.Logger) (*result, error) {
	reg, err := client.NewRegistry(clients)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	res := &result{reg: reg}
	go func() {
		defer close(done)
		res.diagram, err = voronoi.New(voronoi.WithLogger(log), voronoi.WithObserver(a.metrics)).Run(reg)
		if err != nil {
			return
		}
		res.sol, err = savings.Solve(reg, res.diagram, capacity, savings.WithLogger(log))
		if err == nil {
			a.metrics.Solved(res.sol)
		}
	}()

	select {
	case <-done:
		if err != nil {
			return nil, err
		}
		return res, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// http handler of the page with the chart and the parameter form
func (a *app) diagramHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	v := a.formValues(r)
	rnd := rand.New(rand.NewSource(a.seed()))

	var clients []*client.Client
	if v.Random {
		clients = generateRandClients(rnd, v.Clients, v.Width, v.Height, v.MaxDemand)
	} else {
		clients = generateFixClients(rnd, v.Clients, v.Width, v.Height, v.MaxDemand)
	}

	reqLog := logger.New(logger.WithCapture(), logger.WithLevel(logger.ParseLevel(a.cfg.LogLevel)))
	defer reqLog.ClearLogs()

	ctx, cancel := context.WithTimeout(r.Context(), a.cfg.SweepTimeout)
	defer cancel()

	res, err := a.solve(ctx, clients, v.Capacity, reqLog)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		a.log.Warn("solve timed out", zap.Int("clients", len(clients)), zap.Duration("timeout", a.cfg.SweepTimeout))
		http.Error(w, "computation timed out", http.StatusServiceUnavailable)
		return
	case err != nil:
		a.log.Info("bad instance", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bbox := voronoi.NewBoundingBox(0, float64(v.Width), 0, float64(v.Height))
	scatter := diagramToEcharts(res.reg, res.diagram, res.sol, bbox)

	fmt.Fprintln(w, static.Head)
	fmt.Fprintln(w, static.Form(v))
	fmt.Fprintf(w, `<table class="summary"><tr><td>sites</td><td>%d</td></tr><tr><td>circle events</td><td>%d</td></tr>`+
		`<tr><td>anomalies</td><td>%d</td></tr><tr><td>routes</td><td>%d</td></tr><tr><td>distance</td><td>%.2f</td></tr></table>`,
		res.diagram.Stats.Sites, res.diagram.Stats.CircleEvents, len(res.diagram.Anomalies), len(res.sol.Routes), res.sol.Distance)

	if err := scatter.Render(w); err != nil {
		a.log.Error("render chart", zap.Error(err))
	}

	fmt.Fprintln(w, static.Middle)
	fmt.Fprintln(w, reqLog.HTML())
	fmt.Fprintln(w, static.Tail)
}

func main() {
	cfg, loadedEnv := LoadConfig()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	defer func() { _ = log.Sync() }()
	if !loadedEnv {
		log.Info("no .env file found, using environment variables")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	a := newApp(cfg, log, registry)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.routes(registry),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.SweepTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info("server listening", zap.String("addr", "http://localhost"+cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("listen", zap.Error(err))
	}
}

//go:generate go tool swag init --generalInfo api.go --output docs --outputTypes go

// Package api serves status and control endpoints for a running graphics
// output.
//
//	@title		aumgfx
//	@version	1.0
//	@description	Status and control of a graphics output
//	@BasePath	/
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	_ "github.com/aum-visual/aumgfx/lib/api/docs"
	"github.com/aum-visual/aumgfx/lib/config"
	"github.com/aum-visual/aumgfx/lib/log"
	"github.com/aum-visual/aumgfx/lib/metrics"
	"github.com/aum-visual/aumgfx/lib/output"
	"github.com/aum-visual/aumgfx/lib/stats"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Output is the part of a graphics output the api can see and control.
type Output interface {
	State() output.State
	LastResult() (output.Result, bool)
	RequestClose() bool
	OnStateChange(l output.StateListener)
}

type Api struct {
	srv    http.Server
	mux    *http.ServeMux
	cfg    *config.ApiCfg
	output Output
	log    *log.Logger

	Stats *stats.Stats

	wsMutex   sync.Mutex
	wsClients map[*wsClient]bool
	events    chan EventState
}

func New(cfg *config.ApiCfg, o Output, s *stats.Stats) *Api {
	a := &Api{}
	a.cfg = cfg
	a.mux = http.NewServeMux()
	a.output = o
	a.srv.Addr = cfg.Bind
	a.srv.Handler = a.mux
	a.wsClients = make(map[*wsClient]bool)
	a.events = make(chan EventState, eventQueueLen)
	a.log = log.New("api")
	a.Stats = s

	go a.broadcaster()
	o.OnStateChange(func(_ *output.GraphicsOutput, state output.State) {
		a.queueEvent(EventState{Event: "state", State: state.String()})
	})

	a.routes()
	return a
}

func (a *Api) routes() {
	if a.cfg.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("POST /api/kill", a.kill)
	a.mux.HandleFunc("GET /api/stats", a.getStats)
	a.mux.HandleFunc("GET /api/state", a.getState)
	a.mux.HandleFunc("GET /api/ws", a.handleWebsocket)
	a.mux.Handle("GET /metrics", metrics.Handler())
	a.mux.Handle("GET /api/docs/", httpSwagger.Handler(httpSwagger.URL("/api/docs/doc.json")))
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// @Summary	Close the output window, ending the render loop
// @Router		/api/kill [post]
// @Tags		control
// @Success	200	{string}	string	"ok"
// @Failure	409	{string}	string	"no window open"
func (a *Api) kill(w http.ResponseWriter, _ *http.Request) {
	if !a.output.RequestClose() {
		http.Error(w, "no window open", http.StatusConflict)
		return
	}
	a.log.Infof("closing window as per api request")
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		a.log.Errorf("could not write response: %s", err)
		return
	}
}

// @Summary	Fetch frame counters and uptime
// @Router		/api/stats [get]
// @Tags		status
// @Produce	json
// @Success	200	{object}	stats.Report
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.Stats.Snapshot())
	if err != nil {
		http.Error(w, fmt.Sprintf("could encode stats: %s", err), http.StatusInternalServerError)
		return
	}
}

type StateResp struct {
	State  string `json:"state"`
	Result string `json:"result,omitempty"`
}

// @Summary	Fetch the render loop state and the result of the last run
// @Router		/api/state [get]
// @Tags		status
// @Produce	json
// @Success	200	{object}	StateResp
func (a *Api) getState(w http.ResponseWriter, _ *http.Request) {
	resp := StateResp{State: a.output.State().String()}
	if r, ok := a.output.LastResult(); ok {
		resp.Result = r.String()
	}

	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(resp)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't encode state: %s", err), http.StatusInternalServerError)
		return
	}
}

// ServeInBackground returns nil when the api is not configured.
func ServeInBackground(o Output, s *stats.Stats, cfg *config.ApiCfg) *Api {
	var theApi *Api
	if cfg != nil {
		theApi = New(cfg, o, s)

		theApi.log.Infof("starting web server on %s", cfg.Bind)
		go func() {
			err := theApi.Serve()
			if err != nil {
				theApi.log.Errorf("could not start web server: %s", err)
			}
		}()
	}
	return theApi
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/eugenenazirov/binpacker/internal/history"
	"github.com/eugenenazirov/binpacker/internal/packing"
	"github.com/eugenenazirov/binpacker/internal/solver"
	"github.com/eugenenazirov/binpacker/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const defaultMaxItems = 5000

const (
	bytesPerItem         = 24
	requestOverheadBytes = 4096
)

// Handler wires solver and run storage dependencies into HTTP handlers.
type Handler struct {
	solver    solver.Solver
	storage   storage.Storage
	solverCfg solver.Config
	maxItems  int

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMaxItems caps the number of items accepted per solve request.
func WithMaxItems(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxItems = n
		}
	}
}

// WithSolverConfig sets the parameters reported by GET /api/config.
func WithSolverConfig(cfg solver.Config) HandlerOption {
	return func(h *Handler) {
		h.solverCfg = cfg
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(s solver.Solver, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		solver:    s,
		storage:   store,
		solverCfg: solver.DefaultConfig(),
		maxItems:  defaultMaxItems,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

// maxBodyBytes bounds a solve request to maxItems of the widest integers
// plus room for the name and capacity.
func (h *Handler) maxBodyBytes() int64 {
	return int64(h.maxItems)*bytesPerItem + requestOverheadBytes
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, configResponse{Solver: h.solverCfg, MaxItems: h.maxItems})
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes())
	var req solveRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request too large",
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Items) > h.maxItems {
		writeError(w, http.StatusBadRequest, "Invalid instance",
			fmt.Sprintf("at most %d items are accepted, got %d", h.maxItems, len(req.Items)))
		return
	}

	in := packing.Instance{Name: req.Name, Capacity: req.Capacity, Items: req.Items}
	result, err := h.solver.Solve(in)
	if err != nil {
		switch {
		case errors.Is(err, packing.ErrInvalidInstance):
			writeError(w, http.StatusBadRequest, "Invalid instance", err.Error())
		case errors.Is(err, packing.ErrInfeasibleItem):
			writeError(w, http.StatusUnprocessableEntity, "Infeasible instance", err.Error(),
				fmt.Sprintf("Every item must weigh at most the capacity of %d", req.Capacity))
		default:
			writeInternalError(w, err)
		}
		return
	}

	run, err := h.storage.Save(result)
	if err != nil {
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newRunResponse(run, true))
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	_ = r
	runs, err := h.storage.List()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := runsResponse{Runs: make([]runResponse, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, newRunResponse(run, false))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.storage.Get(r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrRunNotFound) {
			writeError(w, http.StatusNotFound, "Run not found", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newRunResponse(run, true))
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type solveRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Items    []int  `json:"items"`
}

type runResponse struct {
	ID             string              `json:"id"`
	Instance       string              `json:"instance,omitempty"`
	CreatedAt      time.Time           `json:"createdAt"`
	Bins           int                 `json:"bins"`
	LowerBound     int                 `json:"lowerBound"`
	Fitness        float64             `json:"fitness"`
	Generations    int                 `json:"generations"`
	StopReason     string              `json:"stopReason"`
	TabuState      string              `json:"tabuState,omitempty"`
	TabuIterations int                 `json:"tabuIterations,omitempty"`
	SolveTimeMs    int64               `json:"solveTimeMs"`
	Containers     []containerResponse `json:"containers,omitempty"`
	History        []history.Stats     `json:"history,omitempty"`
}

type containerResponse struct {
	Items []int `json:"items"`
	Load  int   `json:"load"`
}

type runsResponse struct {
	Runs []runResponse `json:"runs"`
}

type configResponse struct {
	Solver   solver.Config `json:"solver"`
	MaxItems int           `json:"maxItems"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// newRunResponse flattens a stored run. Listings omit the packing and the
// per-generation history.
func newRunResponse(run storage.Run, detailed bool) runResponse {
	res := run.Result
	resp := runResponse{
		ID:             run.ID,
		Instance:       res.Instance,
		CreatedAt:      run.CreatedAt,
		Bins:           res.Bins,
		LowerBound:     res.LowerBound,
		Fitness:        res.Fitness,
		Generations:    res.Generations,
		StopReason:     string(res.GGAStop),
		TabuState:      res.TabuState,
		TabuIterations: res.TabuIterations,
		SolveTimeMs:    res.Duration.Milliseconds(),
	}
	if !detailed || res.Solution == nil {
		return resp
	}

	resp.Containers = make([]containerResponse, 0, res.Solution.Len())
	for _, c := range res.Solution.Containers() {
		resp.Containers = append(resp.Containers, containerResponse{Items: c.Elements(), Load: c.Used()})
	}
	resp.History = res.History
	return resp
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}

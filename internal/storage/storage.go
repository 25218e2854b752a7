package storage

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eugenenazirov/binpacker/internal/solver"
)

// DefaultMaxRuns bounds the store when no limit is configured.
const DefaultMaxRuns = 100

var (
	// ErrRunNotFound indicates no run is stored under the requested ID.
	ErrRunNotFound = errors.New("run not found")
)

// Run is a stored solver result.
type Run struct {
	ID        string
	CreatedAt time.Time
	Result    solver.Result
}

// Storage keeps recent solve runs.
type Storage interface {
	Save(res solver.Result) (Run, error)
	Get(id string) (Run, error)
	List() ([]Run, error)
}

// MemoryStorage keeps up to limit runs in memory, evicting the oldest first,
// and guards access with a RWMutex.
type MemoryStorage struct {
	mu    sync.RWMutex
	limit int
	runs  map[string]Run
	order []string
	now   func() time.Time
}

// NewMemoryStorage returns an empty store. A limit <= 0 uses DefaultMaxRuns.
func NewMemoryStorage(limit int) *MemoryStorage {
	if limit <= 0 {
		limit = DefaultMaxRuns
	}
	return &MemoryStorage{
		limit: limit,
		runs:  make(map[string]Run, limit),
		now:   time.Now,
	}
}

// Save assigns a fresh UUID to res and stores a copy of it.
func (s *MemoryStorage) Save(res solver.Result) (Run, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return Run{}, err
	}
	run := Run{ID: id.String(), CreatedAt: s.now().UTC(), Result: cloneResult(res)}

	s.mu.Lock()
	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
	for len(s.order) > s.limit {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
	s.mu.Unlock()

	return cloneRun(run), nil
}

// Get returns a defensive copy of the run stored under id.
func (s *MemoryStorage) Get(id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return Run{}, ErrRunNotFound
	}
	return cloneRun(run), nil
}

// List returns the stored runs, newest first.
func (s *MemoryStorage) List() ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Run, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, cloneRun(s.runs[s.order[i]]))
	}
	return out, nil
}

// Len reports how many runs are stored.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func cloneRun(run Run) Run {
	run.Result = cloneResult(run.Result)
	return run
}

func cloneResult(res solver.Result) solver.Result {
	if res.Solution != nil {
		res.Solution = res.Solution.Copy()
	}
	if res.GGASolution != nil {
		res.GGASolution = res.GGASolution.Copy()
	}
	res.History = slices.Clone(res.History)
	return res
}

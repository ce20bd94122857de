package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/JOSU10xD/MapMyCampus/domain"
	"github.com/JOSU10xD/MapMyCampus/pkg/datastructure"
	"github.com/JOSU10xD/MapMyCampus/pkg/engine/navigator"
	"github.com/JOSU10xD/MapMyCampus/pkg/guidance"
	"github.com/JOSU10xD/MapMyCampus/pkg/util"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/twpayne/go-polyline"
)

type GraphStore interface {
	Node(id string) (datastructure.Node, error)
	MustNode(id string) datastructure.Node
	Neighbors(id string) []datastructure.EdgePair
	Nodes() []datastructure.Node
}

type Planner interface {
	ShortestPath(fromID, toID string) ([]datastructure.Node, float64, bool, error)
}

type Snapper interface {
	NearestNode(x, y float64, floor int) (datastructure.Node, error)
}

type CellStore interface {
	NodesNearPoint(x, y float64, floor int) ([]datastructure.Node, error)
}

// Session is one navigating agent. Each session owns its engine plus the
// ticker goroutine driving it; the mutex serializes ticks against input
// events so the engine always sees a single writer.
type Session struct {
	ID   string
	Mode navigator.Mode

	mu      sync.Mutex
	engine  *navigator.Engine
	done    chan struct{}
	metrics *engineMetrics
}

func (s *Session) run(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			start := time.Now()
			s.engine.Tick()
			s.metrics.tickDuration.Observe(time.Since(start).Seconds())
			s.mu.Unlock()
		}
	}
}

type NavigationService struct {
	graph   GraphStore
	planner Planner
	snapper Snapper
	cells   CellStore
	guide   *guidance.InstructionsFromRoute
	metrics *engineMetrics

	tickPeriod    time.Duration
	deadEndPolicy navigator.DeadEndPolicy
	stepDistance  float64

	mu        sync.RWMutex
	sessions  map[string]*Session
	sessionNo int
}

func NewNavigationService(graph GraphStore, planner Planner, snapper Snapper, cells CellStore, reg prometheus.Registerer,
	tickPeriod time.Duration, deadEndPolicy navigator.DeadEndPolicy, stepDistance float64) *NavigationService {
	return &NavigationService{
		graph:         graph,
		planner:       planner,
		snapper:       snapper,
		cells:         cells,
		guide:         guidance.NewInstructionsFromRoute(graph),
		metrics:       newEngineMetrics(reg),
		tickPeriod:    tickPeriod,
		deadEndPolicy: deadEndPolicy,
		stepDistance:  stepDistance,
		sessions:      make(map[string]*Session),
	}
}

func ParseMode(s string) (navigator.Mode, error) {
	switch s {
	case "automatic", "":
		return navigator.ModeAutomatic, nil
	case "manual":
		return navigator.ModeManual, nil
	default:
		return 0, domain.WrapErrorf(nil, domain.ErrBadParamInput, "unknown mode %q, want automatic or manual", s)
	}
}

func (uc *NavigationService) CreateSession(ctx context.Context, mode navigator.Mode) *Session {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.sessionNo++
	id := fmt.Sprintf("session-%d", uc.sessionNo)

	events := navigator.Events{
		DestinationReached: func(nodeID string) {
			uc.metrics.destinationsReached.Inc()
			log.Printf("session %s: arrived at %s", id, nodeID)
		},
		AwaitingTurn: func(options []datastructure.TurnOption, correct datastructure.TurnDirection) {
			log.Printf("session %s: waiting for a turn choice among %d exits", id, len(options))
		},
		RerouteTriggered: func(fromID, destinationID string) {
			uc.metrics.reroutesTriggered.Inc()
			log.Printf("session %s: rerouting from %s to %s", id, fromID, destinationID)
		},
		RerouteFailed: func(fromID, destinationID string) {
			uc.metrics.reroutesFailed.Inc()
			log.Printf("session %s: no route from %s to %s, agent is off route", id, fromID, destinationID)
		},
	}

	s := &Session{
		ID:   id,
		Mode: mode,
		engine: navigator.New(uc.graph, uc.planner, navigator.Config{
			Mode:          mode,
			DeadEndPolicy: uc.deadEndPolicy,
			StepDistance:  uc.stepDistance,
			Events:        events,
		}),
		done:    make(chan struct{}),
		metrics: uc.metrics,
	}
	uc.sessions[id] = s
	go s.run(uc.tickPeriod)
	return s
}

func (uc *NavigationService) CloseSession(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	s, ok := uc.sessions[id]
	if !ok {
		return domain.WrapErrorf(nil, domain.ErrNotFound, "session %q does not exist", id)
	}
	close(s.done)
	delete(uc.sessions, id)
	return nil
}

func (uc *NavigationService) SessionCount() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return len(uc.sessions)
}

func (uc *NavigationService) session(id string) (*Session, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	s, ok := uc.sessions[id]
	if !ok {
		return nil, domain.WrapErrorf(nil, domain.ErrNotFound, "session %q does not exist", id)
	}
	return s, nil
}

func (uc *NavigationService) NavigateTo(ctx context.Context, sessionID, startID, goalID string) (navigator.Snapshot, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return navigator.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.engine.NavigateTo(startID, goalID); err != nil {
		return navigator.Snapshot{}, err
	}
	return s.engine.Snapshot(), nil
}

func (uc *NavigationService) SetDrive(ctx context.Context, sessionID string, held bool) error {
	s, err := uc.session(sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetDrive(held)
	return nil
}

func (uc *NavigationService) SetDirection(ctx context.Context, sessionID, direction string, held bool) error {
	s, err := uc.session(sessionID)
	if err != nil {
		return err
	}
	d, ok := navigator.ParseDirection(direction)
	if !ok {
		return domain.WrapErrorf(nil, domain.ErrBadParamInput, "unknown direction %q, want up, down, left or right", direction)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetDirection(d, held)
	return nil
}

func (uc *NavigationService) SelectTurn(ctx context.Context, sessionID, turn string) (navigator.Snapshot, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return navigator.Snapshot{}, err
	}
	d, ok := datastructure.ParseTurnDirection(turn)
	if !ok {
		return navigator.Snapshot{}, domain.WrapErrorf(nil, domain.ErrBadParamInput, "unknown turn %q, want left, straight or right", turn)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SelectTurn(d)
	return s.engine.Snapshot(), nil
}

func (uc *NavigationService) CancelNavigation(ctx context.Context, sessionID string) error {
	s, err := uc.session(sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Cancel()
	return nil
}

func (uc *NavigationService) SessionSnapshot(ctx context.Context, sessionID string) (navigator.Snapshot, error) {
	s, err := uc.session(sessionID)
	if err != nil {
		return navigator.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot(), nil
}

// RoutePreview plans a route without touching any session: the drawable
// node sequence, an encoded polyline of it, walking instructions and the
// total cost.
func (uc *NavigationService) RoutePreview(ctx context.Context, fromID, toID string) ([]datastructure.Node, string, []guidance.WalkingInstruction, float64, error) {
	path, dist, found, err := uc.planner.ShortestPath(fromID, toID)
	if err != nil {
		return nil, "", nil, 0, err
	}
	if !found {
		return nil, "", nil, 0, domain.WrapErrorf(nil, domain.ErrNotFound, "no walkable path from %q to %q", fromID, toID)
	}

	coords := make([][]float64, len(path))
	for i, n := range path {
		coords[i] = []float64{n.X, n.Y}
	}
	encoded := string(polyline.EncodeCoords(coords))

	instructions, err := uc.guide.GetWalkingInstructions(path)
	if err != nil {
		return nil, "", nil, 0, domain.WrapErrorf(err, domain.ErrInternalServerError, "building walking instructions")
	}

	return path, encoded, instructions, util.RoundFloat(dist, 2), nil
}

func (uc *NavigationService) NearestNode(ctx context.Context, x, y float64, floor int) (datastructure.Node, error) {
	return uc.snapper.NearestNode(x, y, floor)
}

func (uc *NavigationService) NodesNearby(ctx context.Context, x, y float64, floor int) ([]datastructure.Node, error) {
	return uc.cells.NodesNearPoint(x, y, floor)
}

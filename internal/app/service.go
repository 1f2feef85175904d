package app

import (
    "context"
    "errors"
    "sync"
    "time"

    "github.com/rs/zerolog"

    "github.com/jaminalder/tic-tac-toe-history/internal/domain"
)

// Errors exposed by the service layer.
var (
    ErrNotFound = errors.New("game not found")
)

// DefaultTTL is how long an untouched game is kept before Sweep evicts it.
const DefaultTTL = 2 * time.Hour

// GameState is the in-memory state tracked per game.
type GameState struct {
    ID      string
    Game    domain.Game
    Created time.Time
    Updated time.Time
}

func (gs *GameState) snapshot() GameState {
    cp := *gs
    cp.Game = gs.Game.Clone()
    return cp
}

type subscriber struct {
    ch        chan []byte
    closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages games and subscribers.
type Service struct {
    mu     sync.Mutex
    games  map[string]*GameState
    subs   map[string]map[*subscriber]struct{}
    render func(GameState) []byte
    log    zerolog.Logger
    ttl    time.Duration
    now    func() time.Time
}

// NewService creates a service with a default renderer (encodes nothing useful).
func NewService() *Service { return NewServiceWithRenderer(nil) }

// NewServiceWithRenderer allows injecting a renderer for broadcast payloads.
func NewServiceWithRenderer(renderer func(GameState) []byte) *Service {
    if renderer == nil {
        renderer = func(gs GameState) []byte { return nil }
    }
    return &Service{
        games:  make(map[string]*GameState),
        subs:   make(map[string]map[*subscriber]struct{}),
        render: renderer,
        log:    zerolog.Nop(),
        ttl:    DefaultTTL,
        now:    time.Now,
    }
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(GameState) []byte) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if renderer == nil {
        s.render = func(gs GameState) []byte { return nil }
        return
    }
    s.render = renderer
}

// SetLogger replaces the service logger.
func (s *Service) SetLogger(l zerolog.Logger) {
    s.mu.Lock()
    defer s.mu.Unlock()
    s.log = l.With().Str("component", "games").Logger()
}

// SetTTL changes the idle time after which Sweep evicts a game.
func (s *Service) SetTTL(d time.Duration) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if d > 0 {
        s.ttl = d
    }
}

// CreateGame creates and registers a new game.
func (s *Service) CreateGame() (*GameState, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    id := newGameID()
    if _, dup := s.games[id]; dup {
        return nil, errors.New("duplicate game id")
    }
    now := s.now()
    gs := &GameState{ID: id, Game: domain.New(), Created: now, Updated: now}
    s.games[id] = gs
    s.log.Debug().Str("game", id).Int("games", len(s.games)).Msg("game created")
    cp := gs.snapshot()
    return &cp, nil
}

// Get returns a copy of the game state if present.
func (s *Service) Get(id string) (*GameState, bool) {
    s.mu.Lock()
    defer s.mu.Unlock()
    gs, ok := s.games[id]
    if !ok {
        return nil, false
    }
    cp := gs.snapshot()
    return &cp, true
}

// Len returns the number of live games.
func (s *Service) Len() int {
    s.mu.Lock()
    defer s.mu.Unlock()
    return len(s.games)
}

// Play places the next mark at cell (0..8) and broadcasts the new state.
func (s *Service) Play(id string, cell int) (*GameState, error) {
    return s.update(id, func(g *domain.Game) error { return g.Play(cell) })
}

// JumpTo moves a game to an earlier recorded step.
func (s *Service) JumpTo(id string, step int) (*GameState, error) {
    return s.update(id, func(g *domain.Game) error { return g.JumpTo(step) })
}

// ToggleOrder flips the move list order of a game.
func (s *Service) ToggleOrder(id string) (*GameState, error) {
    return s.update(id, func(g *domain.Game) error {
        g.ToggleOrder()
        return nil
    })
}

// update applies fn to the game, updates timestamps, and broadcasts.
func (s *Service) update(id string, fn func(*domain.Game) error) (*GameState, error) {
    s.mu.Lock()
    gs, ok := s.games[id]
    if !ok {
        s.mu.Unlock()
        return nil, ErrNotFound
    }
    if err := fn(&gs.Game); err != nil {
        s.mu.Unlock()
        return nil, err
    }
    gs.Updated = s.now()

    cp := gs.snapshot()
    payload := s.render(cp)
    // Sends never block, so fan-out happens under the lock; a subscriber is
    // only closed after it has left the set.
    dropped := 0
    for sub := range s.subs[id] {
        select {
        case sub.ch <- payload:
        default:
            delete(s.subs[id], sub)
            sub.close()
            dropped++
        }
    }
    log := s.log
    s.mu.Unlock()

    log.Debug().Str("game", id).Int("step", cp.Game.StepNumber).Str("status", cp.Game.Status()).Msg("game updated")
    if dropped > 0 {
        log.Warn().Str("game", id).Int("dropped", dropped).Msg("dropped slow subscribers")
    }
    return &cp, nil
}

// Subscribe registers a subscriber for a game. Returns a channel and an unsubscribe func.
// The subscription ends when ctx is done or the game is evicted.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.games[id]; !ok {
        return nil, nil, ErrNotFound
    }
    set := s.subs[id]
    if set == nil {
        set = make(map[*subscriber]struct{})
        s.subs[id] = set
    }
    sub := &subscriber{ch: make(chan []byte, 1)}
    set[sub] = struct{}{}

    done := make(chan struct{})
    unsubOnce := &sync.Once{}
    unsub := func() {
        unsubOnce.Do(func() {
            s.mu.Lock()
            if set, ok := s.subs[id]; ok {
                delete(set, sub)
                if len(set) == 0 {
                    delete(s.subs, id)
                }
            }
            s.mu.Unlock()
            sub.close()
            close(done)
        })
    }
    go func() {
        select {
        case <-ctx.Done():
            unsub()
        case <-done:
        }
    }()
    return sub.ch, unsub, nil
}

// Sweep evicts games idle for longer than the TTL and closes their subscribers.
func (s *Service) Sweep(now time.Time) int {
    s.mu.Lock()
    var closing []*subscriber
    evicted := 0
    for id, gs := range s.games {
        if now.Sub(gs.Updated) <= s.ttl {
            continue
        }
        delete(s.games, id)
        for sub := range s.subs[id] {
            closing = append(closing, sub)
        }
        delete(s.subs, id)
        evicted++
    }
    log := s.log
    s.mu.Unlock()

    for _, sub := range closing {
        sub.close()
    }
    if evicted > 0 {
        log.Info().Int("evicted", evicted).Msg("swept idle games")
    }
    return evicted
}

// Run sweeps idle games every interval until ctx is done.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
    ticker := time.NewTicker(interval)
    defer ticker.Stop()
    for {
        select {
        case <-ctx.Done():
            return
        case t := <-ticker.C:
            s.Sweep(t)
        }
    }
}

package web

import (
    "bytes"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "strconv"
    "time"

    "github.com/go-chi/chi/v5"
    "github.com/rs/zerolog/hlog"

    "github.com/jaminalder/tic-tac-toe-history/internal/app"
    "github.com/jaminalder/tic-tac-toe-history/internal/domain"
)

type handlers struct {
    svc       *app.Service
    tpl       *templates
    heartbeat time.Duration
}

func (h *handlers) renderBoard(gs app.GameState, errMsg string) []byte {
    return renderTemplate(h.tpl.board, "", newBoardView(gs, errMsg))
}

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "application/json")
    _ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "games": h.svc.Len()})
}

func (h *handlers) index(w http.ResponseWriter, r *http.Request) {
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(renderTemplate(h.tpl.index, "base", nil))
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
    gs, err := h.svc.CreateGame()
    if err != nil {
        hlog.FromRequest(r).Error().Err(err).Msg("create game")
        http.Error(w, "failed to create", http.StatusInternalServerError)
        return
    }
    http.Redirect(w, r, "/game/"+gs.ID, http.StatusSeeOther)
}

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
    gs, ok := h.svc.Get(chi.URLParam(r, "id"))
    if !ok {
        http.NotFound(w, r)
        return
    }
    data := struct {
        ID    string
        Board boardView
    }{ID: gs.ID, Board: newBoardView(*gs, "")}

    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    w.WriteHeader(http.StatusOK)
    _, _ = w.Write(renderTemplate(h.tpl.game, "base", data))
}

func (h *handlers) play(w http.ResponseWriter, r *http.Request) {
    _ = r.ParseForm()
    cell, err := strconv.Atoi(r.Form.Get("cell"))
    if err != nil {
        cell = -1
    }
    id := chi.URLParam(r, "id")
    gs, err := h.svc.Play(id, cell)
    h.fragment(w, r, id, gs, err)
}

func (h *handlers) jump(w http.ResponseWriter, r *http.Request) {
    _ = r.ParseForm()
    step, err := strconv.Atoi(r.Form.Get("step"))
    if err != nil {
        step = -1
    }
    id := chi.URLParam(r, "id")
    gs, err := h.svc.JumpTo(id, step)
    h.fragment(w, r, id, gs, err)
}

func (h *handlers) order(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    gs, err := h.svc.ToggleOrder(id)
    h.fragment(w, r, id, gs, err)
}

// fragment writes the board for gs, or for the unchanged game with a banner when err is set.
func (h *handlers) fragment(w http.ResponseWriter, r *http.Request, id string, gs *app.GameState, err error) {
    var errMsg string
    if err != nil {
        if errors.Is(err, app.ErrNotFound) {
            http.NotFound(w, r)
            return
        }
        errMsg = errorMessage(err)
        hlog.FromRequest(r).Debug().Err(err).Str("game", id).Msg("rejected input")
        if g, ok := h.svc.Get(id); ok {
            gs = g
        }
    }
    if gs == nil {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/html; charset=utf-8")
    _, _ = w.Write(h.renderBoard(*gs, errMsg))
}

func errorMessage(err error) string {
    switch {
    case errors.Is(err, domain.ErrOccupied):
        return "Cell is occupied"
    case errors.Is(err, domain.ErrOutOfBounds):
        return "Out of bounds"
    case errors.Is(err, domain.ErrGameOver):
        return "Game is over"
    case errors.Is(err, domain.ErrNoSuchStep):
        return "No such move"
    default:
        return "Invalid move"
    }
}

type moveJSON struct {
    Step     int    `json:"step"`
    Cell     int    `json:"cell"`
    Label    string `json:"label"`
    Selected bool   `json:"selected"`
}

type stateJSON struct {
    ID         string     `json:"id"`
    Squares    []any      `json:"squares"`
    Step       int        `json:"step"`
    XIsNext    bool       `json:"xIsNext"`
    Status     string     `json:"status"`
    Winner     string     `json:"winner,omitempty"`
    WinnerLine []int      `json:"winnerLine,omitempty"`
    Draw       bool       `json:"draw"`
    Ascending  bool       `json:"ascending"`
    Moves      []moveJSON `json:"moves"`
}

func newStateJSON(gs app.GameState) stateJSON {
    g := gs.Game
    res := g.Result()
    out := stateJSON{
        ID:         gs.ID,
        Squares:    make([]any, 0, 9),
        Step:       g.StepNumber,
        XIsNext:    g.XIsNext(),
        Status:     g.Status(),
        Winner:     res.Winner.String(),
        WinnerLine: res.Line,
        Draw:       res.Draw,
        Ascending:  g.Ascending,
    }
    // empty squares encode as null
    for _, c := range g.Current().Board {
        if c == domain.Empty {
            out.Squares = append(out.Squares, nil)
        } else {
            out.Squares = append(out.Squares, c.String())
        }
    }
    for _, m := range g.Moves() {
        out.Moves = append(out.Moves, moveJSON(m))
    }
    return out
}

func (h *handlers) state(w http.ResponseWriter, r *http.Request) {
    gs, ok := h.svc.Get(chi.URLParam(r, "id"))
    if !ok {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "application/json")
    _ = json.NewEncoder(w).Encode(newStateJSON(*gs))
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
    id := chi.URLParam(r, "id")
    if _, ok := h.svc.Get(id); !ok {
        http.NotFound(w, r)
        return
    }
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("X-Accel-Buffering", "no")
    // In tests or non-EventSource requests, just acknowledge headers and return
    if r.Header.Get("Accept") != "text/event-stream" {
        w.WriteHeader(http.StatusOK)
        return
    }
    flusher, ok := w.(http.Flusher)
    if !ok {
        w.WriteHeader(http.StatusOK)
        return
    }
    ctx := r.Context()
    ch, unsub, err := h.svc.Subscribe(ctx, id)
    if err != nil {
        http.NotFound(w, r)
        return
    }
    defer unsub()
    ticker := time.NewTicker(h.heartbeat)
    defer ticker.Stop()
    // Commit headers here; proxies in front of w do not treat Flush as a write.
    w.WriteHeader(http.StatusOK)
    flusher.Flush()
    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            _, _ = io.WriteString(w, ": ping\n\n")
            flusher.Flush()
        case b, ok := <-ch:
            if !ok {
                return
            }
            writeEvent(w, "board", b)
            flusher.Flush()
        }
    }
}

// writeEvent emits one SSE event; every payload line needs its own data field.
func writeEvent(w io.Writer, name string, payload []byte) {
    _, _ = fmt.Fprintf(w, "event: %s\n", name)
    for _, line := range bytes.Split(payload, []byte("\n")) {
        _, _ = fmt.Fprintf(w, "data: %s\n", line)
    }
    _, _ = io.WriteString(w, "\n")
}

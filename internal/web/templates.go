package web

import (
    "bytes"
    "html/template"

    "github.com/jaminalder/tic-tac-toe-history/internal/app"
    "github.com/jaminalder/tic-tac-toe-history/internal/domain"
)

type templates struct {
    game  *template.Template
    board *template.Template
    index *template.Template
}

func funcs() template.FuncMap {
    return template.FuncMap{
        "iter": func(n int) []int { a := make([]int, n); for i := range a { a[i] = i }; return a },
        "add":  func(a, b int) int { return a + b },
        "mul":  func(a, b int) int { return a * b },
    }
}

func loadTemplates() *templates {
    base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Tic-tac-toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`))
    // Define the board template within the same set so game can include it
    template.Must(base.New("board").Funcs(funcs()).Parse(boardTemplate))
    index := template.Must(template.Must(base.Clone()).New("content").Parse(`<h1>Tic-tac-toe</h1><form action="/game" method="post"><button>New game</button></form>`))
    game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<div hx-ext="sse" hx-sse="connect:/game/{{.ID}}/events">
  <div hx-sse="swap:board">{{template "board" .Board}}</div>
</div>`))
    // Standalone board template used for fragment rendering
    board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
    return &templates{game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
    var buf bytes.Buffer
    if name == "" {
        _ = t.Execute(&buf, data)
    } else {
        _ = t.ExecuteTemplate(&buf, name, data)
    }
    return buf.Bytes()
}

const boardTemplate = `
<div id="board" class="game">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <div class="game-board">
  {{range $r := iter 3}}
  <div class="board-row">
    {{range $c := iter 3}}{{with index $.Cells (add (mul $r 3) $c)}}
      <form hx-post="/game/{{$.ID}}/play" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="cell" value="{{.Index}}">
        <button type="submit" class="square{{if .Highlight}} highlight{{end}}">{{.Symbol}}</button>
      </form>
    {{end}}{{end}}
  </div>
  {{end}}
  </div>
  <div class="game-info">
    <div class="status">{{.Status}}</div>
    <form hx-post="/game/{{.ID}}/order" hx-target="#board" hx-swap="outerHTML" method="post">
      <button type="submit">Order Moves List</button>
    </form>
    <ol>
      {{range .Moves}}
      <li>
        <form hx-post="/game/{{$.ID}}/jump" hx-target="#board" hx-swap="outerHTML" method="post">
          <input type="hidden" name="step" value="{{.Step}}">
          <button type="submit" class="move{{if .Selected}} move-list-item-selected{{end}}">{{.Label}}</button>
        </form>
      </li>
      {{end}}
    </ol>
  </div>
</div>
`

type cellView struct {
    Index     int
    Symbol    string
    Highlight bool
}

// boardView is what the board fragment renders.
type boardView struct {
    ID     string
    Cells  []cellView
    Status string
    Moves  []domain.MoveEntry
    Error  string
}

func newBoardView(gs app.GameState, errMsg string) boardView {
    cur := gs.Game.Current()
    res := gs.Game.Result()
    v := boardView{
        ID:     gs.ID,
        Cells:  make([]cellView, len(cur.Board)),
        Status: gs.Game.Status(),
        Moves:  gs.Game.Moves(),
        Error:  errMsg,
    }
    for i, c := range cur.Board {
        v.Cells[i] = cellView{Index: i, Symbol: c.String()}
    }
    for _, i := range res.Line {
        v.Cells[i].Highlight = true
    }
    return v
}

// Package tui is an interactive terminal front end for a single hot-seat game.
package tui

import (
    "errors"
    "fmt"
    "strings"

    tea "github.com/charmbracelet/bubbletea"
    "github.com/charmbracelet/lipgloss"

    "github.com/jaminalder/tic-tac-toe-history/internal/domain"
)

var (
    cellStyle     = lipgloss.NewStyle().Padding(0, 1)
    cursorStyle   = cellStyle.Reverse(true)
    winStyle      = cellStyle.Bold(true).Foreground(lipgloss.Color("#8BC34A"))
    selectedStyle = lipgloss.NewStyle().Bold(true)
    errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
    helpStyle     = lipgloss.NewStyle().Faint(true)
    panelStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const help = "arrows/hjkl move · enter play · 1-9 play cell · [ ] step · g start · o order · n new · q quit"

// Model is the bubbletea model wrapping one game.
type Model struct {
    Game   domain.Game
    Cursor int
    Err    error
}

// New returns a model for a fresh game with the cursor in the centre.
func New() Model {
    return Model{Game: domain.New(), Cursor: 4}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
    key, ok := msg.(tea.KeyMsg)
    if !ok {
        return m, nil
    }
    // Game is copied with the model; keep history private to this value.
    m.Game = m.Game.Clone()
    m.Err = nil

    switch s := key.String(); s {
    case "q", "ctrl+c":
        return m, tea.Quit
    case "up", "k":
        if m.Cursor >= 3 {
            m.Cursor -= 3
        }
    case "down", "j":
        if m.Cursor < 6 {
            m.Cursor += 3
        }
    case "left", "h":
        if m.Cursor%3 > 0 {
            m.Cursor--
        }
    case "right", "l":
        if m.Cursor%3 < 2 {
            m.Cursor++
        }
    case "enter", " ":
        m.Err = m.Game.Play(m.Cursor)
    case "1", "2", "3", "4", "5", "6", "7", "8", "9":
        m.Cursor = int(s[0] - '1')
        m.Err = m.Game.Play(m.Cursor)
    case "[":
        if m.Game.StepNumber > 0 {
            m.Err = m.Game.JumpTo(m.Game.StepNumber - 1)
        }
    case "]":
        if m.Game.StepNumber < len(m.Game.History)-1 {
            m.Err = m.Game.JumpTo(m.Game.StepNumber + 1)
        }
    case "g":
        m.Err = m.Game.JumpTo(0)
    case "o":
        m.Game.ToggleOrder()
    case "n":
        m.Game = domain.New()
        m.Cursor = 4
    }
    return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
    board := m.boardView()

    var info strings.Builder
    info.WriteString(m.Game.Status())
    info.WriteString("\n\n")
    for _, e := range m.Game.Moves() {
        line := fmt.Sprintf("%2d. %s", e.Step, e.Label)
        if e.Selected {
            line = selectedStyle.Render("> " + line)
        } else {
            line = "  " + line
        }
        info.WriteString(line)
        info.WriteString("\n")
    }

    body := lipgloss.JoinHorizontal(lipgloss.Top,
        panelStyle.Render(board),
        panelStyle.Render(strings.TrimRight(info.String(), "\n")),
    )
    out := body + "\n"
    if m.Err != nil {
        out += errorStyle.Render(errorMessage(m.Err)) + "\n"
    }
    return out + helpStyle.Render(help) + "\n"
}

func (m Model) boardView() string {
    cur := m.Game.Current()
    win := map[int]bool{}
    for _, i := range m.Game.Result().Line {
        win[i] = true
    }
    rows := make([]string, 0, 5)
    for r := 0; r < 3; r++ {
        cells := make([]string, 3)
        for c := 0; c < 3; c++ {
            i := r*3 + c
            sym := cur.Board[i].String()
            if sym == "" {
                sym = "·"
            }
            st := cellStyle
            switch {
            case i == m.Cursor:
                st = cursorStyle
            case win[i]:
                st = winStyle
            }
            cells[c] = st.Render(sym)
        }
        rows = append(rows, strings.Join(cells, "│"))
        if r < 2 {
            rows = append(rows, "───┼───┼───")
        }
    }
    return strings.Join(rows, "\n")
}

func errorMessage(err error) string {
    switch {
    case errors.Is(err, domain.ErrOccupied):
        return "Cell is occupied"
    case errors.Is(err, domain.ErrGameOver):
        return "Game is over: step back with [ or start a new game with n"
    case errors.Is(err, domain.ErrOutOfBounds):
        return "Out of bounds"
    default:
        return err.Error()
    }
}

// Run starts the interactive program and blocks until the user quits.
func Run(opts ...tea.ProgramOption) (domain.Game, error) {
    final, err := tea.NewProgram(New(), opts...).Run()
    if err != nil {
        return domain.Game{}, fmt.Errorf("run tui: %w", err)
    }
    return final.(Model).Game, nil
}

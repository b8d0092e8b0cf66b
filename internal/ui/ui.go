package ui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"daytodo/internal/board"
	"daytodo/internal/config"
)

type focus int

const (
	focusGrid focus = iota
	focusList
	focusAdd
)

const (
	frameInterval = 40 * time.Millisecond
	duplicateWarn = "Task already exists for this day!"
)

// Animation is the confetti the board fires; the view drives its frames.
type Animation interface {
	Active() bool
	Step() bool
	Render(width, height int) string
}

type frameMsg struct{}

type Model struct {
	board      *board.Board
	cfg        config.Config
	anim       Animation
	logger     *log.Logger
	now        func() time.Time
	focus      focus
	cursor     int
	input      textinput.Model
	status     string
	warn       bool
	confirmDel bool
	pendingDel int
	animating  bool
	width      int
}

type Option func(*Model)

func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

func WithClock(fn func() time.Time) Option {
	return func(m *Model) {
		if fn != nil {
			m.now = fn
		}
	}
}

func New(b *board.Board, anim Animation, cfg config.Config, opts ...Option) Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		board:  b,
		cfg:    cfg,
		anim:   anim,
		logger: log.New(io.Discard),
		now:    time.Now,
		input:  ti,
		focus:  focusGrid,
		status: "Press 'a' to add, tab to switch between days and tasks.",
		width:  80,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refreshPlaceholder()
	return m
}

func Run(b *board.Board, anim Animation, cfg config.Config, opts ...Option) error {
	m := New(b, anim, cfg, opts...)
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.focus == focusAdd {
			return m.updateAddMode(msg.String(), msg)
		}
		return m.updateNavMode(msg.String())
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-30, 10)
	case frameMsg:
		if m.anim == nil || !m.anim.Step() {
			m.animating = false
			return m, nil
		}
		return m, frameTick()
	}
	return m, nil
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case m.cfg.Keys.Cancel:
		m.focus = focusGrid
		m.input.SetValue("")
		m.input.Blur()
		m.setStatus("Cancelled")
		return m, nil
	case m.cfg.Keys.Confirm:
		return m.submit()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// submit adds the input text to the selected day. Blank input is ignored
// silently; duplicates keep the text so it can be edited.
func (m Model) submit() (tea.Model, tea.Cmd) {
	day := m.board.Selected()
	err := m.board.AddTask(day, m.input.Value())
	switch {
	case errors.Is(err, board.ErrBlankTask):
		return m, nil
	case errors.Is(err, board.ErrDuplicateTask):
		m.setWarning(duplicateWarn)
		return m, nil
	case errors.Is(err, board.ErrSave):
		m.setError(fmt.Sprintf("save failed: %v", err))
	case err != nil:
		m.setError(err.Error())
		return m, nil
	default:
		m.setStatus(fmt.Sprintf("Added task to day %d", day))
	}
	m.input.SetValue("")
	m.cursor = clampCursor(m.board.Count(day)-1, m.board.Count(day))
	return m, nil
}

func (m Model) updateNavMode(key string) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys
	switch key {
	case "ctrl+c", k.Quit:
		return m, tea.Quit
	case k.Focus:
		if m.focus == focusGrid {
			m.focus = focusList
		} else {
			m.focus = focusGrid
		}
	case k.Add:
		m.focus = focusAdd
		m.setStatus(fmt.Sprintf("Add mode: type a task for day %d and press Enter", m.board.Selected()))
		cmd := m.input.Focus()
		return m, cmd
	case k.Today:
		m.selectDay(m.now().Day())
	case k.Toggle:
		return m.toggleCurrent()
	case k.Delete:
		return m.askDelete()
	case k.ClearDone:
		return m.clearDone()
	case k.Left, "left":
		m.moveGrid(-1)
	case k.Right, "right":
		m.moveGrid(1)
	case k.Up, "up":
		if m.focus == focusGrid {
			m.moveGrid(-gridColumns)
		} else if m.cursor > 0 {
			m.cursor--
		}
	case k.Down, "down":
		if m.focus == focusGrid {
			m.moveGrid(gridColumns)
		} else {
			m.cursor = clampCursor(m.cursor+1, m.board.Count(m.board.Selected()))
		}
	case k.Confirm:
		if m.focus == focusList {
			return m.toggleCurrent()
		}
		m.focus = focusList
	}
	return m, nil
}

func (m *Model) moveGrid(delta int) {
	day := m.board.Selected() + delta
	if day < board.MinDay || day > board.MaxDay {
		return
	}
	m.selectDay(day)
}

func (m *Model) selectDay(day int) {
	if err := m.board.SelectDay(day); err != nil {
		m.setError(err.Error())
		return
	}
	m.cursor = 0
	m.refreshPlaceholder()
	m.setStatus(fmt.Sprintf("Day %d: %s", day, pluralTasks(m.board.Count(day))))
}

func (m Model) toggleCurrent() (tea.Model, tea.Cmd) {
	return m.toggleAt(m.cursor)
}

func (m Model) toggleAt(index int) (tea.Model, tea.Cmd) {
	day := m.board.Selected()
	if m.board.Count(day) == 0 {
		return m, nil
	}
	m.cursor = clampCursor(index, m.board.Count(day))
	err := m.board.ToggleTask(day, m.cursor)
	if err != nil && !errors.Is(err, board.ErrSave) {
		m.setError(fmt.Sprintf("toggle failed: %v", err))
		return m, nil
	}
	task := m.board.Tasks(day)[m.cursor]
	if err != nil {
		m.setError(fmt.Sprintf("save failed: %v", err))
	} else if task.Completed {
		m.setStatus(fmt.Sprintf("Completed %q", task.Text))
	} else {
		m.setStatus(fmt.Sprintf("Reopened %q", task.Text))
	}
	return m.startAnimation()
}

func (m Model) startAnimation() (tea.Model, tea.Cmd) {
	if m.anim == nil || m.animating || !m.anim.Active() {
		return m, nil
	}
	m.animating = true
	return m, frameTick()
}

func (m Model) askDelete() (tea.Model, tea.Cmd) {
	day := m.board.Selected()
	tasks := m.board.Tasks(day)
	if len(tasks) == 0 {
		return m, nil
	}
	m.cursor = clampCursor(m.cursor, len(tasks))
	m.confirmDel = true
	m.pendingDel = m.cursor
	m.setWarning(fmt.Sprintf("Delete \"%s\"? y/n", tasks[m.cursor].Text))
	return m, nil
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.setStatus("Delete cancelled")
		m.confirmDel = false
		return m, nil
	case "y", "Y":
		m.confirmDel = false
		return m.deleteAt(m.pendingDel)
	default:
		return m, nil
	}
}

func (m Model) deleteAt(index int) (tea.Model, tea.Cmd) {
	day := m.board.Selected()
	err := m.board.DeleteTask(day, index)
	switch {
	case errors.Is(err, board.ErrSave):
		m.setError(fmt.Sprintf("save failed: %v", err))
	case err != nil:
		m.setError(fmt.Sprintf("delete failed: %v", err))
		return m, nil
	default:
		m.setStatus("Deleted task")
	}
	m.cursor = clampCursor(m.cursor, m.board.Count(day))
	return m, nil
}

func (m Model) clearDone() (tea.Model, tea.Cmd) {
	day := m.board.Selected()
	removed, err := m.board.ClearCompleted(day)
	if err != nil {
		m.setError(fmt.Sprintf("clear failed: %v", err))
		return m, nil
	}
	if removed == 0 {
		m.setStatus("No completed tasks to clear")
		return m, nil
	}
	m.cursor = clampCursor(m.cursor, m.board.Count(day))
	m.setStatus(fmt.Sprintf("Cleared %s", pluralTasks(removed)))
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.confirmDel {
		return m, nil
	}
	if msg.Y == inputRow {
		if m.onAddButton(msg.X) {
			return m.submit()
		}
		if m.focus == focusAdd {
			return m, nil
		}
		m.focus = focusAdd
		cmd := m.input.Focus()
		return m, cmd
	}
	if day, ok := dayAt(msg.X, msg.Y); ok {
		m.leaveInput()
		m.focus = focusGrid
		m.selectDay(day)
		return m, nil
	}
	if idx, ok := m.taskAt(msg.Y); ok {
		m.leaveInput()
		m.focus = focusList
		if m.onDeleteControl(idx, msg.X) {
			return m.deleteAt(idx)
		}
		return m.toggleAt(idx)
	}
	return m, nil
}

// leaveInput blurs the add input; its text stays for a later submit.
func (m *Model) leaveInput() {
	if m.focus == focusAdd {
		m.input.Blur()
	}
}

func (m *Model) refreshPlaceholder() {
	m.input.Placeholder = fmt.Sprintf("Add a new task for day %d...", m.board.Selected())
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.warn = false
}

func (m *Model) setWarning(s string) {
	m.status = warnStyle.Render(s)
	m.warn = true
}

func (m *Model) setError(s string) {
	m.logger.Warn("ui action failed", "err", s)
	m.status = errorStyle.Render(s)
	m.warn = true
}

func pluralTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

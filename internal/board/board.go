// Package board holds the day-scoped task store.
package board

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	MinDay = 1
	MaxDay = 31
)

var (
	ErrBlankTask     = errors.New("task text is empty")
	ErrDuplicateTask = errors.New("task already exists for this day")
	ErrDayOutOfRange = errors.New("day out of range")
	ErrNoSuchTask    = errors.New("no such task")
	// ErrSave marks a failed write. The in-memory change is kept.
	ErrSave = errors.New("save snapshot")
)

type Task struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Snapshot maps a day to its tasks in insertion order. A missing day is an
// empty list.
type Snapshot map[int][]Task

// Slot reads and writes the full encoded snapshot. Read returns nil data
// when nothing has been saved yet.
type Slot interface {
	Read() ([]byte, error)
	Write(data []byte) error
}

// Celebration is fired when a task becomes completed.
type Celebration interface {
	Fire()
}

type Board struct {
	tasks       Snapshot
	selected    int
	slot        Slot
	celebration Celebration
	logger      *log.Logger
	today       func() time.Time
}

type Option func(*Board)

func WithLogger(l *log.Logger) Option {
	return func(b *Board) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithToday overrides the clock used to pick the initially selected day.
func WithToday(fn func() time.Time) Option {
	return func(b *Board) {
		if fn != nil {
			b.today = fn
		}
	}
}

// New loads the snapshot from slot. Missing or unreadable data yields an
// empty board.
func New(slot Slot, celebration Celebration, opts ...Option) *Board {
	b := &Board{
		tasks:       Snapshot{},
		slot:        slot,
		celebration: celebration,
		logger:      log.New(io.Discard),
		today:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.selected = b.today().Day()
	b.load()
	return b
}

func (b *Board) load() {
	if b.slot == nil {
		return
	}
	data, err := b.slot.Read()
	if err != nil {
		b.logger.Debug("read snapshot failed, starting empty", "err", err)
		return
	}
	snap, err := Decode(data)
	if err != nil {
		b.logger.Debug("decode snapshot failed, starting empty", "err", err)
		return
	}
	b.tasks = snap
	b.logger.Debug("loaded snapshot", "days", len(snap))
}

func (b *Board) save() error {
	if b.slot == nil {
		return nil
	}
	data, err := Encode(b.tasks)
	if err != nil {
		b.logger.Error("encode snapshot", "err", err)
		return fmt.Errorf("%w: encode: %w", ErrSave, err)
	}
	if err := b.slot.Write(data); err != nil {
		b.logger.Error("save snapshot", "err", err)
		return fmt.Errorf("%w: %w", ErrSave, err)
	}
	return nil
}

func (b *Board) AddTask(day int, text string) error {
	if err := checkDay(day); err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return ErrBlankTask
	}
	current := b.tasks[day]
	folded := strings.ToLower(text)
	for _, t := range current {
		if strings.ToLower(t.Text) == folded {
			return fmt.Errorf("%w: %q", ErrDuplicateTask, text)
		}
	}
	updated := make([]Task, len(current), len(current)+1)
	copy(updated, current)
	updated = append(updated, Task{Text: text})
	b.tasks[day] = updated
	b.logger.Debug("added task", "day", day, "text", text)
	return b.save()
}

// ToggleTask flips the completion of the task at index. The celebration
// fires only when the task becomes completed.
func (b *Board) ToggleTask(day, index int) error {
	current, err := b.lookup(day, index)
	if err != nil {
		return err
	}
	updated := make([]Task, len(current))
	copy(updated, current)
	wasCompleted := updated[index].Completed
	updated[index].Completed = !wasCompleted
	b.tasks[day] = updated
	if !wasCompleted && b.celebration != nil {
		b.celebration.Fire()
	}
	b.logger.Debug("toggled task", "day", day, "index", index, "completed", !wasCompleted)
	return b.save()
}

func (b *Board) DeleteTask(day, index int) error {
	current, err := b.lookup(day, index)
	if err != nil {
		return err
	}
	updated := make([]Task, 0, len(current)-1)
	updated = append(updated, current[:index]...)
	updated = append(updated, current[index+1:]...)
	b.tasks[day] = updated
	b.logger.Debug("deleted task", "day", day, "index", index)
	return b.save()
}

// ClearCompleted drops every completed task of day and reports how many
// were removed. Nothing is written when none were completed.
func (b *Board) ClearCompleted(day int) (int, error) {
	if err := checkDay(day); err != nil {
		return 0, err
	}
	current := b.tasks[day]
	updated := make([]Task, 0, len(current))
	for _, t := range current {
		if !t.Completed {
			updated = append(updated, t)
		}
	}
	removed := len(current) - len(updated)
	if removed == 0 {
		return 0, nil
	}
	b.tasks[day] = updated
	b.logger.Debug("cleared completed tasks", "day", day, "removed", removed)
	return removed, b.save()
}

func (b *Board) SelectDay(day int) error {
	if err := checkDay(day); err != nil {
		return err
	}
	b.selected = day
	return nil
}

func (b *Board) Selected() int {
	return b.selected
}

func (b *Board) Tasks(day int) []Task {
	current := b.tasks[day]
	out := make([]Task, len(current))
	copy(out, current)
	return out
}

func (b *Board) Count(day int) int {
	return len(b.tasks[day])
}

// Days returns the days holding at least one task, ascending.
func (b *Board) Days() []int {
	var days []int
	for day, tasks := range b.tasks {
		if len(tasks) > 0 {
			days = append(days, day)
		}
	}
	sort.Ints(days)
	return days
}

func (b *Board) Snapshot() Snapshot {
	return b.tasks.Clone()
}

func (b *Board) lookup(day, index int) ([]Task, error) {
	if err := checkDay(day); err != nil {
		return nil, err
	}
	current := b.tasks[day]
	if index < 0 || index >= len(current) {
		return nil, fmt.Errorf("%w: day %d index %d", ErrNoSuchTask, day, index)
	}
	return current, nil
}

func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	for day, tasks := range s {
		cp := make([]Task, len(tasks))
		copy(cp, tasks)
		out[day] = cp
	}
	return out
}

func checkDay(day int) error {
	if day < MinDay || day > MaxDay {
		return fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	return nil
}

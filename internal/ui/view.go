package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"daytodo/internal/board"
	"daytodo/internal/config"
)

// Screen layout, in terminal rows. Mouse hit-testing depends on it.
const (
	gridColumns = 7
	gridRows    = (board.MaxDay + gridColumns - 1) / gridColumns
	cellWidth   = 9
	gridTop     = 2
	inputRow    = gridTop + gridRows + 1
	listTop     = gridTop + gridRows + 4
	canvasRows  = 8

	addButton     = "[Add Task]"
	deleteControl = "[del]"
)

func (m Model) View() string {
	var b strings.Builder
	day := m.board.Selected()

	b.WriteString(titleStyle.Render("To-Do List for the Month"))
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("Day %d", day)))
	b.WriteString("\n")
	b.WriteString(m.renderTaskList())

	if m.anim != nil && m.anim.Active() {
		b.WriteString("\n")
		b.WriteString(m.anim.Render(m.width, canvasRows))
	}

	b.WriteString("\n---\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

// renderGrid draws days 1..31 in rows of seven, whatever the month.
func (m Model) renderGrid() string {
	var b strings.Builder
	selected := m.board.Selected()
	for row := 0; row < gridRows; row++ {
		if row > 0 {
			b.WriteString("\n")
		}
		for col := 0; col < gridColumns; col++ {
			day := row*gridColumns + col + 1
			if day > board.MaxDay {
				break
			}
			label := fmt.Sprintf("%2d", day)
			if n := m.board.Count(day); n > 0 {
				label += " " + badgeStyle.Render(fmt.Sprintf("[%d]", n))
			}
			if day == selected {
				b.WriteString(selectedStyle.Render(label))
			} else {
				b.WriteString(cellStyle.Render(label))
			}
		}
	}
	return b.String()
}

func (m Model) inputPrefix() string {
	prompt := "  "
	if m.focus == focusAdd {
		prompt = "> "
	}
	return prompt + m.input.View() + "  "
}

func (m Model) renderInput() string {
	return m.inputPrefix() + buttonStyle.Render(addButton)
}

func (m Model) renderTaskList() string {
	day := m.board.Selected()
	tasks := m.board.Tasks(day)
	if len(tasks) == 0 {
		return mutedStyle.Render(fmt.Sprintf("No tasks for day %d.", day))
	}
	var b strings.Builder
	for i, t := range tasks {
		if i > 0 {
			b.WriteString("\n")
		}
		cursor := " "
		if m.cursor == i && m.focus == focusList {
			cursor = ">"
		}
		checkbox := "[ ]"
		text := t.Text
		if t.Completed {
			checkbox = "[x]"
			text = doneStyle.Render(text)
		}
		fmt.Fprintf(&b, "%s %d. %s %s  %s", cursor, i+1, checkbox, text, deleteStyle.Render(deleteControl))
	}
	return b.String()
}

// taskPrefix is the unstyled part of a task row before its delete control.
func taskPrefix(i int, t board.Task) string {
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}
	return fmt.Sprintf("  %d. %s %s  ", i+1, checkbox, t.Text)
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s focus • %s/%s/%s/%s move • %s add • %s toggle • %s delete • %s clear done • %s today • %s quit",
		k.Focus, k.Left, k.Down, k.Up, k.Right, k.Add, keyName(k.Toggle), k.Delete, k.ClearDone, k.Today, k.Quit)
}

func keyName(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// dayAt maps a click position to a grid cell.
func dayAt(x, y int) (int, bool) {
	row := y - gridTop
	if row < 0 || row >= gridRows || x < 0 {
		return 0, false
	}
	col := x / cellWidth
	if col >= gridColumns {
		return 0, false
	}
	day := row*gridColumns + col + 1
	if day > board.MaxDay {
		return 0, false
	}
	return day, true
}

// onAddButton reports whether a click at column x on the input row hits
// the add button.
func (m Model) onAddButton(x int) bool {
	start := lipgloss.Width(m.inputPrefix())
	return x >= start && x < start+len(addButton)
}

// onDeleteControl reports whether a click at column x hits the delete
// control of task idx.
func (m Model) onDeleteControl(idx, x int) bool {
	tasks := m.board.Tasks(m.board.Selected())
	if idx < 0 || idx >= len(tasks) {
		return false
	}
	start := lipgloss.Width(taskPrefix(idx, tasks[idx]))
	return x >= start && x < start+len(deleteControl)
}

// taskAt maps a click row to an index in the selected day's list.
func (m Model) taskAt(y int) (int, bool) {
	idx := y - listTop
	if idx < 0 || idx >= m.board.Count(m.board.Selected()) {
		return 0, false
	}
	return idx, true
}

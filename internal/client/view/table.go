// Package view turns user collections into terminal tables with per-row
// edit and delete actions.
package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"userdesk/internal/shared/models"
)

type ActionKind string

const (
	ActionEdit   ActionKind = "edit"
	ActionDelete ActionKind = "delete"
)

// Action is a trigger bound to one user id.
type Action struct {
	Kind ActionKind
	ID   int64
}

func (a Action) Label() string {
	switch a.Kind {
	case ActionEdit:
		return fmt.Sprintf("Edit #%d", a.ID)
	case ActionDelete:
		return fmt.Sprintf("Delete #%d", a.ID)
	}
	return fmt.Sprintf("%s #%d", a.Kind, a.ID)
}

type Row struct {
	ID      int64
	Cells   []string
	Actions []Action
}

var Headers = []string{"ID", "NAME", "EMAIL", "AGE", "ACTIONS"}

// BuildRows maps users to rows one to one, in order.
func BuildRows(users []models.User) []Row {
	rows := make([]Row, 0, len(users))
	for _, u := range users {
		rows = append(rows, Row{
			ID: u.ID,
			Cells: []string{
				strconv.FormatInt(u.ID, 10),
				u.Name,
				u.Email,
				strconv.Itoa(u.Age),
			},
			Actions: []Action{{Kind: ActionEdit, ID: u.ID}, {Kind: ActionDelete, ID: u.ID}},
		})
	}
	return rows
}

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	actionStyle = cellStyle.Foreground(lipgloss.Color("170"))
	plainStyle  = lipgloss.NewStyle().PaddingRight(2)
)

// Table renders users to a writer. With styled set it draws a bordered,
// coloured table; otherwise it writes plain aligned columns suitable for
// pipes.
type Table struct {
	out    io.Writer
	styled bool
	rows   []Row
}

func NewTable(out io.Writer, styled bool) *Table {
	return &Table{out: out, styled: styled}
}

// Render replaces the current rows with users and redraws the whole table.
func (t *Table) Render(users []models.User) {
	t.rows = BuildRows(users)
	fmt.Fprintln(t.out, t.String())
}

// Rows returns the rows of the last render.
func (t *Table) Rows() []Row { return t.rows }

// Actions returns the triggers of every rendered row, in row order.
func (t *Table) Actions() []Action {
	var out []Action
	for _, r := range t.rows {
		out = append(out, r.Actions...)
	}
	return out
}

func (t *Table) String() string {
	data := make([][]string, 0, len(t.rows))
	for _, r := range t.rows {
		labels := make([]string, 0, len(r.Actions))
		for _, a := range r.Actions {
			labels = append(labels, a.Label())
		}
		data = append(data, append(append([]string(nil), r.Cells...), strings.Join(labels, "  ")))
	}

	tbl := table.New().Headers(Headers...).Rows(data...)
	if t.styled {
		tbl = tbl.
			Border(lipgloss.RoundedBorder()).
			BorderStyle(borderStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				case col == len(Headers)-1:
					return actionStyle
				}
				return cellStyle
			})
	} else {
		tbl = tbl.
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderHeader(false).
			BorderColumn(false).
			StyleFunc(func(row, col int) lipgloss.Style { return plainStyle })
	}
	return tbl.String()
}

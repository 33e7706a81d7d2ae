package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdesk/internal/shared/models"
)

func TestBuildRows_SingleUser(t *testing.T) {
	rows := BuildRows([]models.User{{ID: 1, Name: "A", Email: "a@x.com", Age: 30}})
	want := []Row{{
		ID:      1,
		Cells:   []string{"1", "A", "a@x.com", "30"},
		Actions: []Action{{Kind: ActionEdit, ID: 1}, {Kind: ActionDelete, ID: 1}},
	}}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildRows_OneRowPerUserInOrder(t *testing.T) {
	users := []models.User{
		{ID: 9, Name: "Z"},
		{ID: 2, Name: "B"},
		{ID: 5, Name: "E"},
	}
	rows := BuildRows(users)
	require.Len(t, rows, len(users))
	for i, u := range users {
		assert.Equal(t, u.ID, rows[i].ID)
		assert.Equal(t, u.Name, rows[i].Cells[1])
	}
	assert.Empty(t, BuildRows(nil))
}

func TestActionLabels(t *testing.T) {
	assert.Equal(t, "Edit #3", Action{Kind: ActionEdit, ID: 3}.Label())
	assert.Equal(t, "Delete #3", Action{Kind: ActionDelete, ID: 3}.Label())
}

func TestTable_RenderReplacesRows(t *testing.T) {
	buf := new(bytes.Buffer)
	tbl := NewTable(buf, false)

	tbl.Render([]models.User{{ID: 1, Name: "A", Email: "a@x.com", Age: 30}, {ID: 2, Name: "B"}})
	require.Len(t, tbl.Rows(), 2)
	assert.Len(t, tbl.Actions(), 4)

	tbl.Render([]models.User{{ID: 3, Name: "C"}})
	require.Len(t, tbl.Rows(), 1)
	assert.Equal(t, int64(3), tbl.Rows()[0].ID)
	assert.Equal(t, []Action{{Kind: ActionEdit, ID: 3}, {Kind: ActionDelete, ID: 3}}, tbl.Actions())
}

func TestTable_PlainOutput(t *testing.T) {
	buf := new(bytes.Buffer)
	NewTable(buf, false).Render([]models.User{{ID: 1, Name: "A", Email: "a@x.com", Age: 30}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"ID", "NAME", "EMAIL", "AGE", "ACTIONS"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "A", "a@x.com", "30", "Edit", "#1", "Delete", "#1"}, strings.Fields(lines[1]))
}

func TestTable_EmptyCollection(t *testing.T) {
	buf := new(bytes.Buffer)
	tbl := NewTable(buf, false)
	tbl.Render([]models.User{{ID: 1}})
	buf.Reset()

	tbl.Render(nil)
	assert.Empty(t, tbl.Rows())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "EMAIL")
}

func TestTable_StyledOutputHasBorders(t *testing.T) {
	buf := new(bytes.Buffer)
	NewTable(buf, true).Render([]models.User{{ID: 1, Name: "A", Email: "a@x.com", Age: 30}})
	out := buf.String()
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "a@x.com")
	assert.Contains(t, out, "Delete #1")
}

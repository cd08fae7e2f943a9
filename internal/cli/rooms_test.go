package cli

import (
	"context"
	"io"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/anchorplan/anchorplan/pkg/floorplan"
	"github.com/anchorplan/anchorplan/pkg/planio"
)

// keyPress feeds one key event to the model and returns the new state.
func keyPress(m RoomListModel, key string) RoomListModel {
	var msg tea.KeyMsg
	switch key {
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(RoomListModel)
}

func TestRoomRows(t *testing.T) {
	c := New(io.Discard, LogInfo)
	plan := officePlan()

	rows, err := c.roomRows(withLogger(context.Background(), c.Logger), plan, &roomsOpts{noCache: true})
	if err != nil {
		t.Fatalf("roomRows() error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rooms, want 1", len(rows))
	}

	r := rows[0]
	if r.Index != 0 {
		t.Errorf("room index = %d, want 0", r.Index)
	}
	if r.Class != floorplan.Compact {
		t.Errorf("room class = %v, want compact", r.Class)
	}
	if math.Abs(r.AreaM2-25) > 0.5 {
		t.Errorf("room area = %v m², want ~25", r.AreaM2)
	}
	if math.Abs(r.SpanM-math.Sqrt(50)) > 0.2 {
		t.Errorf("room span = %v m, want ~%.2f", r.SpanM, math.Sqrt(50))
	}
	if r.Vertices != 4 {
		t.Errorf("room vertices = %d, want 4", r.Vertices)
	}
	if r.Complex {
		t.Error("a plain square room should not be complex")
	}
}

func TestRoomRowsNoWalls(t *testing.T) {
	c := New(io.Discard, LogInfo)
	plan := &planio.Plan{ScaleRatio: 10}

	rows, err := c.roomRows(withLogger(context.Background(), c.Logger), plan, &roomsOpts{noCache: true})
	if err != nil {
		t.Fatalf("roomRows() error: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("got %d rooms from an empty plan, want 0", len(rows))
	}
}

func TestRoomRowsMissingScale(t *testing.T) {
	c := New(io.Discard, LogInfo)
	plan := officePlan()
	plan.ScaleRatio = 0

	if _, err := c.roomRows(withLogger(context.Background(), c.Logger), plan, &roomsOpts{noCache: true}); err == nil {
		t.Error("roomRows without a scale should fail")
	}
}

func TestRenderRoomTable(t *testing.T) {
	rows := []RoomRow{
		{Index: 0, Class: floorplan.Compact, AreaM2: 25, SpanM: 7.1, Junctions: 1, Vertices: 4},
		{Index: 1, Class: floorplan.Large, AreaM2: 180, SpanM: 19.2, Junctions: 4, Vertices: 8, Complex: true},
	}

	got := renderRoomTable(rows, -1, 0, len(rows))
	for _, want := range []string{"Room", "Class", "compact", "large", "complex", "180.0"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q", want)
		}
	}
}

func TestRoomListModelNavigation(t *testing.T) {
	rows := make([]RoomRow, 3)
	for i := range rows {
		rows[i] = RoomRow{Index: i, Vertices: 4}
	}
	m := NewRoomListModel(rows)

	m = keyPress(m, "down")
	m = keyPress(m, "down")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d after two downs, want 2", m.Cursor)
	}

	m = keyPress(m, "down")
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, should stop at the last row", m.Cursor)
	}

	m = keyPress(m, "up")
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after up, want 1", m.Cursor)
	}

	m = keyPress(m, "enter")
	if m.Selected == nil {
		t.Fatal("enter should select the room under the cursor")
	}
	if m.Selected.Row.Index != 1 {
		t.Errorf("selected room %d, want 1", m.Selected.Row.Index)
	}
}

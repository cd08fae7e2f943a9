package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/anchorplan/anchorplan/pkg/floorplan"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// RoomListModel - Interactive room browsing
// =============================================================================

// RoomRow is one row of the room browser: a detected room together with
// its classification and skeleton stats.
type RoomRow struct {
	Index     int
	Class     floorplan.Class
	AreaM2    float64
	SpanM     float64
	Junctions int
	Vertices  int
	Complex   bool
}

// RoomSelection holds the result of the room selection.
type RoomSelection struct {
	Row RoomRow
}

// RoomListModel is the bubbletea model for interactive room browsing.
type RoomListModel struct {
	Rooms    []RoomRow
	Cursor   int
	Selected *RoomSelection
	Height   int
	Offset   int
}

// NewRoomListModel creates a new room list model.
func NewRoomListModel(rooms []RoomRow) RoomListModel {
	return RoomListModel{
		Rooms:  rooms,
		Cursor: 0,
		Height: 15,
		Offset: 0,
	}
}

func (m RoomListModel) Init() tea.Cmd {
	return nil
}

func (m RoomListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rooms)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Selected = &RoomSelection{Row: m.Rooms[m.Cursor]}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m RoomListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Rooms"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ detail  q quit"))
	b.WriteString("\n\n")

	b.WriteString(renderRoomTable(m.Rooms, m.Cursor, m.Offset, m.Height))
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rooms))))

	return b.String()
}

// =============================================================================
// Room Table
// =============================================================================

// renderRoomTable renders rows[offset:offset+height] as a bordered table.
// A cursor of -1 renders the plain, non-interactive listing.
func renderRoomTable(rooms []RoomRow, cursor, offset, height int) string {
	end := offset + height
	if end > len(rooms) {
		end = len(rooms)
	}

	rows := [][]string{}
	for i := offset; i < end; i++ {
		r := rooms[i]

		marker := "  "
		if i == cursor {
			marker = "▸ "
		}

		topology := "simple"
		if r.Complex {
			topology = "complex"
		}

		rows = append(rows, []string{
			marker,
			fmt.Sprintf("%d", r.Index),
			r.Class.String(),
			fmt.Sprintf("%.1f", r.AreaM2),
			fmt.Sprintf("%.1f", r.SpanM),
			fmt.Sprintf("%d", r.Junctions),
			fmt.Sprintf("%d", r.Vertices),
			topology,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Room", "Class", "Area m²", "Span m", "Junctions", "Vertices", "Topology").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := offset + row
			if actualIdx >= len(rooms) {
				return lipgloss.NewStyle()
			}
			r := rooms[actualIdx]
			isCurrent := actualIdx == cursor

			base := lipgloss.NewStyle()
			if isCurrent {
				base = base.Bold(true)
			}

			switch {
			case col == 2 && r.Class == floorplan.Large:
				return base.Foreground(colorGreen)
			case col == 7 && r.Complex:
				return base.Foreground(colorYellow)
			case isCurrent:
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorWhite)
		})

	return t.Render()
}

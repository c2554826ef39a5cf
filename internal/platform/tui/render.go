package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nvoronin/railrush/internal/sim"
)

// Characters for the top-down track view. The avatar sits near the bottom;
// the world scrolls toward it.
const (
	railChar    = '│'
	markerChar  = '━'
	avatarChar  = '◈'
	hazardAChar = '▄'
	hazardBChar = '█'
	targetChar  = '○'
	struckChar  = '×'
)

// laneCols is the number of screen columns per lane.
const laneCols = 5

// paint identifies the style of a cell.
type paint uint8

const (
	paintNone paint = iota
	paintRail
	paintMarker
	paintAvatar
	paintHazard
	paintTarget
	paintStruck
)

var paintStyles = map[paint]lipgloss.Style{
	paintNone:   lipgloss.NewStyle(),
	paintRail:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	paintMarker: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	paintAvatar: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	paintHazard: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	paintTarget: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	paintStruck: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

var (
	hudStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("236")).Padding(0, 1)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	overlayStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

type cell struct {
	r rune
	p paint
}

// renderView draws the HUD, the scrolling track, and any overlay.
func renderView(g *sim.Game, state sim.State, width, height int, warn bool, saveNote string) string {
	if width < 20 || height < 8 {
		return "terminal too small"
	}

	playRows := height - 2
	cfg := g.Config()
	spacing := cfg.Track.LaneSpacing()
	trackCols := cfg.Track.LaneCount * laneCols
	left := (width - trackCols) / 2
	if left < 0 {
		left = 0
	}

	grid := make([][]cell, playRows)
	for i := range grid {
		grid[i] = make([]cell, width)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}

	avatar := g.Avatar()
	avatarRow := playRows - 3
	zPerRow := cfg.Track.SlabLength / 4

	// col maps a lateral world coordinate to a screen column.
	col := func(x float64) int {
		f := x/spacing + float64(cfg.Track.LaneCount-1)/2
		return left + int(f*laneCols) + laneCols/2
	}
	// row maps a longitudinal world coordinate to a screen row.
	row := func(z float64) int {
		return avatarRow - int((z-avatar.Z)/zPerRow)
	}
	set := func(r, c int, ch rune, p paint) {
		if r >= 0 && r < playRows && c >= 0 && c < width {
			grid[r][c] = cell{r: ch, p: p}
		}
	}

	for _, slab := range g.Slabs() {
		if !slab.Visible {
			continue
		}
		top, bottom := row(slab.EndZ)+1, row(slab.StartZ)
		for r := max(top, 0); r <= min(bottom, playRows-1); r++ {
			for _, lane := range slab.Lanes {
				set(r, col(lane.X), railChar, paintRail)
			}
		}
		for _, mz := range slab.Markers {
			r := row(mz)
			for c := left; c < left+trackCols; c++ {
				set(r, c, markerChar, paintMarker)
			}
		}
		for _, h := range slab.Hazards {
			r, c := row(h.Pos.Z), col(h.Pos.X)
			if h.Variant == sim.HazardVariantA {
				set(r, c-1, hazardAChar, paintHazard)
				set(r, c, hazardAChar, paintHazard)
				set(r, c+1, hazardAChar, paintHazard)
			} else {
				set(r, c, hazardBChar, paintHazard)
			}
		}
		for _, t := range slab.Targets {
			if t.Struck() {
				set(row(t.Pos.Z), col(t.Pos.X), struckChar, paintStruck)
			} else {
				set(row(t.Pos.Z), col(t.Pos.X), targetChar, paintTarget)
			}
		}
	}

	set(avatarRow, col(avatar.X), avatarChar, paintAvatar)

	var sb strings.Builder
	sb.WriteString(renderHUD(state, warn, saveNote))
	sb.WriteRune('\n')
	for r := range playRows {
		sb.WriteString(renderRow(grid[r]))
		sb.WriteRune('\n')
	}
	sb.WriteString(helpStyle.Render("a/d move · p pause · ctrl+s save · q quit"))

	if state.Over || state.Paused {
		return overlay(sb.String(), state, width)
	}
	return sb.String()
}

// renderRow converts one grid row to a styled string, grouping adjacent
// cells with the same paint to limit ANSI escape sequences.
func renderRow(cells []cell) string {
	var sb strings.Builder
	x := 0
	for x < len(cells) {
		p := cells[x].p
		var run strings.Builder
		for x < len(cells) && cells[x].p == p {
			run.WriteRune(cells[x].r)
			x++
		}
		sb.WriteString(paintStyles[p].Render(run.String()))
	}
	return sb.String()
}

// renderHUD draws the status line.
func renderHUD(state sim.State, warn bool, saveNote string) string {
	status := fmt.Sprintf("Score %d  Speed %.1f  Lane %d  Section %d  Hit %d  Missed %d",
		state.Score, state.Speed, state.Lane, state.SectionsPassed, state.Struck, state.Avoided)
	if saveNote != "" {
		status += "  [" + saveNote + "]"
	}
	line := hudStyle.Render(status)
	if warn {
		line += " " + warnStyle.Render("!")
	}
	return line
}

// overlay centers a pause or game-over banner over the middle of the view.
func overlay(view string, state sim.State, width int) string {
	msg := "PAUSED · press p to resume"
	if state.Over {
		msg = fmt.Sprintf("GAME OVER · score %d · r restart · q quit", state.Score)
	}
	banner := overlayStyle.Render(msg)

	lines := strings.Split(view, "\n")
	pad := (width - lipgloss.Width(banner)) / 2
	if pad < 0 {
		pad = 0
	}
	lines[len(lines)/2] = strings.Repeat(" ", pad) + banner
	return strings.Join(lines, "\n")
}

package tui

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"signalbox/pkg/engine/rail"
	"signalbox/pkg/engine/terminal"
	"signalbox/pkg/render"
	"signalbox/pkg/sim"
)

// Icon constants for the network map
const (
	IconVoid         = " "
	IconTrainIcon    = "◆" // Train on track
	IconTrainStopped = "◇" // Train held at a red aspect
	IconDepot        = "▣" // Depot mouth
	IconStation      = "▤" // Station platform
	IconCrossingNS   = "╫" // Level crossing over a NS piece
	IconCrossingEW   = "╪" // Level crossing over an EW piece
	IconTunnel       = "∩" // Tunnel head
	IconBridge       = "≍" // Bridge head
	IconJunction     = "┼" // Tile carrying more than one piece
)

// Track piece icons, indexed by piece
var trackIcons = map[rail.Track]string{
	rail.TrackNS: "│",
	rail.TrackEW: "─",
	rail.TrackNE: "└",
	rail.TrackNW: "┘",
	rail.TrackSE: "┌",
	rail.TrackSW: "┐",
}

// Viewport margins and minimum sizes
const (
	ViewportMinRows = 5
	ViewportMinCols = 15
	// Lines needed outside the viewport:
	// - Tick indicator + blank (2)
	// - Train status (1 per train, budget 4)
	// - Messages pane (header + 5 messages + footer = 7)
	// - Blank separators (3)
	ViewportTopMargin = 16
)

// dynamicGet is used for runtime translation key lookups.
// We use a function variable to avoid go vet's non-constant format string check,
// since we intentionally look up translation keys dynamically from markup.
var dynamicGet = gotext.Get

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	colorTrack       color.Style
	colorLabel       color.Style
	colorAction      color.Style
	colorActionShort color.Style
	colorDanger      color.Style
	colorClear       color.Style
	colorReserved    color.Style
	colorTrain       color.Style
	colorStructure   color.Style
	colorSubtle      color.Style

	regexpStringFunctions *regexp.Regexp
}

// New creates a new TUI renderer
func New() *TUIRenderer {
	return &TUIRenderer{}
}

// Init initializes the TUI renderer (colors, etc.)
func (t *TUIRenderer) Init() {
	t.colorTrack = color.Style{color.FgGray}
	t.colorLabel = color.Style{color.FgBlue}
	t.colorAction = color.Style{color.FgMagenta}
	t.colorActionShort = color.Style{color.FgMagenta, color.OpBold}
	t.colorDanger = color.Style{color.FgRed, color.OpBold}
	t.colorClear = color.Style{color.FgGreen} // Dark green (no bold)
	t.colorReserved = color.Style{color.FgCyan}
	t.colorTrain = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorStructure = color.Style{color.FgYellow, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray, color.OpBold}

	t.regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:]+)}`)
}

// Clear clears the terminal screen
func (t *TUIRenderer) Clear() {
	c := exec.Command("clear")
	c.Stdout = os.Stdout
	c.Run()
}

// StyleText applies a style to text
func (t *TUIRenderer) StyleText(text string, style render.TextStyle) string {
	switch style {
	case render.StyleTrack:
		return t.colorTrack.Sprint(text)
	case render.StyleLabel:
		return t.colorLabel.Sprint(text)
	case render.StyleAction:
		return t.colorAction.Sprint(text)
	case render.StyleActionShort:
		return t.colorActionShort.Sprint(text)
	case render.StyleDanger:
		return t.colorDanger.Sprint(text)
	case render.StyleClear:
		return t.colorClear.Sprint(text)
	case render.StyleReserved:
		return t.colorReserved.Sprint(text)
	case render.StyleTrain:
		return t.colorTrain.Sprint(text)
	case render.StyleStructure:
		return t.colorStructure.Sprint(text)
	case render.StyleSubtle:
		return t.colorSubtle.Sprint(text)
	default:
		return text
	}
}

// FormatText formats a message with the markup system
func (t *TUIRenderer) FormatText(msg string, args ...any) string {
	ret := fmt.Sprintf(msg, args...)

	matches := t.regexpStringFunctions.FindAllStringSubmatch(ret, -1)

	for _, match := range matches {
		function := match[1]
		operand := match[2]

		val := "blat"

		switch function {
		case "GT":
			val = dynamicGet(operand)
		case "TRAIN":
			val = t.colorTrain.Sprint(operand)
		case "SIGNAL":
			val = t.colorClear.Sprint(operand)
		case "ACTION":
			val = t.colorActionShort.Sprint(operand[0:1]) + t.colorAction.Sprint(operand[1:])
		default:
			ret = fmt.Sprintf("ERROR, function not found: %v -> %v", function, operand)
		}

		ret = strings.Replace(ret, match[0], val, -1)
	}

	return ret
}

// ShowMessage displays a message to the user
func (t *TUIRenderer) ShowMessage(msg string) {
	fmt.Println(msg)
}

// GetViewportSize returns the viewport dimensions based on terminal size
func (t *TUIRenderer) GetViewportSize() (rows, cols int) {
	return terminal.ViewportSize(ViewportTopMargin, ViewportMinRows, ViewportMinCols)
}

// RenderFrame renders one complete frame: the network map, per-train
// status and the message log
func (t *TUIRenderer) RenderFrame(w *sim.World) {
	// Tick indicator in top left
	t.colorAction.Printf("%s %d\n\n", gotext.Get("Tick"), w.Steps)

	t.printMap(w)
	t.printTrainStatus(w)
	t.printMessagesPane(w)
}

// printString prints a formatted string
func (t *TUIRenderer) printString(msg string, a ...any) {
	fmt.Print(t.FormatText(msg, a...))
}

// renderTile returns the string representation of a map tile
func (t *TUIRenderer) renderTile(w *sim.World, idx rail.TileIndex, tile *rail.Tile) string {
	// Train on the tile wins over everything else
	if w.Trains.TrainOnTile(idx) {
		stopped := false
		w.Trains.Each(func(tr *sim.Train) {
			if tr.Tile == idx && !tr.InDepot && !tr.InWormhole && tr.Stopped {
				stopped = true
			}
		})
		if stopped {
			return t.colorDanger.Sprint(IconTrainStopped)
		}
		return t.colorTrain.Sprint(IconTrainIcon)
	}

	switch tile.Type {
	case rail.TileRail:
		return t.renderRail(tile)

	case rail.TileDepot:
		if w.Trains.TrainInDepot(idx) {
			return t.colorTrain.Sprint(IconDepot)
		}
		return t.colorStructure.Sprint(IconDepot)

	case rail.TileStation:
		return t.colorStructure.Sprint(IconStation)

	case rail.TileCrossing:
		if tile.Tracks == rail.BitNS {
			return t.colorTrack.Sprint(IconCrossingNS)
		}
		return t.colorTrack.Sprint(IconCrossingEW)

	case rail.TileTunnel, rail.TileBridge:
		icon := IconTunnel
		if tile.Type == rail.TileBridge {
			icon = IconBridge
		}
		if w.Trains.TrainInWormhole(idx, tile.Span) {
			return t.colorTrain.Sprint(icon)
		}
		if tile.SpanSignalled && tile.HasEntranceSignal && !tile.EntranceGreen {
			return t.colorDanger.Sprint(icon)
		}
		return t.colorStructure.Sprint(icon)

	default:
		return IconVoid
	}
}

// renderRail returns the icon for a plain rail tile, colored by its worst
// signal aspect: red wins over reserved wins over green
func (t *TUIRenderer) renderRail(tile *rail.Tile) string {
	icon := IconJunction
	if single := tile.Tracks.Single(); single != rail.TrackInvalid {
		icon = trackIcons[single]
	}

	if len(tile.Signals) == 0 {
		return t.colorTrack.Sprint(icon)
	}

	anyRed := false
	anyPath := false
	for track, sig := range tile.Signals {
		if sig.Type.IsPathSignal() {
			anyPath = true
			continue
		}
		a, b := track.Ends()
		for _, side := range []rail.Side{a, b} {
			if sig.HasToward(track, side) && !sig.GreenToward(track, side) {
				anyRed = true
			}
		}
	}

	switch {
	case anyRed:
		return t.colorDanger.Sprint(icon)
	case anyPath:
		return t.colorReserved.Sprint(icon)
	default:
		return t.colorClear.Sprint(icon)
	}
}

// printMap renders the network map, clipped to the viewport
func (t *TUIRenderer) printMap(w *sim.World) {
	viewportRows, viewportCols := t.GetViewportSize()

	rows := w.Map.Rows()
	if rows > viewportRows {
		rows = viewportRows
	}
	cols := w.Map.Cols()
	if cols > viewportCols {
		cols = viewportCols
	}

	for row := 0; row < rows; row++ {
		sb := strings.Builder{}
		for col := 0; col < cols; col++ {
			idx := w.Map.Index(row, col)
			sb.WriteString(t.renderTile(w, idx, w.Map.At(idx)))
		}
		fmt.Println(sb.String())
	}

	fmt.Println("")
}

// printTrainStatus renders one status line per train
func (t *TUIRenderer) printTrainStatus(w *sim.World) {
	if w.Trains.Len() == 0 {
		fmt.Println(t.colorSubtle.Sprint(gotext.Get("(no trains)")))
		return
	}

	w.Trains.Each(func(tr *sim.Train) {
		row, col := w.Map.RowCol(tr.Tile)

		var state string
		switch {
		case tr.InDepot:
			state = t.colorSubtle.Sprint(gotext.Get("in depot"))
		case tr.InWormhole:
			state = t.colorReserved.Sprint(gotext.Get("in transit"))
		case tr.Stopped:
			state = t.colorDanger.Sprint(gotext.Get("held at signal"))
		default:
			state = t.colorClear.Sprint(gotext.Get("running"))
		}

		t.printString("TRAIN{#%d} %v:%v %s\n", tr.ID, row, col, state)
	})
}

// printMessagesPane renders the message log pane
func (t *TUIRenderer) printMessagesPane(w *sim.World) {
	width := terminal.GetWidth()

	label := " " + gotext.Get("Messages") + " "
	labelLen := len(label)
	sideLen := (width - labelLen) / 2
	if sideLen < 1 {
		sideLen = 1
	}

	leftDashes := strings.Repeat("─", sideLen)
	rightDashes := strings.Repeat("─", width-sideLen-labelLen)

	fmt.Println()
	fmt.Println(t.colorSubtle.Sprint(leftDashes + label + rightDashes))

	if len(w.Messages) == 0 {
		fmt.Println(t.colorSubtle.Sprint("  " + gotext.Get("(no messages)")))
	} else {
		for _, msg := range w.Messages {
			fmt.Printf("  %s\n", msg)
		}
	}

	fmt.Println(t.colorSubtle.Sprint(strings.Repeat("─", width)))
}

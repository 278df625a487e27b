// Package scenario loads track layouts and train placements from JSON
// files. Every document is checked against an embedded JSON Schema
// before it is decoded, so layout mistakes surface as validation
// errors rather than panics from the map builders.
package scenario

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"signalbox/pkg/block"
	"signalbox/pkg/engine/rail"
	"signalbox/pkg/sim"
)

//go:embed schema.json
var schemaJSON string

// Scenario is a parsed layout document.
type Scenario struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`

	Rail      []RailSpec     `json:"rail"`
	Stations  []StationSpec  `json:"stations"`
	Crossings []StationSpec  `json:"crossings"`
	Depots    []DepotSpec    `json:"depots"`
	Wormholes []WormholeSpec `json:"wormholes"`
	Signals   []SignalSpec   `json:"signals"`
	Trains    []TrainSpec    `json:"trains"`
}

// RailSpec lays one or more track pieces on a tile.
type RailSpec struct {
	Row    int      `json:"row"`
	Col    int      `json:"col"`
	Tracks []string `json:"tracks"`
	Owner  int      `json:"owner"`
}

// StationSpec places a station or level crossing tile. Axis names the
// straight piece the tile carries.
type StationSpec struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Axis  string `json:"axis"`
	Owner int    `json:"owner"`
}

// DepotSpec places a depot tile with its exit side.
type DepotSpec struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Exit  string `json:"exit"`
	Owner int    `json:"owner"`
}

// Position is a bare tile coordinate.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// HeadSignals toggles the signals carried by one wormhole head.
type HeadSignals struct {
	Entrance bool `json:"entrance"`
	Exit     bool `json:"exit"`
}

// WormholeSpec places a tunnel or bridge between two head tiles.
type WormholeSpec struct {
	Kind        string       `json:"kind"`
	From        Position     `json:"from"`
	To          Position     `json:"to"`
	Owner       int          `json:"owner"`
	Signalled   bool         `json:"signalled"`
	Path        bool         `json:"path"`
	FromSignals *HeadSignals `json:"from_signals"`
	ToSignals   *HeadSignals `json:"to_signals"`
}

// SignalSpec places a signal on a track piece.
type SignalSpec struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Track   string `json:"track"`
	Type    string `json:"type"`
	Variant string `json:"variant"`
	Toward  string `json:"toward"`
	Both    bool   `json:"both"`
}

// TrainSpec places a train, either on a track piece or inside a depot.
type TrainSpec struct {
	Row    int       `json:"row"`
	Col    int       `json:"col"`
	Track  string    `json:"track"`
	Toward string    `json:"toward"`
	Depot  *Position `json:"depot"`
}

// Load reads, validates and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}

	return Parse(data)
}

// Parse validates a scenario document against the embedded schema and
// decodes it.
func Parse(data []byte) (*Scenario, error) {
	compiler := jsonschema.NewCompiler()

	if err := compiler.AddResource("scenario.schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("loading scenario schema: %w", err)
	}

	schema, err := compiler.Compile("scenario.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling scenario schema: %w", err)
	}

	var doc any

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validating scenario: %w", err)
	}

	sc := &Scenario{}

	if err := json.Unmarshal(data, sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}

	return sc, nil
}

// checkPos rejects coordinates outside the map; the schema cannot bound
// row/col against rows/cols, so this is where such mistakes surface.
func (sc *Scenario) checkPos(row, col int, what string) error {
	if row < 0 || row >= sc.Rows || col < 0 || col >= sc.Cols {
		return fmt.Errorf("%s at %d:%d is outside the %dx%d map", what, row, col, sc.Rows, sc.Cols)
	}

	return nil
}

// BuildMap constructs the rail map the scenario describes.
func (sc *Scenario) BuildMap() (*rail.Map, error) {
	m := rail.NewMap(sc.Rows, sc.Cols)

	for _, r := range sc.Rail {
		if err := sc.checkPos(r.Row, r.Col, "rail"); err != nil {
			return nil, err
		}

		bits := rail.BitNone

		for _, name := range r.Tracks {
			track, err := parseTrack(name)
			if err != nil {
				return nil, err
			}

			bits |= track.Bit()
		}

		m.LayRail(r.Row, r.Col, rail.Owner(r.Owner), bits)
	}

	for _, s := range sc.Stations {
		if err := sc.checkPos(s.Row, s.Col, "station"); err != nil {
			return nil, err
		}

		axis, err := parseTrack(s.Axis)
		if err != nil {
			return nil, err
		}

		m.BuildStation(s.Row, s.Col, rail.Owner(s.Owner), axis)
	}

	for _, c := range sc.Crossings {
		if err := sc.checkPos(c.Row, c.Col, "crossing"); err != nil {
			return nil, err
		}

		axis, err := parseTrack(c.Axis)
		if err != nil {
			return nil, err
		}

		m.BuildCrossing(c.Row, c.Col, rail.Owner(c.Owner), axis)
	}

	for _, d := range sc.Depots {
		if err := sc.checkPos(d.Row, d.Col, "depot"); err != nil {
			return nil, err
		}

		exit, err := parseSide(d.Exit)
		if err != nil {
			return nil, err
		}

		m.BuildDepot(d.Row, d.Col, rail.Owner(d.Owner), exit)
	}

	for _, w := range sc.Wormholes {
		if err := sc.checkPos(w.From.Row, w.From.Col, "wormhole head"); err != nil {
			return nil, err
		}
		if err := sc.checkPos(w.To.Row, w.To.Col, "wormhole head"); err != nil {
			return nil, err
		}

		kind, err := parseWormholeKind(w.Kind)
		if err != nil {
			return nil, err
		}

		h1, h2 := m.BuildWormhole(kind, w.From.Row, w.From.Col, w.To.Row, w.To.Col, rail.Owner(w.Owner), w.Signalled, w.Path)

		if w.FromSignals != nil {
			m.SetHeadSignals(h1, w.FromSignals.Entrance, w.FromSignals.Exit)
		}

		if w.ToSignals != nil {
			m.SetHeadSignals(h2, w.ToSignals.Entrance, w.ToSignals.Exit)
		}
	}

	for _, s := range sc.Signals {
		if err := sc.checkPos(s.Row, s.Col, "signal"); err != nil {
			return nil, err
		}

		track, err := parseTrack(s.Track)
		if err != nil {
			return nil, err
		}

		typ, err := parseSignalType(s.Type)
		if err != nil {
			return nil, err
		}

		variant, err := parseVariant(s.Variant)
		if err != nil {
			return nil, err
		}

		toward, err := parseSide(s.Toward)
		if err != nil {
			return nil, err
		}

		m.PlaceSignal(m.Index(s.Row, s.Col), track, typ, variant, toward, s.Both)
	}

	return m, nil
}

// BuildWorld constructs a ready-to-run world: map, trains and settled
// signal aspects.
func (sc *Scenario) BuildWorld(settings block.Settings) (*sim.World, error) {
	m, err := sc.BuildMap()
	if err != nil {
		return nil, err
	}

	w := sim.NewWorld(m, settings)

	for _, t := range sc.Trains {
		if t.Depot != nil {
			if err := sc.checkPos(t.Depot.Row, t.Depot.Col, "train depot"); err != nil {
				return nil, err
			}
			w.Trains.AddInDepot(m.Index(t.Depot.Row, t.Depot.Col))
			continue
		}

		if err := sc.checkPos(t.Row, t.Col, "train"); err != nil {
			return nil, err
		}

		track, err := parseTrack(t.Track)
		if err != nil {
			return nil, err
		}

		toward, err := parseSide(t.Toward)
		if err != nil {
			return nil, err
		}

		w.Trains.Add(m.Index(t.Row, t.Col), track, toward)
	}

	w.SettleSignals()

	return w, nil
}

func parseSide(name string) (rail.Side, error) {
	switch name {
	case "North":
		return rail.North, nil
	case "East":
		return rail.East, nil
	case "South":
		return rail.South, nil
	case "West":
		return rail.West, nil
	}

	return rail.SideNone, fmt.Errorf("unknown side %q", name)
}

func parseTrack(name string) (rail.Track, error) {
	switch name {
	case "NS":
		return rail.TrackNS, nil
	case "EW":
		return rail.TrackEW, nil
	case "NE":
		return rail.TrackNE, nil
	case "NW":
		return rail.TrackNW, nil
	case "SE":
		return rail.TrackSE, nil
	case "SW":
		return rail.TrackSW, nil
	}

	return rail.TrackInvalid, fmt.Errorf("unknown track %q", name)
}

func parseSignalType(name string) (rail.SignalType, error) {
	switch name {
	case "normal":
		return rail.SignalNormal, nil
	case "entry":
		return rail.SignalEntry, nil
	case "exit":
		return rail.SignalExit, nil
	case "combo":
		return rail.SignalCombo, nil
	case "path":
		return rail.SignalPath, nil
	case "oneway-path":
		return rail.SignalOneWayPath, nil
	case "programmable":
		return rail.SignalProgrammable, nil
	}

	return rail.SignalNormal, fmt.Errorf("unknown signal type %q", name)
}

func parseVariant(name string) (rail.SignalVariant, error) {
	switch name {
	case "", "electric":
		return rail.VariantElectric, nil
	case "semaphore":
		return rail.VariantSemaphore, nil
	}

	return rail.VariantElectric, fmt.Errorf("unknown signal variant %q", name)
}

func parseWormholeKind(name string) (rail.TileType, error) {
	switch name {
	case "tunnel":
		return rail.TileTunnel, nil
	case "bridge":
		return rail.TileBridge, nil
	}

	return rail.TileEmpty, fmt.Errorf("unknown wormhole kind %q", name)
}

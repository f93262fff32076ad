package signal

// Zone is a target location. 1-9 index the 3x3 strike zone row-major from
// the top-left cell; 10-13 are the ball regions around it; 0 means unset.
type Zone uint8

const (
	ZoneUnset Zone = 0

	MinZone Zone = 1
	MaxZone Zone = 13

	lastStrikeZone Zone = 9

	ZoneHighBall    Zone = 10
	ZoneLowBall     Zone = 11
	ZoneInsideBall  Zone = 12
	ZoneOutsideBall Zone = 13
)

// GridSize is the side of the strike-zone grid in cells.
const GridSize = 3

// Presentation constants for the zone grid on a pixel panel.
const (
	GridPixels      = 90
	CellPitch       = GridPixels / GridSize
	HighlightInset  = 1
	HighlightPixels = CellPitch - 2*HighlightInset
)

// Valid reports whether z is a known zone.
func (z Zone) Valid() bool { return z >= MinZone && z <= MaxZone }

// IsStrike reports whether z lies inside the 3x3 grid.
func (z Zone) IsStrike() bool { return z >= MinZone && z <= lastStrikeZone }

// IsBall reports whether z is one of the regions outside the grid.
func (z Zone) IsBall() bool { return z >= ZoneHighBall && z <= ZoneOutsideBall }

// Cell is a position in the strike-zone grid.
type Cell struct {
	Row int
	Col int
}

// Cell maps a strike zone to its grid cell. Ball zones and the unset zone
// have no cell.
func (z Zone) Cell() (Cell, bool) {
	if !z.IsStrike() {
		return Cell{}, false
	}
	i := int(z - MinZone)
	return Cell{Row: i / GridSize, Col: i % GridSize}, true
}

// ZoneAt is the inverse of Zone.Cell.
func ZoneAt(c Cell) (Zone, bool) {
	if c.Row < 0 || c.Row >= GridSize || c.Col < 0 || c.Col >= GridSize {
		return ZoneUnset, false
	}
	return MinZone + Zone(c.Row*GridSize+c.Col), true
}

// Origin returns the top-left pixel of the highlight drawn for c inside the grid.
func (c Cell) Origin() (x, y int) {
	return c.Col*CellPitch + HighlightInset, c.Row*CellPitch + HighlightInset
}

var (
	verticalBands   = [GridSize]string{"HIGH", "MID", "LOW"}
	horizontalBands = [GridSize]string{"IN", "MID", "OUT"}
	// indexed from ZoneHighBall
	ballRegions = [...]string{"HIGH BALL", "LOW BALL", "INSIDE BALL", "OUTSIDE BALL"}
)

// Region describes z in words, e.g. "HIGH IN" or "LOW BALL". The unset zone
// describes as "".
func (z Zone) Region() string {
	if z.IsBall() {
		return ballRegions[z-ZoneHighBall]
	}
	cell, ok := z.Cell()
	if !ok {
		return ""
	}
	return verticalBands[cell.Row] + " " + horizontalBands[cell.Col]
}

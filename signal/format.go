package signal

import "strconv"

const (
	unknownText = "???"
	playSubText = "Play"
)

// DisplayText is the large label: the pitch code with its sign number
// appended, the play code, or "???" for anything else.
func (p ParsedSignal) DisplayText() string {
	switch p.Kind {
	case KindPitch:
		if d, ok := p.Sign.Get(); ok {
			return p.Code + " " + strconv.Itoa(int(d))
		}
		return p.Code
	case KindPlay:
		return p.Code
	default:
		return unknownText
	}
}

// SubText is the small label under the display text.
func (p ParsedSignal) SubText() string {
	switch p.Kind {
	case KindPitch:
		return p.Zone.Region()
	case KindPlay:
		return playSubText
	default:
		return ""
	}
}

// Color is the emphasis hint for a shown signal.
type Color uint8

const (
	ColorNeutral Color = iota
	ColorFastball
	ColorBreaking
	ColorOffspeed
	ColorPlay
)

func (c Color) String() string {
	switch c {
	case ColorFastball:
		return "fastball"
	case ColorBreaking:
		return "breaking"
	case ColorOffspeed:
		return "offspeed"
	case ColorPlay:
		return "play"
	default:
		return "neutral"
	}
}

var pitchFamilies = map[string]Color{
	"FB":  ColorFastball,
	"2S":  ColorFastball,
	"CUT": ColorFastball,
	"SNK": ColorFastball,
	"CB":  ColorBreaking,
	"SL":  ColorBreaking,
	"CH":  ColorOffspeed,
	"SPL": ColorOffspeed,
}

// Color groups pitches by family; plays get their own hue and everything
// else, knuckleballs and screwballs included, stays neutral.
func (p ParsedSignal) Color() Color {
	switch p.Kind {
	case KindPitch:
		return pitchFamilies[p.Code]
	case KindPlay:
		return ColorPlay
	default:
		return ColorNeutral
	}
}

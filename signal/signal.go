// Package signal decodes the ASCII control messages sent by the companion
// controller and derives the text shown on the wearable for each of them.
//
// Wire grammar (fields separated by '|'):
//
//	CONNECT
//	PITCH|<code>|<zone>[|<sign>]
//	PLAY|<code>
//
// Decoding is total: every byte sequence maps to a ParsedSignal and missing
// fields degrade to their zero value.
package signal

// Kind tags the variant held by a ParsedSignal.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindConnect
	KindPitch
	KindPlay
)

func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "connect"
	case KindPitch:
		return "pitch"
	case KindPlay:
		return "play"
	default:
		return "unknown"
	}
}

// Sign is an optional single-digit sign number (0-5).
type Sign struct {
	Digit uint8
	Valid bool
}

// NoSign is the absent sign.
var NoSign = Sign{}

// SignOf returns a present sign carrying d.
func SignOf(d uint8) Sign { return Sign{Digit: d, Valid: true} }

// Get returns the digit and whether it is present.
func (s Sign) Get() (uint8, bool) { return s.Digit, s.Valid }

// ParsedSignal is the decoded form of one message. Code and Zone are
// meaningful for pitches, Code alone for plays; Sign only for pitches.
type ParsedSignal struct {
	Kind Kind
	Code string
	Zone Zone
	Sign Sign
}

// Pitch builds a pitch call.
func Pitch(code string, zone Zone, sign Sign) ParsedSignal {
	return ParsedSignal{Kind: KindPitch, Code: code, Zone: zone, Sign: sign}
}

// Play builds a play call.
func Play(code string) ParsedSignal {
	return ParsedSignal{Kind: KindPlay, Code: code}
}

// Displayable reports whether the signal opens a session on the display.
func (p ParsedSignal) Displayable() bool {
	return p.Kind == KindPitch || p.Kind == KindPlay
}

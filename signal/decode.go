package signal

import (
	"bytes"

	"github.com/ystepanoff/pitchcall/protocol"
)

const delim = '|'

var (
	handshake = []byte(protocol.Handshake)
	pitchTag  = []byte("PITCH")
	playTag   = []byte("PLAY")
)

// Decode turns a raw message into a ParsedSignal. It never fails and never
// reads past the end of raw.
func Decode(raw []byte) ParsedSignal {
	if bytes.Equal(raw, handshake) {
		return ParsedSignal{Kind: KindConnect}
	}

	pos1 := bytes.IndexByte(raw, delim)
	if pos1 < 0 {
		return ParsedSignal{}
	}

	tag, rest := raw[:pos1], raw[pos1+1:]
	switch {
	case bytes.Equal(tag, pitchTag):
		return decodePitch(rest)
	case bytes.Equal(tag, playTag):
		return Play(string(rest))
	default:
		return ParsedSignal{}
	}
}

// DecodeString is Decode for callers holding a string.
func DecodeString(s string) ParsedSignal { return Decode([]byte(s)) }

// decodePitch parses "<code>|<zone>[|<sign>]". Without the delimiter after
// the code the result is a pitch with every field at its default.
func decodePitch(rest []byte) ParsedSignal {
	out := ParsedSignal{Kind: KindPitch}

	pos2 := bytes.IndexByte(rest, delim)
	if pos2 < 0 {
		return out
	}
	out.Code = string(rest[:pos2])

	tail := rest[pos2+1:]
	zoneField := tail
	pos3 := bytes.IndexByte(tail, delim)
	if pos3 >= 0 {
		zoneField = tail[:pos3]
	}
	out.Zone = parseZone(zoneField)

	if pos3 >= 0 && pos3+1 < len(tail) {
		if c := tail[pos3+1]; c >= '0' && c <= '5' {
			out.Sign = SignOf(c - '0')
		}
	}
	return out
}

// parseZone consumes the leading run of decimal digits and keeps the value
// only when it names a zone. The accumulator saturates so long digit runs
// cannot wrap back into range.
func parseZone(field []byte) Zone {
	v := 0
	for _, c := range field {
		if c < '0' || c > '9' {
			break
		}
		if v <= int(MaxZone) {
			v = v*10 + int(c-'0')
		}
	}
	if v < int(MinZone) || v > int(MaxZone) {
		return ZoneUnset
	}
	return Zone(v)
}

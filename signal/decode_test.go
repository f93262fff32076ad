package signal

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ParsedSignal
	}{
		{name: "handshake", raw: "CONNECT", want: ParsedSignal{Kind: KindConnect}},
		{name: "pitch with zone", raw: "PITCH|FB|5", want: Pitch("FB", 5, NoSign)},
		{name: "pitch with sign", raw: "PITCH|CB|1|3", want: Pitch("CB", 1, SignOf(3))},
		{name: "pitch high ball", raw: "PITCH|SL|10", want: Pitch("SL", ZoneHighBall, NoSign)},
		{name: "pitch outside ball with sign", raw: "PITCH|SPL|13|0", want: Pitch("SPL", ZoneOutsideBall, SignOf(0))},
		{name: "play", raw: "PLAY|BUNT", want: Play("BUNT")},
		{name: "play keeps delimiters", raw: "PLAY|HIT|RUN", want: Play("HIT|RUN")},
		{name: "play empty", raw: "PLAY|", want: Play("")},

		{name: "pitch without code delimiter", raw: "PITCH|FB", want: ParsedSignal{Kind: KindPitch}},
		{name: "pitch with nothing after tag", raw: "PITCH|", want: ParsedSignal{Kind: KindPitch}},
		{name: "zone out of range", raw: "PITCH|FB|14", want: Pitch("FB", ZoneUnset, NoSign)},
		{name: "zone zero", raw: "PITCH|FB|0", want: Pitch("FB", ZoneUnset, NoSign)},
		{name: "zone empty", raw: "PITCH|FB|", want: Pitch("FB", ZoneUnset, NoSign)},
		{name: "zone trailing junk", raw: "PITCH|CH|7x", want: Pitch("CH", 7, NoSign)},
		{name: "zone non numeric", raw: "PITCH|CH|x7", want: Pitch("CH", ZoneUnset, NoSign)},
		{name: "zone long digit run", raw: "PITCH|CH|99999999999999999999999", want: Pitch("CH", ZoneUnset, NoSign)},
		{name: "sign out of range", raw: "PITCH|CB|1|6", want: Pitch("CB", 1, NoSign)},
		{name: "sign missing", raw: "PITCH|CB|1|", want: Pitch("CB", 1, NoSign)},
		{name: "sign uses first char only", raw: "PITCH|CB|2|45", want: Pitch("CB", 2, SignOf(4))},
		{name: "empty code", raw: "PITCH||4", want: Pitch("", 4, NoSign)},

		{name: "empty", raw: "", want: ParsedSignal{}},
		{name: "garbage", raw: "GARBAGE", want: ParsedSignal{}},
		{name: "bare pitch", raw: "PITCH", want: ParsedSignal{}},
		{name: "lowercase tag", raw: "pitch|FB|5", want: ParsedSignal{}},
		{name: "handshake with delimiter", raw: "CONNECT|", want: ParsedSignal{}},
		{name: "handshake with suffix", raw: "CONNECTED", want: ParsedSignal{}},
		{name: "leading delimiter", raw: "|PITCH|FB|5", want: ParsedSignal{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Decode([]byte(tt.raw)))
		})
	}
}

func TestDecodeIsPure(t *testing.T) {
	inputs := []string{"PITCH|CB|1|3", "PLAY|BUNT", "CONNECT", "", "PITCH|FB"}
	for _, in := range inputs {
		raw := []byte(in)
		first := Decode(raw)
		for i := 0; i < 3; i++ {
			require.Equal(t, first, Decode(raw), "input %q", in)
		}
		require.Equal(t, in, string(raw), "Decode must not modify its input")
	}
}

func TestDecodeNeverPanicsOnPrefixes(t *testing.T) {
	msgs := []string{"PITCH|SCR|12|5", "PLAY|SUICIDE SQUEEZE", "CONNECT"}
	for _, msg := range msgs {
		for i := 0; i <= len(msg); i++ {
			raw := []byte(msg[:i])
			require.NotPanics(t, func() {
				p := Decode(raw)
				_ = p.DisplayText()
				_ = p.SubText()
				_ = p.Color()
			}, "prefix %q", raw)
		}
	}
}

func TestDecodeAllZones(t *testing.T) {
	for z := MinZone; z <= MaxZone; z++ {
		raw := "PITCH|FB|" + strconv.Itoa(int(z))
		got := DecodeString(raw)
		require.Equal(t, z, got.Zone, "raw %q", raw)
		require.True(t, got.Zone.Valid())
	}
}

package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "PITCH|FB|5", want: "FB"},
		{raw: "PITCH|CB|1|3", want: "CB 3"},
		{raw: "PITCH|KN|9|0", want: "KN 0"},
		{raw: "PLAY|BUNT", want: "BUNT"},
		{raw: "PITCH|FB", want: ""},
		{raw: "CONNECT", want: "???"},
		{raw: "GARBAGE", want: "???"},
		{raw: "", want: "???"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, DecodeString(tt.raw).DisplayText())
		})
	}
}

func TestSubText(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "PITCH|FB|1", want: "HIGH IN"},
		{raw: "PITCH|FB|2", want: "HIGH MID"},
		{raw: "PITCH|FB|3", want: "HIGH OUT"},
		{raw: "PITCH|FB|4", want: "MID IN"},
		{raw: "PITCH|FB|5", want: "MID MID"},
		{raw: "PITCH|FB|6", want: "MID OUT"},
		{raw: "PITCH|FB|7", want: "LOW IN"},
		{raw: "PITCH|FB|8", want: "LOW MID"},
		{raw: "PITCH|FB|9", want: "LOW OUT"},
		{raw: "PITCH|SL|10", want: "HIGH BALL"},
		{raw: "PITCH|SL|11", want: "LOW BALL"},
		{raw: "PITCH|SL|12", want: "INSIDE BALL"},
		{raw: "PITCH|SL|13", want: "OUTSIDE BALL"},
		{raw: "PITCH|SL|99", want: ""},
		{raw: "PITCH|SL", want: ""},
		{raw: "PLAY|STEAL", want: "Play"},
		{raw: "CONNECT", want: ""},
		{raw: "PITCH", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			require.Equal(t, tt.want, DecodeString(tt.raw).SubText())
		})
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		sig  ParsedSignal
		want Color
	}{
		{sig: Pitch("FB", 1, NoSign), want: ColorFastball},
		{sig: Pitch("2S", 1, NoSign), want: ColorFastball},
		{sig: Pitch("CUT", 1, NoSign), want: ColorFastball},
		{sig: Pitch("SNK", 1, NoSign), want: ColorFastball},
		{sig: Pitch("CB", 1, NoSign), want: ColorBreaking},
		{sig: Pitch("SL", 1, NoSign), want: ColorBreaking},
		{sig: Pitch("CH", 1, NoSign), want: ColorOffspeed},
		{sig: Pitch("SPL", 1, NoSign), want: ColorOffspeed},
		{sig: Pitch("KN", 1, NoSign), want: ColorNeutral},
		{sig: Pitch("SCR", 1, NoSign), want: ColorNeutral},
		{sig: Pitch("ZZZ", 1, NoSign), want: ColorNeutral},
		{sig: Play("BUNT"), want: ColorPlay},
		{sig: ParsedSignal{Kind: KindConnect}, want: ColorNeutral},
		{sig: ParsedSignal{}, want: ColorNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.sig.Kind.String()+"/"+tt.sig.Code, func(t *testing.T) {
			require.Equal(t, tt.want, tt.sig.Color())
		})
	}
}

package protocol

// Link and message constants shared by every layer above the radio driver.
const (
	// Frame sizing
	// Layout:
	//   Length (1 byte) | SenderID (4) | Type (1) | Seq (4) | Payload (0-49) | CRC32 (4) | Terminal (1)
	// Length counts everything after the length byte, i.e. total frame size minus 1.

	LengthFieldSize   = 1
	SequenceFieldSize = 4
	CRCSize           = 4 // CRC32, little-endian
	TerminalSize      = 1

	// Length(1) + SenderID(4) + Type(1) + Seq(4)
	FrameHeaderSize = LengthFieldSize + 4 + 1 + SequenceFieldSize

	// Total maximum frame length on air (including length, CRC, terminal)
	MaxFrameSize = 64

	MaxPayloadSize = MaxFrameSize - FrameHeaderSize - CRCSize - TerminalSize

	// MaxMessageSize bounds a signal message at the write endpoint. Anything
	// longer is rejected before it reaches the mailbox.
	MaxMessageSize = 32

	DefaultChannel = 7
	MaxChannel     = 125

	// Frame types
	FrameTypeData      = 0x02
	FrameTypeHeartbeat = 0x03

	// Timeouts / intervals (milliseconds)
	HeartbeatInterval = 5000
	DeviceTimeout     = 15000

	headerWithoutLen = FrameHeaderSize - LengthFieldSize

	// Terminal byte value appended to the end of every frame
	FrameTerminal = 0x55
)

// Handshake is the bare message a companion sends to confirm the channel is
// usable before any real signal. It never reaches the display.
const Handshake = "CONNECT"

// GATT identifiers advertised by the wearable.
const (
	ServiceUUID          = "00060000-78fc-48fe-8e23-433b3a1942d0"
	SignalCharacteristic = "00060001-78fc-48fe-8e23-433b3a1942d0"
)

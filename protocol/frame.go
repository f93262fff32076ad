package protocol

import (
	"encoding/binary"
	"hash/crc32"
)

// DeviceID identifies a radio endpoint on the link.
type DeviceID uint32

// Frame is one unit on air.
// Layout: Length(1) | SenderID(4) | Type(1) | Seq(4) | Payload(0-49) | CRC32(4) | Terminal(1)
// Length counts everything AFTER the length byte.
type Frame struct {
	Length   byte
	SenderID DeviceID
	Type     byte
	Seq      uint32
	Payload  []byte
	CRC      uint32 // decoded frames only; ignored by encoder
}

// EncodeFrame serialises f. Payloads longer than MaxPayloadSize are truncated.
func EncodeFrame(f *Frame) []byte {
	if f == nil {
		return make([]byte, 0)
	}

	payload := f.Payload
	if len(payload) > MaxPayloadSize {
		payload = payload[:MaxPayloadSize]
	}

	bodyLen := headerWithoutLen + len(payload) + CRCSize + TerminalSize
	totalLen := LengthFieldSize + bodyLen

	data := make([]byte, totalLen)
	data[0] = byte(bodyLen)
	binary.LittleEndian.PutUint32(data[1:5], uint32(f.SenderID))
	data[5] = f.Type
	binary.LittleEndian.PutUint32(data[6:10], f.Seq)
	copy(data[FrameHeaderSize:], payload)

	crcPos := FrameHeaderSize + len(payload)
	binary.LittleEndian.PutUint32(data[crcPos:crcPos+CRCSize], checksum(payload))
	data[totalLen-1] = FrameTerminal

	f.Length = byte(bodyLen)
	return data
}

// DecodeFrame parses data and returns nil for anything that is truncated,
// unterminated or fails the CRC.
func DecodeFrame(data []byte) *Frame {
	if len(data) < FrameHeaderSize+CRCSize+TerminalSize {
		return nil
	}

	bodyLen := int(data[0])
	if bodyLen == 0 || LengthFieldSize+bodyLen > len(data) {
		return nil
	}
	if data[LengthFieldSize+bodyLen-1] != FrameTerminal {
		return nil
	}

	payloadLen := bodyLen - headerWithoutLen - CRCSize - TerminalSize
	if payloadLen < 0 || payloadLen > MaxPayloadSize {
		return nil
	}

	crcPos := FrameHeaderSize + payloadLen
	recvCRC := binary.LittleEndian.Uint32(data[crcPos : crcPos+CRCSize])
	if recvCRC != checksum(data[FrameHeaderSize:crcPos]) {
		return nil
	}

	f := &Frame{
		Length:   byte(bodyLen),
		SenderID: DeviceID(binary.LittleEndian.Uint32(data[1:5])),
		Type:     data[5],
		Seq:      binary.LittleEndian.Uint32(data[6:10]),
		Payload:  make([]byte, payloadLen),
		CRC:      recvCRC,
	}
	copy(f.Payload, data[FrameHeaderSize:crcPos])
	return f
}

func checksum(payload []byte) uint32 {
	if len(payload) == 0 {
		return 0
	}
	return crc32.ChecksumIEEE(payload)
}

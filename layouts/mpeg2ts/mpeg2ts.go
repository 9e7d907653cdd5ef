// Package mpeg2ts describes the 4 byte header of an MPEG-2 transport stream packet
// (ISO/IEC 13818-1) as a protocol.Protocol.
package mpeg2ts

import (
	"fmt"

	"github.com/gostdlib/base/context"

	"github.com/bearlytools/ptl/languages/go/errors"
	"github.com/bearlytools/ptl/languages/go/order"
	"github.com/bearlytools/ptl/languages/go/protocol"
	"github.com/bearlytools/ptl/languages/go/schema"
)

const (
	// PacketSize is the size of a transport stream packet.
	PacketSize = 188
	// SyncByte is the value every packet starts with.
	SyncByte = 0x47
	// NullPID is the PID of stuffing packets.
	NullPID = 0x1fff
	// HeaderSize is the number of bytes in the header.
	HeaderSize = 4
)

// Indexes of the header fields in Protocol.
const (
	FSync       = 0
	FTEI        = 1
	FPUSI       = 2
	FPriority   = 3
	FPID        = 4
	FScrambling = 5
	FAdaptation = 6
	FContinuity = 7
)

// Protocol is the transport stream packet header.
var Protocol = protocol.MustNew(
	order.MSBFirst,
	schema.Named("sync_byte", 8),
	schema.Named("tei", 1),
	schema.Named("pusi", 1),
	schema.Named("priority", 1),
	schema.Named("pid", 13),
	schema.Named("scrambling", 2),
	schema.Named("adaptation", 2),
	schema.Named("continuity", 4),
)

var (
	hSync       = protocol.MustHandle[uint8](Protocol, FSync)
	hTEI        = protocol.MustHandle[uint8](Protocol, FTEI)
	hPUSI       = protocol.MustHandle[uint8](Protocol, FPUSI)
	hPriority   = protocol.MustHandle[uint8](Protocol, FPriority)
	hPID        = protocol.MustHandle[uint16](Protocol, FPID)
	hScrambling = protocol.MustHandle[uint8](Protocol, FScrambling)
	hAdaptation = protocol.MustHandle[uint8](Protocol, FAdaptation)
	hContinuity = protocol.MustHandle[uint8](Protocol, FContinuity)
)

// ErrSync is wrapped by errors from a packet that does not start with SyncByte.
var ErrSync = errors.New("lost sync")

// AdaptationControl is the value of the adaptation field control bits.
type AdaptationControl uint8

const (
	ACReserved     AdaptationControl = 0 // reserved
	ACPayload      AdaptationControl = 1 // payload
	ACAdaptation   AdaptationControl = 2 // adaptation
	ACAdaptPayload AdaptationControl = 3 // adaptation+payload
)

func (a AdaptationControl) String() string {
	switch a {
	case ACReserved:
		return "reserved"
	case ACPayload:
		return "payload"
	case ACAdaptation:
		return "adaptation"
	case ACAdaptPayload:
		return "adaptation+payload"
	}
	return fmt.Sprintf("AdaptationControl(%d)", uint8(a))
}

// HasPayload reports if the packet carries payload bytes.
func (a AdaptationControl) HasPayload() bool {
	return a&1 == 1
}

// HasAdaptation reports if an adaptation field follows the header.
func (a AdaptationControl) HasAdaptation() bool {
	return a&2 == 2
}

// Header is a view of the first HeaderSize bytes of a packet. Getters and setters read and
// write the underlying slice, so a Header made from a packet changes that packet.
// Use Parse or NewHeader to get a Header; a Header shorter than HeaderSize panics on access.
type Header []byte

// NewHeader returns a zeroed Header with the sync byte set.
func NewHeader() Header {
	h := make(Header, HeaderSize)
	h[0] = SyncByte
	return h
}

// Parse returns the Header at the start of "pkt". If "strict" is set, a packet that does
// not start with SyncByte is an error wrapping ErrSync.
func Parse(pkt []byte, strict bool) (Header, error) {
	if len(pkt) < HeaderSize {
		return nil, errors.E(
			context.Background(),
			errors.CatUser,
			errors.TypeBounds,
			fmt.Errorf("%w: packet is %d bytes, header needs %d", protocol.ErrShortBuffer, len(pkt), HeaderSize),
		)
	}
	h := Header(pkt[:HeaderSize])
	if strict && h.Sync() != SyncByte {
		return nil, errors.E(
			context.Background(),
			errors.CatUser,
			errors.TypeParameter,
			fmt.Errorf("%w: got sync byte %#x, want %#x", ErrSync, h.Sync(), SyncByte),
		)
	}
	return h, nil
}

// Sync returns the sync byte, 0x47 in a valid packet.
func (h Header) Sync() uint8 {
	return hSync.Get(h)
}

// TEI is the transport error indicator.
func (h Header) TEI() bool {
	return hTEI.Get(h) == 1
}

// PUSI is the payload unit start indicator.
func (h Header) PUSI() bool {
	return hPUSI.Get(h) == 1
}

// Priority is the transport priority bit.
func (h Header) Priority() bool {
	return hPriority.Get(h) == 1
}

// PID returns the 13 bit packet identifier.
func (h Header) PID() uint16 {
	return hPID.Get(h)
}

// Scrambling returns the 2 bit transport scrambling control.
func (h Header) Scrambling() uint8 {
	return hScrambling.Get(h)
}

// Adaptation returns the adaptation field control.
func (h Header) Adaptation() AdaptationControl {
	return AdaptationControl(hAdaptation.Get(h))
}

// Continuity is the 4 bit continuity counter.
func (h Header) Continuity() uint8 {
	return hContinuity.Get(h)
}

// SetSync sets the sync byte.
func (h Header) SetSync(v uint8) {
	// Can't fail, the field is 8 bits.
	_ = hSync.Set(h, v)
}

// SetTEI sets the transport error indicator.
func (h Header) SetTEI(b bool) {
	_ = hTEI.Set(h, b2u(b))
}

// SetPUSI sets the payload unit start indicator.
func (h Header) SetPUSI(b bool) {
	_ = hPUSI.Set(h, b2u(b))
}

// SetPriority sets the transport priority bit.
func (h Header) SetPriority(b bool) {
	_ = hPriority.Set(h, b2u(b))
}

// SetPID sets the PID. PIDs are 13 bits, larger values are an error.
func (h Header) SetPID(v uint16) error {
	return hPID.Set(h, v)
}

// SetScrambling sets the 2 bit scrambling control.
func (h Header) SetScrambling(v uint8) error {
	return hScrambling.Set(h, v)
}

// SetAdaptation sets the adaptation field control. Values above ACAdaptPayload are an error.
func (h Header) SetAdaptation(a AdaptationControl) error {
	return hAdaptation.Set(h, uint8(a))
}

// SetContinuity sets the continuity counter. It is 4 bits, larger values are an error.
func (h Header) SetContinuity(v uint8) error {
	return hContinuity.Set(h, v)
}

// Fields is a copy of the values in a Header.
type Fields struct {
	Sync       uint8  `json:"sync_byte"`
	TEI        bool   `json:"tei"`
	PUSI       bool   `json:"pusi"`
	Priority   bool   `json:"priority"`
	PID        uint16 `json:"pid"`
	Scrambling uint8  `json:"scrambling"`
	Adaptation string `json:"adaptation"`
	Continuity uint8  `json:"continuity"`
}

// Fields copies the values out of the Header.
func (h Header) Fields() Fields {
	return Fields{
		Sync:       h.Sync(),
		TEI:        h.TEI(),
		PUSI:       h.PUSI(),
		Priority:   h.Priority(),
		PID:        h.PID(),
		Scrambling: h.Scrambling(),
		Adaptation: h.Adaptation().String(),
		Continuity: h.Continuity(),
	}
}

func (f Fields) String() string {
	return fmt.Sprintf(
		"pid=%#04x pusi=%t tei=%t prio=%t scr=%d afc=%s cc=%d",
		f.PID, f.PUSI, f.TEI, f.Priority, f.Scrambling, f.Adaptation, f.Continuity,
	)
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

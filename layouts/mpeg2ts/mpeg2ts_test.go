package mpeg2ts

import (
	"bytes"
	"testing"

	"github.com/kylelemons/godebug/pretty"

	"github.com/bearlytools/ptl/languages/go/errors"
	"github.com/bearlytools/ptl/languages/go/protocol"
)

func TestProtocol(t *testing.T) {
	if Protocol.ByteLength() != HeaderSize {
		t.Errorf("TestProtocol: ByteLength() got %d, want %d", Protocol.ByteLength(), HeaderSize)
	}
	if Protocol.BitLength() != 32 {
		t.Errorf("TestProtocol: BitLength() got %d, want 32", Protocol.BitLength())
	}
	if i, ok := Protocol.Index("pid"); !ok || i != FPID {
		t.Errorf("TestProtocol: Index(pid) got %d/%v, want %d/true", i, ok, FPID)
	}
	if span, _ := Protocol.SpansBytes(FPID); !span {
		t.Errorf("TestProtocol: pid should span bytes")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		desc   string
		pkt    []byte
		strict bool
		want   Fields
		err    error
	}{
		{
			desc: "Success: PAT packet",
			pkt:  []byte{0x47, 0x40, 0x00, 0x10},
			want: Fields{Sync: 0x47, PUSI: true, PID: 0, Adaptation: "payload", Continuity: 0},
		},
		{
			desc: "Success: PID 0x100 with adaptation and payload",
			pkt:  []byte{0x47, 0x01, 0x00, 0x37, 0xff, 0xff},
			want: Fields{Sync: 0x47, PID: 0x100, Adaptation: "adaptation+payload", Continuity: 7},
		},
		{
			desc: "Success: every flag set",
			pkt:  []byte{0x47, 0xff, 0xff, 0xff},
			want: Fields{
				Sync: 0x47, TEI: true, PUSI: true, Priority: true, PID: NullPID,
				Scrambling: 3, Adaptation: "adaptation+payload", Continuity: 15,
			},
		},
		{
			desc: "Success: bad sync without strict",
			pkt:  []byte{0x00, 0x1f, 0xff, 0x10},
			want: Fields{Sync: 0, PID: NullPID, Adaptation: "payload"},
		},
		{
			desc:   "Error: bad sync with strict",
			pkt:    []byte{0x00, 0x1f, 0xff, 0x10},
			strict: true,
			err:    ErrSync,
		},
		{
			desc: "Error: short packet",
			pkt:  []byte{0x47, 0x40, 0x00},
			err:  protocol.ErrShortBuffer,
		},
	}

	for _, test := range tests {
		h, err := Parse(test.pkt, test.strict)
		switch {
		case err == nil && test.err != nil:
			t.Errorf("TestParse(%s): got err == nil, want err wrapping %v", test.desc, test.err)
			continue
		case err != nil && test.err == nil:
			t.Errorf("TestParse(%s): got err == %s, want err == nil", test.desc, err)
			continue
		case err != nil:
			if !errors.Is(err, test.err) {
				t.Errorf("TestParse(%s): got err == %s, want err wrapping %v", test.desc, err, test.err)
			}
			continue
		}

		if diff := pretty.Compare(test.want, h.Fields()); diff != "" {
			t.Errorf("TestParse(%s): -want/+got:\n%s", test.desc, diff)
		}
	}
}

func TestHeaderSetters(t *testing.T) {
	h := NewHeader()
	h.SetPUSI(true)
	h.SetPriority(true)
	if err := h.SetPID(0x1abc); err != nil {
		t.Fatalf("TestHeaderSetters: SetPID() got err == %s", err)
	}
	if err := h.SetScrambling(2); err != nil {
		t.Fatalf("TestHeaderSetters: SetScrambling() got err == %s", err)
	}
	if err := h.SetAdaptation(ACPayload); err != nil {
		t.Fatalf("TestHeaderSetters: SetAdaptation() got err == %s", err)
	}
	if err := h.SetContinuity(9); err != nil {
		t.Fatalf("TestHeaderSetters: SetContinuity() got err == %s", err)
	}

	want := []byte{0x47, 0x7a, 0xbc, 0x99}
	if !bytes.Equal(h, want) {
		t.Errorf("TestHeaderSetters: got % x, want % x", []byte(h), want)
	}

	h.SetTEI(true)
	h.SetPUSI(false)
	if h[1] != 0xba {
		t.Errorf("TestHeaderSetters: flags byte got %#x, want 0xba", h[1])
	}
	if h.PID() != 0x1abc {
		t.Errorf("TestHeaderSetters: PID() after flag changes got %#x, want 0x1abc", h.PID())
	}
}

func TestHeaderSetterRange(t *testing.T) {
	h := NewHeader()
	before := append([]byte(nil), h...)

	if err := h.SetPID(NullPID + 1); !errors.Is(err, protocol.ErrValueRange) {
		t.Errorf("TestHeaderSetterRange(pid): got err == %v, want ErrValueRange", err)
	}
	if err := h.SetContinuity(16); !errors.Is(err, protocol.ErrValueRange) {
		t.Errorf("TestHeaderSetterRange(continuity): got err == %v, want ErrValueRange", err)
	}
	if err := h.SetScrambling(4); !errors.Is(err, protocol.ErrValueRange) {
		t.Errorf("TestHeaderSetterRange(scrambling): got err == %v, want ErrValueRange", err)
	}
	if !bytes.Equal(h, before) {
		t.Errorf("TestHeaderSetterRange: header changed to % x, want % x", []byte(h), before)
	}
}

func TestHeaderIsView(t *testing.T) {
	pkt := make([]byte, PacketSize)
	pkt[0] = SyncByte
	h, err := Parse(pkt, true)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.SetContinuity(5); err != nil {
		t.Fatal(err)
	}
	if pkt[3] != 0x05 {
		t.Errorf("TestHeaderIsView: packet byte 3 got %#x, want 0x05", pkt[3])
	}
}

func TestAdaptationControl(t *testing.T) {
	tests := []struct {
		a          AdaptationControl
		payload    bool
		adaptation bool
	}{
		{ACReserved, false, false},
		{ACPayload, true, false},
		{ACAdaptation, false, true},
		{ACAdaptPayload, true, true},
	}
	for _, test := range tests {
		if test.a.HasPayload() != test.payload {
			t.Errorf("TestAdaptationControl(%s): HasPayload() got %v, want %v", test.a, test.a.HasPayload(), test.payload)
		}
		if test.a.HasAdaptation() != test.adaptation {
			t.Errorf("TestAdaptationControl(%s): HasAdaptation() got %v, want %v", test.a, test.a.HasAdaptation(), test.adaptation)
		}
	}
}

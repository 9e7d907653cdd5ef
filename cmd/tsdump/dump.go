package main

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/gostdlib/base/context"
	"github.com/rs/zerolog"

	"github.com/bearlytools/ptl/internal/capture"
	"github.com/bearlytools/ptl/languages/go/errors"
	"github.com/bearlytools/ptl/layouts/mpeg2ts"
)

// record is a packet header in json output.
type record struct {
	Packet int64 `json:"packet"`

	mpeg2ts.Fields `json:",inline"`
}

type stats struct {
	Packets         int64
	Printed         int64
	LostSync        int64
	TransportErrs   int64
	Duplicates      int64
	Discontinuities int64
}

// ccState is the continuity counter seen last for a PID.
type ccState struct {
	cc  uint8
	dup bool
}

// dumper prints the header of every packet in a stream.
type dumper struct {
	cfg  config
	out  io.Writer
	log  zerolog.Logger
	pids map[uint16]bool
	cc   map[uint16]ccState
}

func newDumper(cfg config, out io.Writer, log zerolog.Logger) *dumper {
	d := &dumper{cfg: cfg, out: out, log: log, cc: map[uint16]ccState{}}
	if len(cfg.PIDs) > 0 {
		d.pids = make(map[uint16]bool, len(cfg.PIDs))
		for _, p := range cfg.PIDs {
			d.pids[p] = true
		}
	}
	return d
}

// dump reads packets from "r" until it ends. Packets that lost sync are counted and
// skipped, unless StrictSync is set, which makes them an error.
func (d *dumper) dump(r io.Reader) (stats, error) {
	var st stats

	pkts := capture.NewPackets(r, mpeg2ts.PacketSize)
	for {
		pkt, err := pkts.Next()
		if err == io.EOF {
			return st, nil
		}
		if err != nil {
			return st, err
		}
		st.Packets++
		n := pkts.Count() - 1

		h, err := mpeg2ts.Parse(pkt, d.cfg.StrictSync)
		if err != nil {
			return st, errors.E(context.Background(), errors.CatUser, errors.TypeParameter, fmt.Errorf("packet %d: %w", n, err))
		}
		if h.Sync() != mpeg2ts.SyncByte {
			st.LostSync++
			d.log.Warn().Int64("packet", n).Uint8("sync", h.Sync()).Msg("lost sync, skipping packet")
			continue
		}
		if h.TEI() {
			st.TransportErrs++
			d.log.Debug().Int64("packet", n).Uint16("pid", h.PID()).Msg("transport error indicator set")
		}
		disc, dup := d.continuity(h)
		if dup {
			st.Duplicates++
			d.log.Debug().Int64("packet", n).Uint16("pid", h.PID()).Uint8("cc", h.Continuity()).Msg("duplicate packet")
		}
		if disc {
			st.Discontinuities++
			d.log.Debug().Int64("packet", n).Uint16("pid", h.PID()).Uint8("cc", h.Continuity()).Msg("continuity counter discontinuity")
		}

		if d.pids != nil && !d.pids[h.PID()] {
			continue
		}
		if err := d.print(n, h); err != nil {
			return st, err
		}
		st.Printed++
	}
}

// continuity records the continuity counter of "h" and reports if it did not follow the last
// one for the same PID, or if the packet is a duplicate. Only packets with payload advance the
// counter. A packet may repeat the last counter once in a row. The discontinuity_indicator in
// the adaptation field is not read, so a signalled discontinuity is still counted.
func (d *dumper) continuity(h mpeg2ts.Header) (disc, dup bool) {
	pid := h.PID()
	if pid == mpeg2ts.NullPID || !h.Adaptation().HasPayload() {
		return false, false
	}
	cc := h.Continuity()
	last, seen := d.cc[pid]
	switch {
	case !seen:
		d.cc[pid] = ccState{cc: cc}
		return false, false
	case cc == last.cc && !last.dup:
		d.cc[pid] = ccState{cc: cc, dup: true}
		return false, true
	}
	d.cc[pid] = ccState{cc: cc}
	return cc != (last.cc+1)&0xf, false
}

func (d *dumper) print(n int64, h mpeg2ts.Header) error {
	switch d.cfg.Format {
	case formatJSON:
		b, err := json.Marshal(record{Packet: n, Fields: h.Fields()})
		if err != nil {
			return err
		}
		_, err = d.out.Write(append(b, '\n'))
		return err
	default:
		_, err := fmt.Fprintf(d.out, "%8d %s\n", n, h.Fields())
		return err
	}
}

package plan

import (
	"sort"
)

// SlotStat summarizes one slot for reporting.
type SlotStat struct {
	Name  string
	Kind  SlotKind
	Type  string
	Cases []string
}

// RecordStat summarizes one overlay record.
type RecordStat struct {
	Case    string
	Members int
	Size    int64
	Align   int64
	// Known is false when a member size was not available.
	Known bool
}

// Stats describes the outcome of packing one union.
type Stats struct {
	Union string
	// Params is the number of declared parameters (the field count an
	// unpacked layout would need).
	Params  int
	Slots   []SlotStat
	Records []RecordStat
	// OverlaySize is the size of the overlay field: the largest record,
	// rounded up to 8-byte words as emitted.
	OverlaySize  int64
	OverlayKnown bool
	// SlotsByType counts slots per storage type identity.
	SlotsByType map[string]int
}

// Stats computes packing statistics. Record sizes follow Go struct layout
// rules over the member sizes the collector supplied.
func (p *LayoutPlan) Stats() Stats {
	st := Stats{
		Union:        p.Union.ID(),
		SlotsByType:  make(map[string]int),
		OverlayKnown: true,
	}

	for _, c := range p.Union.Cases {
		st.Params += len(c.Parameters)
	}

	for _, s := range p.Slots {
		ss := SlotStat{Name: s.Name, Kind: s.Kind, Type: s.Type.Expr}
		for _, ci := range s.cases {
			ss.Cases = append(ss.Cases, p.Union.Cases[ci].Name)
		}

		st.Slots = append(st.Slots, ss)
		st.SlotsByType[s.Type.Identity()]++
	}

	if p.Overlay == nil {
		return st
	}

	var largest int64

	for _, r := range p.Overlay.Records {
		rs := recordLayout(r)
		st.Records = append(st.Records, rs)

		if !rs.Known {
			st.OverlayKnown = false
		}

		largest = max(largest, rs.Size)
	}

	st.OverlaySize = alignUp(largest, wordSize)

	return st
}

// SortedTypes returns the keys of SlotsByType in sorted order.
func (s Stats) SortedTypes() []string {
	keys := make([]string, 0, len(s.SlotsByType))
	for k := range s.SlotsByType {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

const wordSize = 8

func recordLayout(r *OverlayRecord) RecordStat {
	rs := RecordStat{Case: r.CaseName, Members: len(r.Members), Align: 1, Known: true}

	var offset int64

	for _, m := range r.Members {
		if m.Type.Align <= 0 {
			rs.Known = false
			continue
		}

		offset = alignUp(offset, m.Type.Align)
		offset += m.Type.Size
		rs.Align = max(rs.Align, m.Type.Align)
	}

	rs.Size = alignUp(offset, rs.Align)

	return rs
}

func alignUp(n, align int64) int64 {
	if align <= 1 {
		return n
	}

	return (n + align - 1) / align * align
}

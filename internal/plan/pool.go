package plan

import (
	"strconv"

	"unionsynth/internal/classify"
	"unionsynth/internal/model"
)

// Pool is the greedy shared-slot allocator of one union.
//
// Request is first-fit over same-typed slots in creation order, so the number
// of slots of a type never exceeds the largest per-case count of that type.
// Slot names are derived from creation order and stay stable for identical
// input.
type Pool struct {
	slots  []*Slot
	erased int
	typed  int
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{}
}

// Request returns a slot of type d not yet bound to caseID, binding it.
func (p *Pool) Request(caseID int, d model.TypeDescriptor) *Slot {
	for _, s := range p.slots {
		if s.Type.SameSlotType(d) && !s.BoundTo(caseID) {
			s.bind(caseID)
			return s
		}
	}

	s := &Slot{Kind: SlotShared, Type: d}
	if d.SameSlotType(classify.Erased) {
		s.Erased = true
		s.Name = "ref" + strconv.Itoa(p.erased)
		p.erased++
	} else {
		s.Name = "val" + strconv.Itoa(p.typed)
		p.typed++
	}

	s.bind(caseID)
	p.slots = append(p.slots, s)

	return s
}

// Slots returns the allocated slots in creation order.
func (p *Pool) Slots() []*Slot {
	return p.slots
}

// CountOf returns how many slots of type d were allocated.
func (p *Pool) CountOf(d model.TypeDescriptor) int {
	n := 0

	for _, s := range p.slots {
		if s.Type.SameSlotType(d) {
			n++
		}
	}

	return n
}

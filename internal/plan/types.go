package plan

import (
	"fmt"
	"slices"

	"unionsynth/internal/classify"
	"unionsynth/internal/common"
	"unionsynth/internal/model"
)

// OverlayField is the name of the generated field holding the overlay.
const OverlayField = model.OverlayField

// SlotKind distinguishes slot flavors.
type SlotKind int

const (
	// SlotShared is reused by same-typed parameters of different cases.
	SlotShared SlotKind = iota
	// SlotDedicated belongs to exactly one (case, parameter) pair.
	SlotDedicated
)

// String returns a human-readable slot kind.
func (k SlotKind) String() string {
	switch k {
	case SlotShared:
		return "shared"
	case SlotDedicated:
		return "dedicated"
	default:
		return common.UnknownStr
	}
}

// Slot is a generated field of the union type.
type Slot struct {
	// Name is the Go field name.
	Name string
	Kind SlotKind
	// Type is the storage type: classify.Erased for references.
	Type model.TypeDescriptor
	// Erased is true when reads must reapply the static type.
	Erased bool

	cases []int
}

// Cases returns the case indexes bound to the slot, in binding order.
func (s *Slot) Cases() []int {
	return slices.Clone(s.cases)
}

// BoundTo reports whether caseID already uses the slot.
func (s *Slot) BoundTo(caseID int) bool {
	return slices.Contains(s.cases, caseID)
}

func (s *Slot) bind(caseID int) {
	s.cases = append(s.cases, caseID)
}

// OverlayMember is one field of a per-case overlay record.
type OverlayMember struct {
	Param int
	Name  string
	Type  model.TypeDescriptor
}

// OverlayRecord is the flat record holding one case's unmanaged parameters in
// declared order.
type OverlayRecord struct {
	Case     int
	CaseName string
	// TypeName is the generated record type, e.g. "shapeCircleOverlay".
	TypeName string
	// Accessor is the generated method returning a pointer to the record
	// inside the overlay, e.g. "circleOverlay".
	Accessor string
	Members  []OverlayMember
}

// OverlayGroup is the set of per-case records sharing one field at offset 0.
type OverlayGroup struct {
	Field   string
	Records []*OverlayRecord
}

// AccessKind selects how a parameter is reached.
type AccessKind int

const (
	// AccessSlot reads and writes a typed shared slot directly.
	AccessSlot AccessKind = iota
	// AccessErasedSlot stores into an any slot and reapplies the type on read.
	AccessErasedSlot
	// AccessOverlay goes through the case's overlay record.
	AccessOverlay
	// AccessDedicated uses a field owned by the parameter.
	AccessDedicated
)

// String returns a human-readable access kind.
func (k AccessKind) String() string {
	switch k {
	case AccessSlot:
		return "slot"
	case AccessErasedSlot:
		return "erased"
	case AccessOverlay:
		return "overlay"
	case AccessDedicated:
		return "dedicated"
	default:
		return common.UnknownStr
	}
}

// Accessor is the planned storage location of one parameter.
type Accessor struct {
	Kind  AccessKind
	Class classify.Class
	// Type is the declared parameter type.
	Type model.TypeDescriptor
	// Slot is set for every kind except AccessOverlay.
	Slot *Slot
	// Record and Member are set for AccessOverlay.
	Record *OverlayRecord
	Member string
}

// Path returns the accessor path, e.g. "overlay.circle.radius" or "ref0".
func (a Accessor) Path() string {
	if a.Kind == AccessOverlay {
		return fmt.Sprintf("%s.%s.%s", OverlayField, common.Unexported(a.Record.CaseName), a.Member)
	}

	return a.Slot.Name
}

// ParamKey identifies a parameter by case and parameter index.
type ParamKey struct {
	Case  int
	Param int
}

// LayoutPlan is the complete parameter-to-storage map of one union.
type LayoutPlan struct {
	Union *model.UnionDeclaration
	// Slots in creation order.
	Slots []*Slot
	// Overlay is nil when no case has unmanaged parameters.
	Overlay *OverlayGroup

	accessors map[ParamKey]Accessor
}

// Lookup returns the accessor of the given parameter.
func (p *LayoutPlan) Lookup(caseID, param int) (Accessor, bool) {
	a, ok := p.accessors[ParamKey{Case: caseID, Param: param}]
	return a, ok
}

// MustLookup is Lookup for callers that rely on plan totality.
func (p *LayoutPlan) MustLookup(caseID, param int) Accessor {
	a, ok := p.Lookup(caseID, param)
	if !ok {
		panic(fmt.Sprintf("plan: no accessor for case %d parameter %d", caseID, param))
	}

	return a
}

// Record returns the overlay record of a case, or nil.
func (p *LayoutPlan) Record(caseID int) *OverlayRecord {
	if p.Overlay == nil {
		return nil
	}

	for _, r := range p.Overlay.Records {
		if r.Case == caseID {
			return r
		}
	}

	return nil
}

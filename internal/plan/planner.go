package plan

import (
	"fmt"

	"unionsynth/internal/classify"
	"unionsynth/internal/model"
)

// Build computes the layout plan of a union from scratch.
//
// Every parameter of every case is visited in declared order and assigned
// exactly one accessor. Only unmanaged parameters are physically overlaid;
// reference and other slots are reused logically, never overlaid.
func Build(u *model.UnionDeclaration) (*LayoutPlan, error) {
	if err := u.Validate(); err != nil {
		return nil, &PlanError{Kind: PlanErrInvalidDeclaration, Union: u.ID(), Err: err}
	}

	var (
		p   *LayoutPlan
		err error
	)

	switch u.Representation {
	case model.RepresentationPackedValue:
		p, err = buildPacked(u)
	case model.RepresentationTaggedReference:
		p, err = buildDedicated(u)
	default:
		return nil, &PlanError{
			Kind:  PlanErrRepresentation,
			Union: u.ID(),
			Err:   fmt.Errorf("unsupported representation %d", u.Representation),
		}
	}

	if err != nil {
		return nil, err
	}

	if err := p.checkComplete(); err != nil {
		return nil, err
	}

	return p, nil
}

func newLayoutPlan(u *model.UnionDeclaration) *LayoutPlan {
	return &LayoutPlan{
		Union:     u,
		accessors: make(map[ParamKey]Accessor),
	}
}

func buildPacked(u *model.UnionDeclaration) (*LayoutPlan, error) {
	p := newLayoutPlan(u)
	pool := NewPool()
	overlay := NewOverlay(u.Name)

	for ci, c := range u.Cases {
		for pi, param := range c.Parameters {
			class := classify.Classify(param.Type)
			key := ParamKey{Case: ci, Param: pi}

			switch class {
			case classify.ClassUnmanaged:
				rec := overlay.Add(ci, c.Name, pi, param)
				p.accessors[key] = Accessor{
					Kind:   AccessOverlay,
					Class:  class,
					Type:   param.Type,
					Record: rec,
					Member: param.Name,
				}

			case classify.ClassReference, classify.ClassOther:
				slot := pool.Request(ci, classify.StorageType(param.Type, class))

				kind := AccessSlot
				if slot.Erased {
					kind = AccessErasedSlot
				}

				p.accessors[key] = Accessor{
					Kind:  kind,
					Class: class,
					Type:  param.Type,
					Slot:  slot,
				}

			default:
				return nil, &PlanError{Kind: PlanErrUnclassified, Union: u.ID(), Case: c.Name, Param: param.Name}
			}
		}
	}

	p.Slots = pool.Slots()
	p.Overlay = overlay.Group()

	return p, nil
}

// buildDedicated gives every parameter its own field. Tagged-reference
// instances own their storage, so there is nothing to pack.
func buildDedicated(u *model.UnionDeclaration) (*LayoutPlan, error) {
	p := newLayoutPlan(u)

	for ci, c := range u.Cases {
		for pi, param := range c.Parameters {
			class := classify.Classify(param.Type)
			if class == 0 {
				return nil, &PlanError{Kind: PlanErrUnclassified, Union: u.ID(), Case: c.Name, Param: param.Name}
			}

			slot := &Slot{
				Name: model.DedicatedFieldName(c.Name, param.Name),
				Kind: SlotDedicated,
				Type: param.Type,
			}
			slot.bind(ci)
			p.Slots = append(p.Slots, slot)

			p.accessors[ParamKey{Case: ci, Param: pi}] = Accessor{
				Kind:  AccessDedicated,
				Class: class,
				Type:  param.Type,
				Slot:  slot,
			}
		}
	}

	return p, nil
}

// checkComplete verifies plan totality.
func (p *LayoutPlan) checkComplete() error {
	for ci, c := range p.Union.Cases {
		for pi, param := range c.Parameters {
			if _, ok := p.Lookup(ci, pi); !ok {
				return &PlanError{Kind: PlanErrIncomplete, Union: p.Union.ID(), Case: c.Name, Param: param.Name}
			}
		}
	}

	return nil
}

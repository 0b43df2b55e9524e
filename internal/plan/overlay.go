package plan

import (
	"unionsynth/internal/model"
)

// Overlay builds the blittable overlay group of one union.
//
// Each case with at least one unmanaged parameter gets one record; members
// keep declared order and never overlap inside a record. All records share
// the overlay field, so only the record of the active case may be read.
type Overlay struct {
	union   string
	records []*OverlayRecord
}

// NewOverlay returns an empty overlay for the named union.
func NewOverlay(unionName string) *Overlay {
	return &Overlay{union: unionName}
}

// Add places an unmanaged parameter into its case record, creating the record
// on first use, and returns the record.
func (o *Overlay) Add(caseID int, caseName string, paramIdx int, p model.CaseParameter) *OverlayRecord {
	rec := o.record(caseID)
	if rec == nil {
		rec = &OverlayRecord{
			Case:     caseID,
			CaseName: caseName,
			TypeName: model.RecordTypeName(o.union, caseName),
			Accessor: model.RecordAccessorName(caseName),
		}
		o.records = append(o.records, rec)
	}

	rec.Members = append(rec.Members, OverlayMember{
		Param: paramIdx,
		Name:  p.Name,
		Type:  p.Type,
	})

	return rec
}

func (o *Overlay) record(caseID int) *OverlayRecord {
	for _, r := range o.records {
		if r.Case == caseID {
			return r
		}
	}

	return nil
}

// Group returns the overlay group, or nil when no record was created.
func (o *Overlay) Group() *OverlayGroup {
	if len(o.records) == 0 {
		return nil
	}

	return &OverlayGroup{
		Field:   OverlayField,
		Records: o.records,
	}
}

package typemodel

// LocationKind selects how a parameter is stored.
type LocationKind int

const (
	// LocField is a typed field of the union.
	LocField LocationKind = iota
	// LocErased is an erased field; reads reapply Type.
	LocErased
	// LocOverlay is a member of a per-case overlay record.
	LocOverlay
)

// Location is the storage of one parameter as seen by member bodies.
type Location struct {
	Kind LocationKind
	// Field is the union field (LocField, LocErased).
	Field string
	// Accessor names the overlay record accessor, Member the record field
	// (LocOverlay).
	Accessor string
	Member   string
	// Type is the declared parameter type.
	Type TypeRef
}

// Op is one abstract operation of a member body.
type Op interface {
	op()
}

// Expr is an abstract value.
type Expr interface {
	expr()
}

// AssignTag sets the discriminant of the value under construction.
type AssignTag struct {
	Case int
}

// Store writes a parameter through its location.
type Store struct {
	Param string
	Loc   Location
}

// ReturnSelf returns the value under construction.
type ReturnSelf struct{}

// RequireHandlers fails when any handler is missing.
type RequireHandlers struct {
	Handlers []Handler
}

// Arm is one case branch of a Dispatch.
type Arm struct {
	Cases []int
	Body  []Op
}

// Dispatch tests the discriminant against every arm in order and runs
// Fallback when nothing matches.
type Dispatch struct {
	Arms     []Arm
	Fallback []Op
}

// Invoke calls the handler of a case with its decoded arguments.
type Invoke struct {
	Handler   string
	WithState bool
	Args      []Location
	Returns   bool
}

// Return returns the given values.
type Return struct {
	Values []Expr
}

// ReturnIfTagsDiffer returns false when the two operands have different
// discriminants.
type ReturnIfTagsDiffer struct {
	Other string
}

// FailInvalid raises the invalid-state error.
type FailInvalid struct{}

func (AssignTag) op()          {}
func (Store) op()              {}
func (ReturnSelf) op()         {}
func (RequireHandlers) op()    {}
func (Dispatch) op()           {}
func (Invoke) op()             {}
func (Return) op()             {}
func (ReturnIfTagsDiffer) op() {}
func (FailInvalid) op()        {}

// Load reads a parameter of the receiver (Of == "") or of another operand.
type Load struct {
	Loc Location
	Of  string
}

// Zero is the zero value of a type.
type Zero struct {
	Type TypeRef
}

// Bool is a boolean literal.
type Bool bool

// TagIs is true when the discriminant equals the case tag.
type TagIs struct {
	Case int
}

// TagValue is the raw discriminant.
type TagValue struct{}

// TagValid is true when the discriminant names a declared case.
type TagValid struct{}

// FieldRecord yields a pointer to an overlay record of the receiver.
type FieldRecord struct {
	Field  string
	Record string
}

// EqualAll is the conjunction of natural equality over each location of the
// receiver and Other. No locations means true.
type EqualAll struct {
	Other string
	Locs  []Location
}

// HashAll combines the discriminant and the hash of every location.
type HashAll struct {
	Locs []Location
}

// Format renders a case name with "name = value" pairs.
type Format struct {
	Case  string
	Names []string
	Locs  []Location
}

func (Load) expr()        {}
func (Zero) expr()        {}
func (Bool) expr()        {}
func (TagIs) expr()       {}
func (TagValue) expr()    {}
func (TagValid) expr()    {}
func (FieldRecord) expr() {}
func (EqualAll) expr()    {}
func (HashAll) expr()     {}
func (Format) expr()      {}

// CallEqual evaluates the structural equality method against Other.
type CallEqual struct {
	Other  string
	Negate bool
}

func (CallEqual) expr() {}

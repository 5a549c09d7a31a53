package gen

// A Scalar is a built-in field type of the data model.
type Scalar uint8

// Scalar types in declaration order. The order is used for every
// scalar-keyed iteration, which keeps the output stable.
const (
	ScalarInvalid Scalar = iota
	ScalarString
	ScalarInt
	ScalarFloat
	ScalarBoolean
	ScalarDateTime
	ScalarJSON
	ScalarBigInt
	ScalarDecimal
	ScalarBytes
	endScalars
)

// Scalars lists all valid scalar types.
var Scalars = func() []Scalar {
	s := make([]Scalar, 0, endScalars-1)
	for t := ScalarString; t < endScalars; t++ {
		s = append(s, t)
	}
	return s
}()

var scalarInfo = [...]struct {
	name    string // schema and GraphQL name
	tsType  string
	ordered bool // supports lt/lte/gt/gte
	text    bool // supports contains/startsWith/endsWith
	custom  bool // not a GraphQL built-in
}{
	ScalarInvalid:  {name: "invalid"},
	ScalarString:   {name: "String", tsType: "string", ordered: true, text: true},
	ScalarInt:      {name: "Int", tsType: "number", ordered: true},
	ScalarFloat:    {name: "Float", tsType: "number", ordered: true},
	ScalarBoolean:  {name: "Boolean", tsType: "boolean"},
	ScalarDateTime: {name: "DateTime", tsType: "Date", ordered: true, custom: true},
	ScalarJSON:     {name: "Json", tsType: "any", custom: true},
	ScalarBigInt:   {name: "BigInt", tsType: "bigint", ordered: true, custom: true},
	ScalarDecimal:  {name: "Decimal", tsType: "string", ordered: true, custom: true},
	ScalarBytes:    {name: "Bytes", tsType: "Buffer", custom: true},
}

// ParseScalar returns the scalar type for the given schema name.
func ParseScalar(name string) (Scalar, bool) {
	for _, t := range Scalars {
		if scalarInfo[t].name == name {
			return t, true
		}
	}
	return ScalarInvalid, false
}

// String returns the schema (and GraphQL) name of the scalar.
func (t Scalar) String() string {
	if t < endScalars {
		return scalarInfo[t].name
	}
	return scalarInfo[ScalarInvalid].name
}

// Valid reports if the scalar is a known type.
func (t Scalar) Valid() bool { return t > ScalarInvalid && t < endScalars }

// TSType returns the TypeScript type used for values of this scalar.
func (t Scalar) TSType() string { return scalarInfo[t].tsType }

// Ordered reports if values of this scalar can be compared with lt/gt.
func (t Scalar) Ordered() bool { return scalarInfo[t].ordered }

// Text reports if the scalar supports substring matching.
func (t Scalar) Text() bool { return scalarInfo[t].text }

// Custom reports if the scalar must be declared by the generated schema
// (i.e. it is not one of the GraphQL built-in scalars).
func (t Scalar) Custom() bool { return scalarInfo[t].custom }

// Orderable reports if fields of this scalar can appear in an order-by input.
func (t Scalar) Orderable() bool { return t != ScalarJSON && t != ScalarBytes }

// Op is a filter operation on a scalar or enum value.
type Op uint

// List of filter operations.
const (
	EQ Op = iota
	NEQ
	In
	NotIn
	LT
	LTE
	GT
	GTE
	Contains
	HasPrefix
	HasSuffix
)

var opNames = [...]string{
	EQ:        "equals",
	NEQ:       "not",
	In:        "in",
	NotIn:     "notIn",
	LT:        "lt",
	LTE:       "lte",
	GT:        "gt",
	GTE:       "gte",
	Contains:  "contains",
	HasPrefix: "startsWith",
	HasSuffix: "endsWith",
}

// Name returns the input field name of the operation.
func (o Op) Name() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "unknown"
}

// Variadic reports if the operator takes a list of values.
func (o Op) Variadic() bool { return o == In || o == NotIn }

// Nullable reports if the operator accepts a null value, which turns it
// into a null check.
func (o Op) Nullable() bool { return o == EQ || o == NEQ }

var (
	eqOps   = []Op{EQ, NEQ, In, NotIn}
	ordOps  = []Op{LT, LTE, GT, GTE}
	textOps = []Op{Contains, HasPrefix, HasSuffix}
)

// Ops returns the filter operations supported by the scalar.
func (t Scalar) Ops() []Op {
	ops := append([]Op(nil), eqOps...)
	if t.Ordered() {
		ops = append(ops, ordOps...)
	}
	if t.Text() {
		ops = append(ops, textOps...)
	}
	return ops
}

// EnumOps returns the filter operations supported by enum values.
func EnumOps() []Op { return append([]Op(nil), eqOps...) }

package gen

import "github.com/syssam/crudgen/compiler/load"

// Enum represents an enumeration of the schema.
type Enum struct {
	// Name holds the PascalCase name of the enum.
	Name string
	// Values holds the members in declaration order.
	Values []string
	// Comment holds the documentation of the enum.
	Comment string
	// Builtin is set for enums synthesized by the generator rather than
	// declared in the schema.
	Builtin bool
}

// OrderByArgName is the name of the shared ordering-direction enum.
const OrderByArgName = "OrderByArg"

// newOrderByArg returns the shared ordering-direction enum.
func newOrderByArg() *Enum {
	return &Enum{
		Name:    OrderByArgName,
		Values:  []string{"asc", "desc"},
		Builtin: true,
	}
}

func newEnum(e *load.Enum) *Enum {
	return &Enum{
		Name:    pascal(e.Name),
		Values:  append([]string(nil), e.Values...),
		Comment: e.Comment,
	}
}


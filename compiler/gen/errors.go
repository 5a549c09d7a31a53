package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrInvalidSchema indicates a schema definition error.
	ErrInvalidSchema = errors.New("crudgen: invalid schema")
	// ErrResolution indicates a reference that could not be resolved.
	ErrResolution = errors.New("crudgen: unresolved reference")
	// ErrNamingCollision indicates two constructs planned to the same path.
	ErrNamingCollision = errors.New("crudgen: naming collision")
	// ErrUnsupportedConstruct indicates a construct the emitter cannot render.
	ErrUnsupportedConstruct = errors.New("crudgen: unsupported construct")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("crudgen: missing configuration")
	// ErrGenerationFailed indicates a failure outside the core pipeline,
	// such as persisting the artifact tree.
	ErrGenerationFailed = errors.New("crudgen: generation failed")
)

// SchemaError reports a schema document that loads but cannot be compiled:
// an invalid name, a bad relation pairing or a name the generated API
// would reuse.
type SchemaError struct {
	Type    string // entity or enum
	Field   string // empty for errors on the declaration itself
	Message string
	Cause   error
}

// Error formats the error as "crudgen: schema: Type.field: message".
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("crudgen: schema")
	if loc := e.location(); loc != "" {
		b.WriteString(": ")
		b.WriteString(loc)
	}
	for _, s := range []string{e.Message, errString(e.Cause)} {
		if s != "" {
			b.WriteString(": ")
			b.WriteString(s)
		}
	}
	return b.String()
}

func (e *SchemaError) location() string {
	switch {
	case e.Type == "":
		return e.Field
	case e.Field == "":
		return e.Type
	default:
		return e.Type + "." + e.Field
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(typeName, fieldName, message string, cause error) *SchemaError {
	return &SchemaError{
		Type:    typeName,
		Field:   fieldName,
		Message: message,
		Cause:   cause,
	}
}

// ResolutionError is returned when a field references an entity or an enum
// that is not declared in the schema. It aborts the run before synthesis.
type ResolutionError struct {
	Type  string // Owner entity
	Field string
	// Ref is the name that could not be resolved.
	Ref string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("crudgen: resolution error on type %s field %s: %q is neither a scalar, an enum nor an entity", e.Type, e.Field, e.Ref)
}

// Is reports whether the target matches the sentinel error for ResolutionError.
func (e *ResolutionError) Is(target error) bool {
	return target == ErrResolution
}

// NewResolutionError creates a new ResolutionError.
func NewResolutionError(typeName, fieldName, ref string) *ResolutionError {
	return &ResolutionError{
		Type:  typeName,
		Field: fieldName,
		Ref:   ref,
	}
}

// NamingCollisionError is returned when two distinct constructs resolve to
// the same artifact path with different content. For a well-formed schema it
// indicates a defect in synthesis or in the naming grammar.
type NamingCollisionError struct {
	Path string
	// Kinds of the existing and the colliding construct.
	Existing, Colliding ConstructKind
}

// Error implements the error interface.
func (e *NamingCollisionError) Error() string {
	return fmt.Sprintf("crudgen: naming collision on %s (%s vs %s)", e.Path, e.Existing, e.Colliding)
}

// Is reports whether the target matches the sentinel error for NamingCollisionError.
func (e *NamingCollisionError) Is(target error) bool {
	return target == ErrNamingCollision
}

// UnsupportedConstructError is returned by an Emitter asked to render a
// construct kind it has no template for.
type UnsupportedConstructError struct {
	Kind ConstructKind
	Name string // Canonical name of the construct
}

// Error implements the error interface.
func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("crudgen: unsupported construct %s %q", e.Kind, e.Name)
}

// Is reports whether the target matches the sentinel error for UnsupportedConstructError.
func (e *UnsupportedConstructError) Is(target error) bool {
	return target == ErrUnsupportedConstruct
}

// ConfigError reports an invalid option of the generator: a Config field,
// a feature name or a CLI setting.
type ConfigError struct {
	Option  string
	Value   any // nil when the option is missing
	Message string
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("crudgen: option %s: %s", e.Option, e.Message)
	}
	return fmt.Sprintf("crudgen: option %s = %#v: %s", e.Option, e.Value, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError reports a failure after synthesis, while an extension
// builds its artifacts or the writer persists the tree and its manifest.
type GenerationError struct {
	Phase   string // write, clean, manifest, validate or extension
	File    string // artifact path relative to the target, if any
	Message string
	Cause   error
}

// Error formats the error as "crudgen: phase path: message: cause".
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("crudgen: ")
	if e.Phase == "" {
		b.WriteString("generate")
	}
	b.WriteString(e.Phase)
	if e.File != "" {
		b.WriteString(" ")
		b.WriteString(e.File)
	}
	for _, s := range []string{e.Message, errString(e.Cause)} {
		if s != "" {
			b.WriteString(": ")
			b.WriteString(s)
		}
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsResolutionError reports whether the error is a ResolutionError.
func IsResolutionError(err error) bool {
	var resErr *ResolutionError
	return errors.As(err, &resErr)
}

// IsNamingCollisionError reports whether the error is a NamingCollisionError.
func IsNamingCollisionError(err error) bool {
	var ncErr *NamingCollisionError
	return errors.As(err, &ncErr)
}

// IsUnsupportedConstructError reports whether the error is an UnsupportedConstructError.
func IsUnsupportedConstructError(err error) bool {
	var ucErr *UnsupportedConstructError
	return errors.As(err, &ucErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

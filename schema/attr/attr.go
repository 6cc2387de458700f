// Package attr provides builders for declaring model attributes.
//
// Attributes are declared on a schema with the builder that matches the
// attribute's wire type, and are compiled into the model registry when the
// schema is registered on a catalog:
//
//	func (User) Attributes() []apiclient.Attribute {
//	    return []apiclient.Attribute{
//	        attr.String("name").
//	            Required().
//	            MaxLen(100),
//	        attr.Int("age").
//	            Positive(),
//	        attr.Time("created_at"),
//	    }
//	}
package attr

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Rule tokens collected per attribute. Rules are declarative markers
// consumed by the validation pass; Validators carry the executable checks.
const (
	// RuleRequired marks an attribute that must hold a non-empty value.
	RuleRequired = "required"
)

// A Type represents the wire type of an attribute.
type Type uint8

// List of attribute types.
const (
	TypeInvalid Type = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
	TypeUUID
	TypeBytes
	TypeJSON
	endTypes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeString:  "string",
	TypeInt:     "int",
	TypeFloat:   "float",
	TypeBool:    "bool",
	TypeTime:    "time",
	TypeUUID:    "uuid",
	TypeBytes:   "bytes",
	TypeJSON:    "json",
}

// String returns the string representation of the type.
func (t Type) String() string {
	if t < endTypes {
		return typeNames[t]
	}
	return typeNames[TypeInvalid]
}

// Valid reports if the given type is a declared attribute type.
func (t Type) Valid() bool {
	return t > TypeInvalid && t < endTypes
}

// Numeric reports if the given type is a numeric type.
func (t Type) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// A Descriptor for attribute configuration.
type Descriptor struct {
	Name       string            // attribute name as it appears on the wire.
	Type       Type              // attribute wire type.
	Rules      []string          // declarative rule tokens (e.g. "required").
	Validators []func(any) error // executable value checks.
	Sensitive  bool              // sensitive values are redacted from logs.
	Comment    string            // optional comment for codegen.
	Err        error             // first builder error, checked at registration.
}

// String returns a string attribute builder.
func String(name string) *StringBuilder {
	return &StringBuilder{desc: &Descriptor{Name: name, Type: TypeString}}
}

// Int returns an int attribute builder.
func Int(name string) *IntBuilder {
	return &IntBuilder{desc: &Descriptor{Name: name, Type: TypeInt}}
}

// Float returns a float attribute builder.
func Float(name string) *FloatBuilder {
	return &FloatBuilder{desc: &Descriptor{Name: name, Type: TypeFloat}}
}

// Bool returns a bool attribute builder.
func Bool(name string) *BoolBuilder {
	return &BoolBuilder{desc: &Descriptor{Name: name, Type: TypeBool}}
}

// Time returns a time attribute builder. Time attributes are carried on
// the wire as RFC 3339 strings.
func Time(name string) *TimeBuilder {
	return &TimeBuilder{desc: &Descriptor{Name: name, Type: TypeTime}}
}

// UUID returns a uuid attribute builder. UUID attributes are carried on
// the wire in the canonical textual form.
func UUID(name string) *UUIDBuilder {
	return &UUIDBuilder{desc: &Descriptor{Name: name, Type: TypeUUID}}
}

// Bytes returns a bytes attribute builder. Bytes attributes are carried
// on the wire base64-encoded.
func Bytes(name string) *BytesBuilder {
	return &BytesBuilder{desc: &Descriptor{Name: name, Type: TypeBytes}}
}

// JSON returns a builder for an attribute holding an arbitrary JSON value.
func JSON(name string) *JSONBuilder {
	return &JSONBuilder{desc: &Descriptor{Name: name, Type: TypeJSON}}
}

// StringBuilder is the builder for string attributes.
type StringBuilder struct {
	desc *Descriptor
}

// Required marks the attribute as required: validation fails when the
// value is absent or trims to the empty string.
func (b *StringBuilder) Required() *StringBuilder {
	b.desc.Rules = append(b.desc.Rules, RuleRequired)
	return b
}

// MaxLen limits the length of the string.
func (b *StringBuilder) MaxLen(i int) *StringBuilder {
	b.desc.Validators = append(b.desc.Validators, stringValidator(b.desc.Name, func(s string) error {
		if len(s) > i {
			return fmt.Errorf("value is greater than the max length %d", i)
		}
		return nil
	}))
	return b
}

// MinLen requires a minimum length for the string.
func (b *StringBuilder) MinLen(i int) *StringBuilder {
	b.desc.Validators = append(b.desc.Validators, stringValidator(b.desc.Name, func(s string) error {
		if len(s) < i {
			return fmt.Errorf("value is less than the min length %d", i)
		}
		return nil
	}))
	return b
}

// NotEmpty rejects the empty string. Unlike Required, an absent value
// still passes.
func (b *StringBuilder) NotEmpty() *StringBuilder {
	return b.MinLen(1)
}

// Match requires the string to match the given regular expression.
func (b *StringBuilder) Match(re *regexp.Regexp) *StringBuilder {
	b.desc.Validators = append(b.desc.Validators, stringValidator(b.desc.Name, func(s string) error {
		if !re.MatchString(s) {
			return fmt.Errorf("value does not match validation %q", re)
		}
		return nil
	}))
	return b
}

// Validate adds a custom validator to the attribute.
func (b *StringBuilder) Validate(fn func(string) error) *StringBuilder {
	b.desc.Validators = append(b.desc.Validators, stringValidator(b.desc.Name, fn))
	return b
}

// Sensitive marks the attribute as sensitive. Sensitive attributes are
// redacted from transport logs.
func (b *StringBuilder) Sensitive() *StringBuilder {
	b.desc.Sensitive = true
	return b
}

// Comment sets the comment of the attribute.
func (b *StringBuilder) Comment(c string) *StringBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the apiclient.Attribute interface by returning
// the descriptor of the attribute.
func (b *StringBuilder) Descriptor() *Descriptor {
	return b.desc
}

// IntBuilder is the builder for int attributes.
type IntBuilder struct {
	desc *Descriptor
}

// Required marks the attribute as required.
func (b *IntBuilder) Required() *IntBuilder {
	b.desc.Rules = append(b.desc.Rules, RuleRequired)
	return b
}

// Min requires a minimum value.
func (b *IntBuilder) Min(i int64) *IntBuilder {
	b.desc.Validators = append(b.desc.Validators, intValidator(b.desc.Name, func(v int64) error {
		if v < i {
			return fmt.Errorf("value is less than the min value %d", i)
		}
		return nil
	}))
	return b
}

// Max limits the value.
func (b *IntBuilder) Max(i int64) *IntBuilder {
	b.desc.Validators = append(b.desc.Validators, intValidator(b.desc.Name, func(v int64) error {
		if v > i {
			return fmt.Errorf("value is greater than the max value %d", i)
		}
		return nil
	}))
	return b
}

// Range requires the value to be in the range [i, j].
func (b *IntBuilder) Range(i, j int64) *IntBuilder {
	return b.Min(i).Max(j)
}

// Positive requires the value to be greater than zero.
func (b *IntBuilder) Positive() *IntBuilder {
	return b.Min(1)
}

// NonNegative requires the value to be greater than or equal to zero.
func (b *IntBuilder) NonNegative() *IntBuilder {
	return b.Min(0)
}

// Validate adds a custom validator to the attribute.
func (b *IntBuilder) Validate(fn func(int64) error) *IntBuilder {
	b.desc.Validators = append(b.desc.Validators, intValidator(b.desc.Name, fn))
	return b
}

// Comment sets the comment of the attribute.
func (b *IntBuilder) Comment(c string) *IntBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the apiclient.Attribute interface by returning
// the descriptor of the attribute.
func (b *IntBuilder) Descriptor() *Descriptor {
	return b.desc
}

// FloatBuilder is the builder for float attributes.
type FloatBuilder struct {
	desc *Descriptor
}

// Required marks the attribute as required.
func (b *FloatBuilder) Required() *FloatBuilder {
	b.desc.Rules = append(b.desc.Rules, RuleRequired)
	return b
}

// Min requires a minimum value.
func (b *FloatBuilder) Min(f float64) *FloatBuilder {
	b.desc.Validators = append(b.desc.Validators, floatValidator(b.desc.Name, func(v float64) error {
		if v < f {
			return fmt.Errorf("value is less than the min value %v", f)
		}
		return nil
	}))
	return b
}

// Max limits the value.
func (b *FloatBuilder) Max(f float64) *FloatBuilder {
	b.desc.Validators = append(b.desc.Validators, floatValidator(b.desc.Name, func(v float64) error {
		if v > f {
			return fmt.Errorf("value is greater than the max value %v", f)
		}
		return nil
	}))
	return b
}

// Positive requires the value to be greater than zero.
func (b *FloatBuilder) Positive() *FloatBuilder {
	b.desc.Validators = append(b.desc.Validators, floatValidator(b.desc.Name, func(v float64) error {
		if v <= 0 {
			return fmt.Errorf("value must be positive")
		}
		return nil
	}))
	return b
}

// Validate adds a custom validator to the attribute.
func (b *FloatBuilder) Validate(fn func(float64) error) *FloatBuilder {
	b.desc.Validators = append(b.desc.Validators, floatValidator(b.desc.Name, fn))
	return b
}

// Comment sets the comment of the attribute.
func (b *FloatBuilder) Comment(c string) *FloatBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the apiclient.Attribute interface by returning
// the descriptor of the attribute.
func (b *FloatBuilder) Descriptor() *Descriptor {
	return b.desc
}

// BoolBuilder is the builder for bool attributes.
type BoolBuilder struct {
	desc *Descriptor
}

// Required marks the attribute as required.
func (b *BoolBuilder) Required() *BoolBuilder {
	b.desc.Rules = append(b.desc.Rules, RuleRequired)
	return b
}

// Comment sets the comment of the attribute.
func (b *BoolBuilder) Comment(c string) *BoolBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the apiclient.Attribute interface by returning
// the descriptor of the attribute.
func (b *BoolBuilder) Descriptor() *Descriptor {
	return b.desc
}

// TimeBuilder is the builder for time attributes.
type TimeBuilder struct {
	desc *Descriptor
}

// Required marks the attribute as required.
func (b *TimeBuilder) Required() *TimeBuilder {
	b.desc.Rules = append(b.desc.Rules, RuleRequired)
	return b
}

// Validate adds a custom validator to the attribute.
func (b *TimeBuilder) Validate(fn func(time.Time) error) *TimeBuilder {
	b.desc.Validators = append(b.desc.Validators, func(v any) error {
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("attr: expected time value for %q, got %T", b.desc.Name, v)
		}
		return fn(t)
	})
	return b
}

// Comment sets the comment of the attribute.
func (b *TimeBuilder) Comment(c string) *TimeBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the apiclient.Attribute interface by returning
// the descriptor of the attribute.
func (b *TimeBuilder) Descriptor() *Descriptor {
	return b.desc
}

// UUIDBuilder is the builder for uuid attributes.
type UUIDBuilder struct {
	desc *Descriptor
}

// Required marks the attribute as required.
func (b *UUIDBuilder) Required() *UUIDBuilder {
	b.desc.Rules = append(b.desc.Rules, RuleRequired)
	// A textual uuid must also parse.
	b.desc.Validators = append(b.desc.Validators, b.parse)
	return b
}

// Validate adds a custom validator to the attribute.
func (b *UUIDBuilder) Validate(fn func(uuid.UUID) error) *UUIDBuilder {
	b.desc.Validators = append(b.desc.Validators, func(v any) error {
		id, ok := v.(uuid.UUID)
		if !ok {
			s, sok := v.(string)
			if !sok {
				return fmt.Errorf("attr: expected uuid value for %q, got %T", b.desc.Name, v)
			}
			parsed, err := uuid.Parse(s)
			if err != nil {
				return err
			}
			id = parsed
		}
		return fn(id)
	})
	return b
}

// Comment sets the comment of the attribute.
func (b *UUIDBuilder) Comment(c string) *UUIDBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the apiclient.Attribute interface by returning
// the descriptor of the attribute.
func (b *UUIDBuilder) Descriptor() *Descriptor {
	return b.desc
}

func (b *UUIDBuilder) parse(v any) error {
	switch v := v.(type) {
	case uuid.UUID:
		return nil
	case string:
		_, err := uuid.Parse(v)
		return err
	default:
		return fmt.Errorf("attr: expected uuid value for %q, got %T", b.desc.Name, v)
	}
}

// BytesBuilder is the builder for bytes attributes.
type BytesBuilder struct {
	desc *Descriptor
}

// Required marks the attribute as required.
func (b *BytesBuilder) Required() *BytesBuilder {
	b.desc.Rules = append(b.desc.Rules, RuleRequired)
	return b
}

// MaxLen limits the length of the byte slice.
func (b *BytesBuilder) MaxLen(i int) *BytesBuilder {
	b.desc.Validators = append(b.desc.Validators, func(v any) error {
		buf, ok := v.([]byte)
		if !ok {
			return fmt.Errorf("attr: expected bytes value for %q, got %T", b.desc.Name, v)
		}
		if len(buf) > i {
			return fmt.Errorf("value is greater than the max length %d", i)
		}
		return nil
	})
	return b
}

// Comment sets the comment of the attribute.
func (b *BytesBuilder) Comment(c string) *BytesBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the apiclient.Attribute interface by returning
// the descriptor of the attribute.
func (b *BytesBuilder) Descriptor() *Descriptor {
	return b.desc
}

// JSONBuilder is the builder for attributes holding arbitrary JSON values.
type JSONBuilder struct {
	desc *Descriptor
}

// Required marks the attribute as required.
func (b *JSONBuilder) Required() *JSONBuilder {
	b.desc.Rules = append(b.desc.Rules, RuleRequired)
	return b
}

// Comment sets the comment of the attribute.
func (b *JSONBuilder) Comment(c string) *JSONBuilder {
	b.desc.Comment = c
	return b
}

// Descriptor implements the apiclient.Attribute interface by returning
// the descriptor of the attribute.
func (b *JSONBuilder) Descriptor() *Descriptor {
	return b.desc
}

// stringValidator adapts a typed string validator to the untyped
// validator slot on the descriptor. Absent (nil) values are skipped by
// the validation pass before validators run.
func stringValidator(name string, fn func(string) error) func(any) error {
	return func(v any) error {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("attr: expected string value for %q, got %T", name, v)
		}
		return fn(s)
	}
}

func intValidator(name string, fn func(int64) error) func(any) error {
	return func(v any) error {
		i, err := toInt64(v)
		if err != nil {
			return fmt.Errorf("attr: %q: %w", name, err)
		}
		return fn(i)
	}
}

func floatValidator(name string, fn func(float64) error) func(any) error {
	return func(v any) error {
		f, err := toFloat64(v)
		if err != nil {
			return fmt.Errorf("attr: %q: %w", name, err)
		}
		return fn(f)
	}
}

// toInt64 widens the numeric forms a decoded JSON payload may carry.
// encoding/json decodes every number to float64; a fractional float
// cannot back an int attribute.
func toInt64(v any) (int64, error) {
	switch v := v.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != float64(int64(v)) {
			return 0, fmt.Errorf("expected integer value, got %v", v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("expected integer value, got %T", v)
	}
}

func toFloat64(v any) (float64, error) {
	switch v := v.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", v)
	}
}

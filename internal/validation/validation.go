// Package validation turns struct tag violations into field-level messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Error is a validation failure keyed by the JSON/form field name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// New builds a single-field validation error.
func New(field, message string) *Error {
	return &Error{Fields: map[string]string{field: message}}
}

// Wrap is New with a sentinel cause, so callers can still errors.Is the cause.
func Wrap(cause error, field, message string) error {
	return &wrapped{fields: New(field, message), cause: cause}
}

type wrapped struct {
	fields *Error
	cause  error
}

func (w *wrapped) Error() string { return w.fields.Error() }

func (w *wrapped) Unwrap() []error { return []error{w.fields, w.cause} }

// As extracts the field map from err, if it is a validation error.
func As(err error) (*Error, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

var (
	once     sync.Once
	validate *validator.Validate

	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
	phonePattern  = regexp.MustCompile(`^[+0-9()\-\s]{7,20}$`)
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		// Decimals are checked by sign and magnitude through float64.
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			d, ok := v.Interface().(decimal.Decimal)
			if !ok {
				return nil
			}
			return d.InexactFloat64()
		}, decimal.Decimal{})

		_ = validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
			return digitsPattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
		_ = validate.RegisterValidation("money", func(fl validator.FieldLevel) bool {
			d, ok := decimalField(fl)
			return ok && d.Equal(d.Round(2))
		})
	})
	return validate
}

// decimalField reads the decimal behind fl. The custom type func hands
// validators a float64, so the exact value comes from the parent struct.
func decimalField(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if parent := reflect.Indirect(fl.Parent()); parent.Kind() == reflect.Struct {
		f := parent.FieldByName(fl.StructFieldName())
		for f.Kind() == reflect.Ptr && !f.IsNil() {
			f = f.Elem()
		}
		if f.IsValid() && f.CanInterface() {
			if d, ok := f.Interface().(decimal.Decimal); ok {
				return d, true
			}
		}
	}
	if k := fl.Field().Kind(); k == reflect.Float64 || k == reflect.Float32 {
		return decimal.NewFromFloat(fl.Field().Float()), true
	}
	return decimal.Decimal{}, false
}

// Struct validates s and returns *Error for tag violations.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &Error{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		field := fieldPath(fe)
		if _, exists := out.Fields[field]; !exists {
			out.Fields[field] = message(fe)
		}
	}
	return out
}

// fieldPath drops the top-level struct name: "OrderInput.items[0].quantity" -> "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "numeric", "digits":
		return "must contain digits only"
	case "phone":
		return "must be a valid phone number"
	case "money":
		return "must have at most 2 decimal places"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}

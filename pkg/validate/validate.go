// Package validate runs `validate:"..."` struct-tag rules through
// go-playground/validator and reports failures as a map of JSON field name
// to a human readable message:
//
//	type RegisterRequest struct {
//	    Email    string `json:"email"    validate:"required,email"`
//	    Password string `json:"password" validate:"required,min=6"`
//	    Confirm  string `json:"confirmPassword" validate:"required,eqfield=Password"`
//	}
//
//	errs := validate.Struct(&req) // {"confirmPassword": "The confirmPassword must match password."}
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/hpfoods/hpfoods-api/pkg/apperr"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(fieldName)
	})
	return instance
}

// fieldName reports a field by its json (or form) name.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			break
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// Struct validates v and returns field → message. An empty map means v is valid.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)

	err := engine().Struct(v)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}

	for _, fe := range verrs {
		name := namespaceField(fe)
		if _, seen := errs[name]; !seen {
			errs[name] = message(fe)
		}
	}
	return errs
}

// HasErrors reports whether errs is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// Messages flattens errs into its messages, ordered by field name.
func Messages(errs map[string]string) []string {
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, errs[k])
	}
	return out
}

// Check validates v and returns an apperr validation error, or nil.
func Check(v interface{}) error {
	if errs := Struct(v); HasErrors(errs) {
		return apperr.Validation(Messages(errs)...)
	}
	return nil
}

// namespaceField drops the root struct name, keeping nested paths such as
// "orderDetails[0].quantity".
func namespaceField(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	field := namespaceField(fe)
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "min":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("The %s must contain at least %s item(s).", field, param)
		}
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("The %s must be at least %s.", field, param)
		}
		return fmt.Sprintf("The %s must be at least %s characters.", field, param)
	case "max":
		if isNumber(fe.Kind()) {
			return fmt.Sprintf("The %s may not be greater than %s.", field, param)
		}
		return fmt.Sprintf("The %s may not be greater than %s characters.", field, param)
	case "gt":
		return fmt.Sprintf("The %s must be greater than %s.", field, param)
	case "gte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
	case "eqfield":
		return fmt.Sprintf("The %s must match %s.", field, lowerFirst(param))
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", field)
	case "dive":
		return fmt.Sprintf("The %s contains an invalid item.", field)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}

func isCollection(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array || k == reflect.Map
}

func isNumber(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

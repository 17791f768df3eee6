package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	initOnce sync.Once
	validate *validator.Validate
)

// configure applies tag name and alias settings shared by gin binding and Struct.
func configure(v *validator.Validate) {
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Aliases for common semantics
	v.RegisterAlias("pwd", "min=6")                // password minimum length
	v.RegisterAlias("role", "oneof=DOCENTE ALUNO") // user roles
}

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers alias tags for common validations.
// Safe to call more than once.
func Init() {
	initOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			configure(v)
		}
	})
}

func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		configure(validate)
	})
	return validate
}

// Struct validates s against its `binding` tags outside of a request.
func Struct(s any) error {
	return engine().Struct(s)
}

// Message flattens binding/validation errors into one human-readable line,
// field messages joined by ", " in declaration order.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, io.EOF) {
		return "request body is required"
	}

	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		if ute.Field != "" {
			return ute.Field + " has an invalid type"
		}
		return "invalid json"
	}
	if errors.As(err, &se) {
		return "invalid json"
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, fe.Field()+" "+formatFieldError(fe))
		}
		return strings.Join(parts, ", ")
	}

	return "invalid payload"
}

func formatFieldError(fe validator.FieldError) string {
	tag := fe.Tag()
	param := fe.Param()

	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "oneof", "role":
		if param == "" {
			param = "DOCENTE ALUNO"
		}
		return "must be one of: " + strings.Join(strings.Fields(param), ", ")
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", param)
	case "min", "pwd":
		if tag == "pwd" {
			param = "6"
		}
		switch fe.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return "must contain at least " + param + " item(s)"
		}
		if isNumberKind(fe.Kind()) {
			return "must be at least " + param
		}
		return "must be at least " + param + " characters long"
	case "max":
		switch fe.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map:
			return "must contain at most " + param + " item(s)"
		}
		if isNumberKind(fe.Kind()) {
			return "must be at most " + param
		}
		return "must be at most " + param + " characters long"
	case "unique":
		return "must contain unique items"
	default:
		if param != "" {
			return fmt.Sprintf("failed '%s' with parameter '%s'", tag, param)
		}
		return fmt.Sprintf("failed '%s'", tag)
	}
}

func isNumberKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

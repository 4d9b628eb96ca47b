package shared

import (
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/gogoanime-api/internal/provider"
)

// Global validator instance for reuse
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under the name clients know them by.
	v.RegisterTagNameFunc(fieldLabel)

	if err := v.RegisterValidation("streaming_server", func(fl validator.FieldLevel) bool {
		return provider.StreamingServer(fl.Field().String()).IsValid()
	}); err != nil {
		panic(fmt.Sprintf("registering streaming_server validation: %v", err))
	}

	return v
}

// fieldLabel returns the label tag, falling back to the path or query name
// and finally the Go field name.
func fieldLabel(f reflect.StructField) string {
	for _, tag := range []string{"label", "path", "query"} {
		if name := f.Tag.Get(tag); name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// BindRequest fills the struct pointed to by dst from the request's path and
// query parameters. Fields opt in with `path:"name"` or `query:"name"` tags.
//
// Coercion never fails: absent strings stay empty, integers that are absent
// or unparseable become 0, and booleans are true only for "true" or "1".
func BindRequest(r *http.Request, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind target must be a pointer to a struct, got %T", dst)
	}
	rv = rv.Elem()
	rt := rv.Type()
	query := r.URL.Query()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		var raw string
		switch {
		case field.Tag.Get("path") != "":
			raw = chi.URLParam(r, field.Tag.Get("path"))
		case field.Tag.Get("query") != "":
			raw = query.Get(field.Tag.Get("query"))
		default:
			continue
		}

		if err := setField(rv.Field(i), raw); err != nil {
			return fmt.Errorf("binding field %s: %w", field.Name, err)
		}
	}

	return nil
}

func setField(v reflect.Value, raw string) error {
	switch v.Kind() {
	case reflect.String:
		v.SetString(raw)
	case reflect.Int, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			n = 0
		}
		v.SetInt(n)
	case reflect.Bool:
		v.SetBool(raw == "true" || raw == "1")
	default:
		return fmt.Errorf("unsupported kind %s", v.Kind())
	}
	return nil
}

// ValidateRequest validates the given struct using the validator package.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}

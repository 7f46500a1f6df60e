// Package validation implements schema-driven request validation as Gin
// middleware. A route declares the shape of its body, query, and path
// parameters once; the middleware binds and validates all three before the
// handler runs, collecting every violated field (not just the first) into a
// single Validation error so the caller sees the complete list of problems
// in one round trip.
//
// Field rules are expressed with go-playground/validator struct tags on the
// request DTOs (required, uuid, url, oneof, min/max, datetime, ...). A
// schema-level refinement hook covers cross-field rules such as "at least
// one field must be present" for partial-update bodies; it runs only after
// all per-field checks pass.
//
// Unknown fields are ignored (permissive by default). Successfully bound
// values are stowed in the Gin context so handlers never re-parse input.
package validation

import (
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
)

// Context keys under which bound request shapes are stored.
const (
	ctxKeyBody   = "validated:body"
	ctxKeyQuery  = "validated:query"
	ctxKeyParams = "validated:params"
)

// validate is the shared validator instance. Field names in violation
// messages come from the json/form/uri tag rather than the Go field name so
// callers see the wire-level name they sent.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form", "uri"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// Schema declares the three independently optional request sub-shapes plus
// an optional refinement over the bound body. Each prototype function
// returns a pointer to a fresh DTO; schemas themselves are immutable and
// shared read-only across all requests to the route.
type Schema struct {
	Body   func() any
	Query  func() any
	Params func() any

	// Refine may reject an otherwise-valid body (e.g. an empty patch).
	// It runs only when every per-field check passed.
	Refine func(body any) error
}

// Validate returns middleware enforcing the schema. On any violation it
// records a single apperr.Validation error listing every problem as
// "field: message" pairs joined by ", " and aborts; the handler never runs.
func Validate(s Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var problems []string
		var body any

		if s.Body != nil {
			body = s.Body()
			problems = append(problems, bindBody(c, body)...)
		}
		if s.Query != nil {
			q := s.Query()
			if err := c.ShouldBindQuery(q); err != nil {
				problems = append(problems, "query: invalid query parameters")
			} else {
				problems = append(problems, check(q)...)
				c.Set(ctxKeyQuery, q)
			}
		}
		if s.Params != nil {
			p := s.Params()
			if err := c.ShouldBindUri(p); err != nil {
				problems = append(problems, "params: invalid path parameters")
			} else {
				problems = append(problems, check(p)...)
				c.Set(ctxKeyParams, p)
			}
		}

		// Schema-level refinement only after all per-field checks pass.
		if len(problems) == 0 && s.Refine != nil && body != nil {
			if err := s.Refine(body); err != nil {
				problems = append(problems, err.Error())
			}
		}

		if len(problems) > 0 {
			c.Error(apperr.Validation(strings.Join(problems, ", "))) //nolint:errcheck
			c.Abort()
			return
		}
		if body != nil {
			c.Set(ctxKeyBody, body)
		}
		c.Next()
	}
}

// bindBody decodes the JSON body into dst and validates it. An absent body
// is treated as an empty object so required-field violations are enumerated
// instead of reporting a bare decode failure.
func bindBody(c *gin.Context, dst any) []string {
	err := c.ShouldBindJSON(dst)
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return check(dst)
	default:
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) && ute.Field != "" {
			return []string{ute.Field + ": must be a " + friendlyType(ute.Type)}
		}
		return []string{"body: must be valid JSON"}
	}
}

// check runs struct validation and renders each violation as
// "field: message".
func check(v any) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"invalid request shape"}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldPath(fe)+": "+messageFor(fe))
	}
	return out
}

// fieldPath strips the top-level struct name from the namespace so nested
// violations read like "types[0]" rather than "CreateTourRequest.types[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// messageFor maps a violated rule to a human-readable message.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "number":
		return "must be a number"
	case "datetime":
		return "must be in YYYY-MM-DD format"
	case "min":
		if isCollection(fe.Kind()) {
			return "must contain at least " + fe.Param() + " item(s)"
		}
		return "must be at least " + fe.Param() + " characters"
	case "max":
		if isCollection(fe.Kind()) {
			return "must contain at most " + fe.Param() + " item(s)"
		}
		return "must be less than " + fe.Param() + " characters"
	case "gt":
		if fe.Param() == "0" {
			return "must be positive"
		}
		return "must be greater than " + fe.Param()
	case "gte":
		if fe.Param() == "0" {
			return "must be non-negative"
		}
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}

func isCollection(k reflect.Kind) bool {
	return k == reflect.Slice || k == reflect.Array || k == reflect.Map
}

func friendlyType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.Kind().String()
	}
}

// NonEmptyPatch returns a refinement that rejects a partial-update body in
// which every field is unset. DTOs for patch bodies use pointer (or slice)
// fields so "absent" and "zero" stay distinguishable.
func NonEmptyPatch(msg string) func(body any) error {
	return func(body any) error {
		v := reflect.ValueOf(body)
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return errors.New(msg)
			}
			v = v.Elem()
		}
		for i := 0; i < v.NumField(); i++ {
			switch f := v.Field(i); f.Kind() {
			case reflect.Pointer, reflect.Slice, reflect.Map:
				if !f.IsNil() {
					return nil
				}
			}
		}
		return errors.New(msg)
	}
}

// Body returns the bound body DTO stored by Validate. It returns a fresh
// zero value when the middleware did not run, so handlers need no nil
// checks.
func Body[T any](c *gin.Context) *T { return stored[T](c, ctxKeyBody) }

// Query returns the bound query DTO stored by Validate.
func Query[T any](c *gin.Context) *T { return stored[T](c, ctxKeyQuery) }

// Params returns the bound path-parameter DTO stored by Validate.
func Params[T any](c *gin.Context) *T { return stored[T](c, ctxKeyParams) }

func stored[T any](c *gin.Context, key string) *T {
	if v, ok := c.Get(key); ok {
		if t, ok := v.(*T); ok {
			return t
		}
	}
	return new(T)
}

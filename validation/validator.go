// Package validation checks decoded request bodies against per-field rule strings.
//
// A rule string is a comma separated list of go-playground/validator tags plus three
// markers handled here: "required" (present and not empty), "nullable" (null accepted)
// and "sometimes" (only validated when the key is present).
//
//	rules := validation.Rules{
//	    "name":        "required,string,max=255",
//	    "description": "nullable,string,max=255",
//	    "is_active":   "boolean",
//	}
//	data, err := validation.Validate(body, rules.Relaxed()) // PATCH
package validation

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	tagRequired  = "required"
	tagNullable  = "nullable"
	tagSometimes = "sometimes"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Rules maps an input key to its rule string
type Rules map[string]string

// Relaxed returns a copy where every required field is only checked when present.
// This is the partial-update (PATCH) form of a rule set.
func (r Rules) Relaxed() Rules {
	relaxed := make(Rules, len(r))
	for field, rule := range r {
		tags := splitTags(rule)
		if hasTag(tags, tagRequired) && !hasTag(tags, tagSometimes) {
			rule = tagSometimes + "," + rule
		}
		relaxed[field] = rule
	}
	return relaxed
}

// Error lists every offending field with human readable messages
type Error struct {
	Errors map[string][]string
}

// NewError builds an Error with a single message
func NewError(field, message string) *Error {
	e := &Error{Errors: map[string][]string{}}
	e.Add(field, message)
	return e
}

// Add appends a message for field, skipping duplicates
func (e *Error) Add(field, message string) {
	if e.Errors == nil {
		e.Errors = map[string][]string{}
	}
	for _, existing := range e.Errors[field] {
		if existing == message {
			return
		}
	}
	e.Errors[field] = append(e.Errors[field], message)
}

func (e *Error) Error() string {
	return "The given data was invalid."
}

// GetValidator returns the shared validator with the catalog's custom tags registered
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		mustRegister("string", isString)
		mustRegister("integer", isInteger)
		mustRegister("array", isArray)
		mustRegister("boolean", isBooleanLike)
		mustRegister("in", isIn)
	})
	return validate
}

func mustRegister(tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validator: %v", tag, err))
	}
}

// Validate checks data against rules and returns the validated subset.
// Keys without a rule are dropped. Empty strings are treated as null.
// Every failing field is reported, not just the first one.
func Validate(data map[string]any, rules Rules) (map[string]any, error) {
	v := GetValidator()
	validated := make(map[string]any, len(rules))
	verr := &Error{}

	fields := make([]string, 0, len(rules))
	for field := range rules {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		tags := splitTags(rules[field])
		value, present := data[field]
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			value = nil
		}

		if !present {
			if hasTag(tags, tagRequired) && !hasTag(tags, tagSometimes) {
				verr.Add(field, message(field, tagRequired, ""))
			}
			continue
		}

		if isEmpty(value) {
			if hasTag(tags, tagRequired) {
				verr.Add(field, message(field, tagRequired, ""))
				continue
			}
			if value == nil && hasTag(tags, tagNullable) {
				validated[field] = nil
				continue
			}
		}

		rest := withoutMarkers(tags)
		if len(rest) > 0 {
			if err := v.Var(value, strings.Join(rest, ",")); err != nil {
				if fieldErrs, ok := err.(validator.ValidationErrors); ok {
					for _, fe := range fieldErrs {
						verr.Add(field, message(field, fe.Tag(), fe.Param()))
					}
					continue
				}
				return nil, err
			}
		}
		validated[field] = value
	}

	if len(verr.Errors) > 0 {
		return nil, verr
	}
	return validated, nil
}

func splitTags(rule string) []string {
	parts := strings.Split(rule, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func withoutMarkers(tags []string) []string {
	rest := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == tagRequired || t == tagNullable || t == tagSometimes {
			continue
		}
		rest = append(rest, t)
	}
	return rest
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return false
}

func isString(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String
}

func isArray(fl validator.FieldLevel) bool {
	kind := fl.Field().Kind()
	return kind == reflect.Slice || kind == reflect.Array
}

func isInteger(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		return f == math.Trunc(f) && !math.IsInf(f, 0)
	case reflect.String:
		_, err := strconv.Atoi(strings.TrimSpace(field.String()))
		return err == nil
	}
	return false
}

// isBooleanLike accepts true, false, 1, 0, "1", "0", "true" and "false"
func isBooleanLike(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Bool:
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() == 0 || field.Int() == 1
	case reflect.Float32, reflect.Float64:
		return field.Float() == 0 || field.Float() == 1
	case reflect.String:
		switch field.String() {
		case "0", "1", "true", "false":
			return true
		}
	}
	return false
}

// isIn matches the value's canonical string form against a space separated list
func isIn(fl validator.FieldLevel) bool {
	value, ok := canonicalString(fl.Field())
	if !ok {
		return false
	}
	for _, allowed := range strings.Fields(fl.Param()) {
		if value == allowed {
			return true
		}
	}
	return false
}

func canonicalString(field reflect.Value) (string, bool) {
	switch field.Kind() {
	case reflect.String:
		return field.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(field.Int(), 10), true
	case reflect.Float32, reflect.Float64:
		f := field.Float()
		if f != math.Trunc(f) {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return strconv.FormatInt(int64(f), 10), true
	case reflect.Bool:
		return strconv.FormatBool(field.Bool()), true
	}
	return "", false
}

// Message renders the human readable message of a failed tag
func Message(field, tag, param string) string {
	return message(field, tag, param)
}

func message(field, tag, param string) string {
	attribute := strings.ReplaceAll(field, "_", " ")
	switch tag {
	case tagRequired:
		return fmt.Sprintf("The %s field is required.", attribute)
	case "string":
		return fmt.Sprintf("The %s must be a string.", attribute)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", attribute, param)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", attribute, param)
	case "boolean":
		return fmt.Sprintf("The %s field must be true or false.", attribute)
	case "integer":
		return fmt.Sprintf("The %s must be an integer.", attribute)
	case "array":
		return fmt.Sprintf("The %s must be an array.", attribute)
	case "in", "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attribute)
	case "uuid", "uuid4":
		return fmt.Sprintf("The %s must be a valid UUID.", attribute)
	default:
		return fmt.Sprintf("The %s is invalid.", attribute)
	}
}

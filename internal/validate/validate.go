// Package validate evaluates named, ordered field rule sets against JSON
// request bodies. Rules are data; one evaluator interprets all of them.
package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/fintrack/internal/response"
	"github.com/go-playground/validator/v10"
)

// Rule is one (field, predicate, message) tuple. Tag is a validator/v10 tag
// expression evaluated against the field value.
type Rule struct {
	Field   string
	Tag     string
	Message string
	// Optional rules are skipped when the field is absent or null.
	Optional bool
	// Numeric rules coerce the value to a float64 before evaluation; a value
	// that is not a finite number fails the rule.
	Numeric bool
}

// RuleSet is the ordered list of rules for one endpoint, plus the fields it normalizes.
type RuleSet struct {
	Name  string
	Rules []Rule
	// Trim lists string fields whose surrounding whitespace is removed before evaluation.
	Trim []string
	// Emails lists fields lower-cased and trimmed once all rules pass.
	Emails []string
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Validator evaluates rule sets. It is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("iso8601", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	return &Validator{v: v}
}

// Check trims the set's Trim fields in body, evaluates every rule in order
// and returns all failures. On success the set's Emails fields are normalized.
func (v *Validator) Check(rs RuleSet, body map[string]any) []response.FieldError {
	for _, f := range rs.Trim {
		if s, ok := body[f].(string); ok {
			body[f] = strings.TrimSpace(s)
		}
	}

	var errs []response.FieldError
	for _, rule := range rs.Rules {
		val, present := body[rule.Field]
		if present && val == nil {
			present = false
		}
		if rule.Optional && !present {
			continue
		}
		if !v.passes(rule, val) {
			errs = append(errs, response.FieldError{Field: rule.Field, Message: rule.Message, Value: val})
		}
	}
	if len(errs) > 0 {
		return errs
	}

	for _, f := range rs.Emails {
		if s, ok := body[f].(string); ok {
			body[f] = NormalizeEmail(s)
		}
	}
	return nil
}

func (v *Validator) passes(rule Rule, val any) bool {
	if rule.Numeric {
		n, ok := Number(val)
		if !ok {
			return false
		}
		return v.v.Var(n, rule.Tag) == nil
	}
	s, ok := scalarString(val)
	if !ok {
		return false
	}
	return v.v.Var(s, rule.Tag) == nil
}

// Middleware validates the JSON body against rs before calling next. On
// failure it answers 400 with every failed field and next is not called.
// On success next sees the normalized body.
func (v *Validator) Middleware(rs RuleSet) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := map[string]any{}
			if r.Body != nil {
				dec := json.NewDecoder(r.Body)
				dec.UseNumber()
				if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
					response.Fail(w, http.StatusBadRequest, "invalid JSON")
					return
				}
			}

			if errs := v.Check(rs, body); len(errs) > 0 {
				slog.DebugContext(r.Context(), "validation failed", "rules", rs.Name, "failures", len(errs))
				response.ValidationFailed(w, errs)
				return
			}

			normalized, err := json.Marshal(body)
			if err != nil {
				response.Error(w, r, err)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(normalized))
			r.ContentLength = int64(len(normalized))
			next.ServeHTTP(w, r)
		})
	}
}

// Number converts a decoded JSON value (number or numeric string) to a finite float64.
func Number(val any) (float64, bool) {
	var f float64
	switch n := val.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate parses an ISO-8601 date or date-time. Values without a zone are UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("not an ISO-8601 date")
}

func scalarString(val any) (string, bool) {
	switch s := val.(type) {
	case nil:
		return "", true
	case string:
		return s, true
	case json.Number:
		return s.String(), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(s), true
	default:
		return "", false
	}
}

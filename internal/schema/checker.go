package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"coin-dashboard/internal/domain"

	"github.com/tidwall/gjson"
)

// checker collects issues while reading typed fields out of a gjson document.
type checker struct {
	issues []domain.Issue
}

func (c *checker) addf(path, format string, args ...any) {
	c.issues = append(c.issues, domain.Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (c *checker) err(resource string) error {
	if len(c.issues) == 0 {
		return nil
	}
	return &domain.ValidationError{Resource: resource, Issues: c.issues}
}

// partialErr is err for array payloads whose valid entries are still
// returned. kept is how many entries passed.
func (c *checker) partialErr(resource string, kept int) error {
	if len(c.issues) == 0 {
		return nil
	}
	return &domain.ValidationError{Resource: resource, Issues: c.issues, Partial: kept > 0}
}

func join(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

func index(prefix string, i int) string {
	return prefix + "[" + strconv.Itoa(i) + "]"
}

func typeName(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	case gjson.JSON:
		if r.IsArray() {
			return "array"
		}
		return "object"
	default:
		return "unknown"
	}
}

// field looks up a direct child by name without interpreting gjson path syntax.
func field(obj gjson.Result, name string) gjson.Result {
	var out gjson.Result
	obj.ForEach(func(key, value gjson.Result) bool {
		if key.String() == name {
			out = value
			return false
		}
		return true
	})
	return out
}

func (c *checker) str(obj gjson.Result, prefix, name string) string {
	v := field(obj, name)
	path := join(prefix, name)
	if !v.Exists() {
		c.addf(path, "required")
		return ""
	}
	if v.Type != gjson.String {
		c.addf(path, "expected string, got %s", typeName(v))
		return ""
	}
	return v.Str
}

func (c *checker) urlStr(obj gjson.Result, prefix, name string) string {
	s := c.str(obj, prefix, name)
	if s == "" {
		return s
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		c.addf(join(prefix, name), "invalid url")
	}
	return s
}

func (c *checker) nullableStr(obj gjson.Result, prefix, name string) *string {
	v := field(obj, name)
	path := join(prefix, name)
	switch {
	case !v.Exists():
		c.addf(path, "required")
		return nil
	case v.Type == gjson.Null:
		return nil
	case v.Type != gjson.String:
		c.addf(path, "expected string or null, got %s", typeName(v))
		return nil
	}
	s := v.Str
	return &s
}

func (c *checker) nullableBool(obj gjson.Result, prefix, name string) *bool {
	v := field(obj, name)
	path := join(prefix, name)
	switch {
	case !v.Exists():
		c.addf(path, "required")
		return nil
	case v.Type == gjson.Null:
		return nil
	case v.Type != gjson.True && v.Type != gjson.False:
		c.addf(path, "expected boolean or null, got %s", typeName(v))
		return nil
	}
	b := v.Bool()
	return &b
}

func (c *checker) num(obj gjson.Result, prefix, name string) float64 {
	v := field(obj, name)
	path := join(prefix, name)
	if !v.Exists() {
		c.addf(path, "required")
		return 0
	}
	if v.Type != gjson.Number {
		c.addf(path, "expected number, got %s", typeName(v))
		return 0
	}
	return v.Num
}

func (c *checker) optNum(obj gjson.Result, prefix, name string) float64 {
	v := field(obj, name)
	if !v.Exists() {
		return 0
	}
	if v.Type != gjson.Number {
		c.addf(join(prefix, name), "expected number, got %s", typeName(v))
		return 0
	}
	return v.Num
}

func (c *checker) nullableNum(obj gjson.Result, prefix, name string) *float64 {
	v := field(obj, name)
	path := join(prefix, name)
	switch {
	case !v.Exists():
		c.addf(path, "required")
		return nil
	case v.Type == gjson.Null:
		return nil
	case v.Type != gjson.Number:
		c.addf(path, "expected number or null, got %s", typeName(v))
		return nil
	}
	n := v.Num
	return &n
}

func (c *checker) datetime(obj gjson.Result, prefix, name string) time.Time {
	s := c.str(obj, prefix, name)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		c.addf(join(prefix, name), "invalid datetime %q", s)
		return time.Time{}
	}
	return t
}

// numberMap reads an optional object of currency code → number.
func (c *checker) numberMap(obj gjson.Result, prefix, name string) map[string]float64 {
	out := map[string]float64{}
	v := field(obj, name)
	path := join(prefix, name)
	if !v.Exists() {
		return out
	}
	if !v.IsObject() {
		c.addf(path, "expected object, got %s", typeName(v))
		return out
	}
	v.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			c.addf(join(path, key.String()), "expected number, got %s", typeName(value))
			return true
		}
		out[key.String()] = value.Num
		return true
	})
	return out
}

// extras returns the members of obj whose names are not in known.
func extras(obj gjson.Result, known map[string]struct{}) map[string]json.RawMessage {
	var out map[string]json.RawMessage
	obj.ForEach(func(key, value gjson.Result) bool {
		if _, ok := known[key.String()]; ok {
			return true
		}
		if out == nil {
			out = make(map[string]json.RawMessage)
		}
		out[key.String()] = json.RawMessage(value.Raw)
		return true
	})
	return out
}

func keySet(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// document parses raw into a gjson root, reporting malformed input as a ParseError.
func document(resource string, raw []byte) (gjson.Result, error) {
	if len(raw) == 0 {
		return gjson.Result{}, &domain.ParseError{Resource: resource, Err: errors.New("empty body")}
	}
	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, &domain.ParseError{Resource: resource, Err: errors.New("invalid JSON document")}
	}
	return gjson.ParseBytes(raw), nil
}

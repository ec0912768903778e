package hateoas

import (
	"fmt"
	"reflect"
)

// Policy decides what happens to one field of a resource when it is serialized.
type Policy int

const (
	PolicyUnknown Policy = iota
	PolicyEmit
	PolicySuppress
	PolicyProject
)

func (p Policy) String() string {
	switch p {
	case PolicyEmit:
		return "emit"
	case PolicySuppress:
		return "suppress"
	case PolicyProject:
		return "project"
	default:
		return "unknown"
	}
}

// Rule binds one struct field of R to a Policy.
type Rule[R any] struct {
	field  string
	key    string
	policy Policy
	value  func(R) any
}

// Emit writes the field unchanged under key.
func Emit[R, V any](field, key string, get func(R) V) Rule[R] {
	return newRule(field, key, PolicyEmit, get)
}

// Suppress keeps the field out of the output regardless of its value.
func Suppress[R any](field string) Rule[R] {
	return Rule[R]{field: field, policy: PolicySuppress}
}

// Project writes a value derived from the resource under key.
func Project[R, V any](field, key string, fn func(R) V) Rule[R] {
	return newRule(field, key, PolicyProject, fn)
}

func newRule[R, V any](field, key string, policy Policy, fn func(R) V) Rule[R] {
	rule := Rule[R]{field: field, key: key, policy: policy}
	if fn != nil {
		rule.value = func(r R) any { return fn(r) }
	}
	return rule
}

// Projection is the serialization policy of a resource type. Every struct field
// of R has exactly one rule; a field added to R without a rule makes
// NewProjection fail.
type Projection[R any] struct {
	resource string
	policies map[string]Policy
	emitted  []Rule[R]
}

func NewProjection[R any](rules ...Rule[R]) (*Projection[R], error) {
	t := reflect.TypeFor[R]()
	resource := t.String()

	if t.Kind() != reflect.Struct {
		return nil, ConstructionError{Resource: resource, Reason: "projection target must be a struct"}
	}

	p := &Projection[R]{
		resource: resource,
		policies: make(map[string]Policy, t.NumField()),
	}

	declared := make(map[string]bool, t.NumField())
	for i := range t.NumField() {
		declared[t.Field(i).Name] = true
	}

	keys := make(map[string]string)
	for _, rule := range rules {
		if !declared[rule.field] {
			return nil, ConstructionError{Resource: resource, Field: rule.field, Reason: "no such field"}
		}
		if _, dup := p.policies[rule.field]; dup {
			return nil, ConstructionError{Resource: resource, Field: rule.field, Reason: "policy declared twice"}
		}

		switch rule.policy {
		case PolicySuppress:
		case PolicyEmit, PolicyProject:
			if rule.key == "" {
				return nil, ConstructionError{Resource: resource, Field: rule.field, Reason: "empty output key"}
			}
			if rule.key == LinksKey {
				return nil, ConstructionError{Resource: resource, Field: rule.field, Reason: fmt.Sprintf("output key %q is reserved", LinksKey)}
			}
			if other, dup := keys[rule.key]; dup {
				return nil, ConstructionError{Resource: resource, Field: rule.field, Reason: fmt.Sprintf("output key %q already used by %s", rule.key, other)}
			}
			if rule.value == nil {
				return nil, ConstructionError{Resource: resource, Field: rule.field, Reason: "missing accessor"}
			}
			keys[rule.key] = rule.field
			p.emitted = append(p.emitted, rule)
		default:
			return nil, ConstructionError{Resource: resource, Field: rule.field, Reason: "unknown policy"}
		}

		p.policies[rule.field] = rule.policy
	}

	for i := range t.NumField() {
		name := t.Field(i).Name
		if _, ok := p.policies[name]; !ok {
			return nil, ConstructionError{Resource: resource, Field: name, Reason: "no policy declared"}
		}
	}

	return p, nil
}

// MustProjection is like NewProjection but panics on error.
// Intended for package-level projection tables.
func MustProjection[R any](rules ...Rule[R]) *Projection[R] {
	p, err := NewProjection(rules...)
	if err != nil {
		panic(err)
	}
	return p
}

// Project serializes r into a Record in rule order. Suppressed fields are absent.
func (p *Projection[R]) Project(r R) Record {
	record := make(Record, 0, len(p.emitted))
	for _, rule := range p.emitted {
		record = append(record, KV{Key: rule.key, Value: rule.value(r)})
	}
	return record
}

func (p *Projection[R]) Policy(field string) Policy {
	return p.policies[field]
}

func (p *Projection[R]) Keys() []string {
	keys := make([]string, 0, len(p.emitted))
	for _, rule := range p.emitted {
		keys = append(keys, rule.key)
	}
	return keys
}

func (p *Projection[R]) Resource() string {
	return p.resource
}

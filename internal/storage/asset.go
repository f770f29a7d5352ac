package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	"github.com/pixil98/go-errors"
)

// Asset ids are lowercase slugs so they can double as card and node refs
// typed at a prompt.
var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

type ValidatingSpec interface {
	Validate() error
}

// Asset is the on-disk envelope around every card, board and scenario.
type Asset[T ValidatingSpec] struct {
	Version uint   `json:"version"`
	ID      string `json:"id"`
	Spec    T      `json:"spec"`
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if a.ID == "" {
		el.Add(fmt.Errorf("id must be set"))
	} else if !idPattern.MatchString(a.ID) {
		el.Add(fmt.Errorf("id %q must be lowercase letters, digits and hyphens", a.ID))
	}

	if isNil(a.Spec) {
		el.Add(fmt.Errorf("spec must be set"))
	} else {
		el.Add(a.Spec.Validate())
	}

	return el.Err()
}

// Ref names another asset by id and is resolved against a store after
// loading.
type Ref[T ValidatingSpec] struct {
	key string
	val T
}

func NewRef[T ValidatingSpec](key string) Ref[T] {
	return Ref[T]{key: key}
}

func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &r.key)
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.key)
}

func (r Ref[T]) Validate() error {
	if r.key == "" {
		return fmt.Errorf("%s reference is required", typeName[T]())
	}
	return nil
}

// Resolve looks the key up in st.
func (r *Ref[T]) Resolve(st Storer[T]) error {
	r.val = st.Get(r.key)
	if isNil(r.val) {
		return fmt.Errorf("%s %q not found", typeName[T](), r.key)
	}
	return nil
}

func (r Ref[T]) Key() string {
	return r.key
}

// Value returns the resolved asset, or the zero value before Resolve.
func (r Ref[T]) Value() T {
	return r.val
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

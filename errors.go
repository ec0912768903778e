package hateoas

import "fmt"

// ConstructionError reports a resource or projection that cannot be built:
// a missing identity field, or a projection table that is not total.
type ConstructionError struct {
	Resource string
	Field    string
	Reason   string
}

func (e ConstructionError) Error() string {
	switch {
	case e.Resource == "" && e.Field == "":
		return fmt.Sprintf("construction failed: %s", e.Reason)
	case e.Field == "":
		return fmt.Sprintf("%s: %s", e.Resource, e.Reason)
	default:
		return fmt.Sprintf("%s.%s: %s", e.Resource, e.Field, e.Reason)
	}
}

// Is enables errors.Is matching on ConstructionError.
func (e ConstructionError) Is(target error) bool {
	_, ok := target.(ConstructionError)
	if ok {
		return true
	}
	_, ok = target.(*ConstructionError)
	return ok
}

// EncodingError wraps a failure of the underlying JSON encoder.
type EncodingError struct {
	Err error
}

func (e EncodingError) Error() string {
	if e.Err == nil {
		return "encoding failed"
	}
	return fmt.Sprintf("encoding failed: %v", e.Err)
}

func (e EncodingError) Unwrap() error {
	return e.Err
}

// Is enables errors.Is matching on EncodingError.
func (e EncodingError) Is(target error) bool {
	_, ok := target.(EncodingError)
	if ok {
		return true
	}
	_, ok = target.(*EncodingError)
	return ok
}

var (
	ErrConstruction = ConstructionError{}
	ErrEncoding     = EncodingError{}
)

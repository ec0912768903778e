package utils

import (
	"bytes"

	"github.com/goccy/go-json"
)

type KV[T any] struct {
	Key   string
	Value T
}

// OrderedKV is a JSON object whose keys are written in slice order.
type OrderedKV[T any] []KV[T]

func (om OrderedKV[T]) Keys() []string {
	keys := make([]string, 0, len(om))
	for _, kv := range om {
		keys = append(keys, kv.Key)
	}
	return keys
}

func (om OrderedKV[T]) Get(key string) (T, bool) {
	for _, kv := range om {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	var zero T
	return zero, false
}

func (om OrderedKV[T]) Has(key string) bool {
	_, ok := om.Get(key)
	return ok
}

// With returns a copy of om with key appended. om itself is left untouched.
func (om OrderedKV[T]) With(key string, value T) OrderedKV[T] {
	out := make(OrderedKV[T], len(om), len(om)+1)
	copy(out, om)
	return append(out, KV[T]{Key: key, Value: value})
}

func (om OrderedKV[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range om {
		if i > 0 {
			buf.WriteByte(',')
		}

		keyBytes, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valueBytes, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

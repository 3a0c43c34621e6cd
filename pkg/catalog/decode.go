package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/wronai/repodash/pkg/errors"
)

// Shape describes which accepted document form a body had.
type Shape int

const (
	// ShapeArray is a bare array of records.
	ShapeArray Shape = iota
	// ShapeObject is an object whose "repositories" field is an array.
	ShapeObject
	// ShapeObjectWithoutField is an object with no "repositories" field.
	// It is accepted as an empty catalog.
	ShapeObjectWithoutField
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeObject:
		return "object"
	case ShapeObjectWithoutField:
		return "object without repositories"
	default:
		return "unknown"
	}
}

// Decode parses a catalog body. It accepts a bare array of records or an
// object with a "repositories" array; an explicitly empty array is a valid,
// empty catalog. A "repositories" field that is not an array, a body that is
// neither an array nor an object, and invalid JSON all fail with
// FORMAT_INVALID. Null entries inside the array are skipped.
func Decode(body []byte) (Catalog, Shape, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, 0, errors.New(errors.ErrCodeFormatInvalid, "body is not valid JSON")
	}

	switch trimmed[0] {
	case '[':
		c, err := decodeRecords(trimmed)
		return c, ShapeArray, err
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return nil, 0, errors.Wrap(errors.ErrCodeFormatInvalid, err, "decode catalog object")
		}
		field, ok := obj["repositories"]
		if !ok {
			return Catalog{}, ShapeObjectWithoutField, nil
		}
		field = bytes.TrimSpace(field)
		if len(field) == 0 || field[0] != '[' {
			return nil, 0, errors.New(errors.ErrCodeFormatInvalid, "repositories field is not an array")
		}
		c, err := decodeRecords(field)
		return c, ShapeObject, err
	default:
		return nil, 0, errors.New(errors.ErrCodeFormatInvalid, "expected an array or an object, got %s", jsonKind(trimmed[0]))
	}
}

func decodeRecords(data []byte) (Catalog, error) {
	var records []*Repository
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFormatInvalid, err, "decode repository records")
	}
	c := make(Catalog, 0, len(records))
	for _, r := range records {
		if r != nil {
			c = append(c, *r)
		}
	}
	return c, nil
}

func jsonKind(b byte) string {
	switch {
	case b == '"':
		return "string"
	case b == 'n':
		return "null"
	case b == 't' || b == 'f':
		return "boolean"
	default:
		return "number"
	}
}

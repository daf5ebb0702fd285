package orderedjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrTrailingData is returned when input continues after the top-level value.
var ErrTrailingData = errors.New("unexpected data after top-level value")

// Unmarshal decodes a single JSON document. Object members keep their source
// order; a repeated key keeps its first position and takes the last value.
func Unmarshal(data []byte) (*Value, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a single JSON document from r. Anything other than whitespace
// after the document is an error.
func Decode(r io.Reader) (*Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("offset %d: %w", dec.InputOffset(), ErrTrailingData)
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("offset %d: unexpected delimiter %q", dec.InputOffset(), t)
		}
	case string:
		return NewString(t), nil
	case json.Number:
		return NewNumber(t), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return &Value{}, nil
	default:
		return nil, fmt.Errorf("offset %d: unexpected token %v", dec.InputOffset(), tok)
	}
}

func decodeObject(dec *json.Decoder) (*Value, error) {
	obj := NewObject()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("offset %d: object key is not a string", dec.InputOffset())
		}

		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
	}

	// closing '}'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) (*Value, error) {
	arr := NewArray()
	for dec.More() {
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr.items = append(arr.items, val)
	}

	// closing ']'
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

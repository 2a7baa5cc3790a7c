package encode

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Schema is the version of the msgpack stream layout. Increment it when
// Stream, Record or Operand change shape.
const Schema uint16 = 1

// ErrSchema is returned by Read for a stream written with another schema.
var ErrSchema = errors.New("encode: schema mismatch")

// Stream is the msgpack payload handed to the graph builder.
type Stream struct {
	Schema  uint16   `msgpack:"schema"`
	Module  string   `msgpack:"module"`
	Records []Record `msgpack:"records"`
}

// Write encodes the records of module to w.
func Write(w io.Writer, module string, recs []Record) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(&Stream{Schema: Schema, Module: module, Records: recs})
}

// Read decodes a stream written by Write.
func Read(r io.Reader) (*Stream, error) {
	var s Stream
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if s.Schema != Schema {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, s.Schema, Schema)
	}
	return &s, nil
}

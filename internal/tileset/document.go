package tileset

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// NumberFormat controls how Number nodes are rendered.
type NumberFormat int

const (
	// Shortest decimal that round-trips to the same float64, no exponent.
	ShortestNumber NumberFormat = iota

	// Six digits after the point, the rendering of older C++ writers.
	FixedSixDecimals
)

func (f NumberFormat) String() string {
	switch f {
	case ShortestNumber:
		return "SHORTEST"
	case FixedSixDecimals:
		return "FIXED6"
	}
	return ""
}

func ParseNumberFormat(value string) (NumberFormat, error) {
	switch strings.Trim(strings.ToUpper(value), " ") {
	case "", "SHORTEST":
		return ShortestNumber, nil
	case "FIXED6":
		return FixedSixDecimals, nil
	}
	return ShortestNumber, fmt.Errorf("unknown number format %q, expected SHORTEST or FIXED6", value)
}

// Node is an element of a JSON document. Members of an Object keep the order
// they were appended in.
type Node interface {
	encode(buf *bytes.Buffer, format NumberFormat) error
}

type Member struct {
	Key   string
	Value Node
}

type Object []Member

type Array []Node

type Number float64

type String string

// Literal is written verbatim and must already be a valid JSON token.
type Literal string

// Numbers wraps values into an Array of Number nodes.
func Numbers(values ...float64) Array {
	array := make(Array, len(values))
	for i, v := range values {
		array[i] = Number(v)
	}
	return array
}

// With returns the object extended by one member.
func (o Object) With(key string, value Node) Object {
	return append(o, Member{Key: key, Value: value})
}

func (o Object) encode(buf *bytes.Buffer, format NumberFormat) error {
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := String(m.Key).encode(buf, format); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := m.Value.encode(buf, format); err != nil {
			return fmt.Errorf("%s: %w", m.Key, err)
		}
	}
	buf.WriteByte('}')
	return nil
}

func (a Array) encode(buf *bytes.Buffer, format NumberFormat) error {
	buf.WriteByte('[')
	for i, n := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := n.encode(buf, format); err != nil {
			return fmt.Errorf("[%d]: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func (n Number) encode(buf *bytes.Buffer, format NumberFormat) error {
	v := float64(n)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %v", ErrDegenerateGeometry, v)
	}

	d := decimal.NewFromFloat(v)
	if format == FixedSixDecimals {
		buf.WriteString(d.StringFixed(6))
	} else {
		buf.WriteString(d.String())
	}
	return nil
}

// Strings are written verbatim apart from JSON quoting, & < and > included.
func (s String) encode(buf *bytes.Buffer, _ NumberFormat) error {
	quoted, err := json.MarshalWithOption(string(s), json.DisableHTMLEscape())
	if err != nil {
		return err
	}
	buf.Write(quoted)
	return nil
}

func (l Literal) encode(buf *bytes.Buffer, _ NumberFormat) error {
	buf.WriteString(string(l))
	return nil
}

// Marshal renders the node. With indent set the output is tab indented, the
// layout tileset.json files are usually shipped with.
func Marshal(n Node, format NumberFormat, indent bool) ([]byte, error) {
	var compact bytes.Buffer
	if err := n.encode(&compact, format); err != nil {
		return nil, err
	}
	if !indent {
		return compact.Bytes(), nil
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "\t"); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

package lang

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
)

// Metadata maps a field name to its ordered values, e.g. several artists of
// one track. Field names are case-sensitive.
type Metadata map[string][]string

// Values returns the values of a field. It returns nil for an absent field.
func (m Metadata) Values(name string) []string {
	return m[name]
}

// Clone returns a deep copy of the metadata.
func (m Metadata) Clone() Metadata {
	if m == nil {
		return nil
	}

	c := make(Metadata, len(m))
	for k, v := range m {
		c[k] = slices.Clone(v)
	}

	return c
}

// Fields returns the field names in sorted order.
func (m Metadata) Fields() []string {
	return slices.Sorted(maps.Keys(m))
}

// DecodeMetadata reads a YAML (or JSON) mapping of field names to scalars or
// lists of scalars.
//
//	title: Song 2
//	artist: [Blur]
//	tracknumber: 2
func DecodeMetadata(r io.Reader) (Metadata, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "metadata"))
	}

	var m Metadata
	if err := m.UnmarshalYAML(data); err != nil {
		return nil, err
	}

	return m, nil
}

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (m *Metadata) UnmarshalYAML(data []byte) error {
	var raw yaml.MapSlice

	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.UseOrderedMap())
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return ErrDecodeMetadata.Wrap(err)
	}

	meta := make(Metadata, len(raw))

	for _, item := range raw {
		name := fmt.Sprint(item.Key)

		values, err := metadataValues(item.Value)
		if err != nil {
			return ErrDecodeMetadata.Wrap(err).With(slog.String("field", name))
		}

		meta[name] = values
	}

	*m = meta

	return nil
}

func metadataValues(v any) ([]string, error) {
	if list, ok := v.([]any); ok {
		values := make([]string, 0, len(list))

		for _, item := range list {
			s, err := metadataScalar(item)
			if err != nil {
				return nil, err
			}

			values = append(values, s)
		}

		return values, nil
	}

	if v == nil {
		return nil, nil
	}

	s, err := metadataScalar(v)
	if err != nil {
		return nil, err
	}

	return []string{s}, nil
}

func metadataScalar(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil

	case bool:
		return strconv.FormatBool(t), nil

	case int:
		return strconv.Itoa(t), nil

	case int64:
		return strconv.FormatInt(t, 10), nil

	case uint64:
		return strconv.FormatUint(t, 10), nil

	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil

	default:
		return "", fmt.Errorf("unsupported value of type %T", v)
	}
}

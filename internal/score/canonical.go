package score

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrFormat indicates that serialized data is not a valid score mapping.
var ErrFormat = errors.New("invalid score mapping")

// Marshal produces the canonical JSON form of s.
//
// Differences from json.Marshal:
//  1. Object keys sorted by UTF-16 code units (not UTF-8 bytes)
//  2. No HTML escaping (< > & are NOT escaped)
//  3. U+2028 and U+2029 are written literally
//
// A nil Scores marshals as "{}".
func Marshal(s Scores) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range s.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		buf.WriteString(strconv.FormatInt(s[k], 10))
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Unmarshal parses a canonical (or any well-formed) JSON object of integer
// scores. Values must be integer literals that fit in int64; null, floats,
// quoted numbers and nested values are rejected with ErrFormat.
func Unmarshal(data []byte) (Scores, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: expected object, got null", ErrFormat)
	}

	s := make(Scores, len(raw))
	for k, v := range raw {
		n, err := strconv.ParseInt(string(bytes.TrimSpace(v)), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: score for %q is not a 64-bit integer: %s", ErrFormat, k, v)
		}
		s[k] = n
	}
	return s, nil
}

// marshalCanonicalString encodes s as a JSON string without HTML escaping.
// Only control characters, backslash and quote are escaped.
func marshalCanonicalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline.
	result := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return unescapeLineSeparators(result), nil
}

// unescapeLineSeparators rewrites the \u2028 and \u2029 escapes emitted by
// encoding/json as literal characters. An escape preceded by an odd run of
// backslashes is literal text (e.g. `\\u2028`) and is left untouched.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			out = append(out, data[i])
			continue
		}
		if i+5 < len(data) && data[i+1] == 'u' && data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' {
			switch data[i+5] {
			case '8':
				out = append(out, "\u2028"...)
				i += 5
				continue
			case '9':
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		// Copy the escape pair verbatim so an escaped backslash is never
		// mistaken for the start of a \u sequence.
		out = append(out, data[i])
		if i+1 < len(data) {
			out = append(out, data[i+1])
			i++
		}
	}
	return out
}

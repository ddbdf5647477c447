package f1

import (
	"bytes"
	"encoding/json"
	"math"
	"sort"
	"strings"
)

// Extra keeps the JSON members a record carries beyond its typed fields so
// they can be served back unchanged.
type Extra map[string]json.RawMessage

func decodeMembers(data []byte) (map[string]json.RawMessage, error) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// extraMembers drops the typed fields (matched case-insensitively, like
// encoding/json does) from members.
func extraMembers(members map[string]json.RawMessage, known ...string) Extra {
	var extra Extra
	for name, raw := range members {
		if isKnown(name, known) {
			continue
		}
		if extra == nil {
			extra = make(Extra)
		}
		extra[name] = raw
	}
	return extra
}

func isKnown(name string, known []string) bool {
	for _, k := range known {
		if strings.EqualFold(name, k) {
			return true
		}
	}
	return false
}

// encodeWithExtra marshals typed and appends every extra member it does not
// already define, in name order, so the typed fields always lead.
func encodeWithExtra(typed any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(typed)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	defined, err := decodeMembers(data)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(extra))
	for name := range extra {
		if _, ok := defined[name]; !ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return data, nil
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.Write(data[:len(data)-1])
	for i, name := range names {
		if len(defined) > 0 || i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := json.Compact(&buf, extra[name]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// member looks key up exactly, then case-insensitively.
func member(members map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	if raw, ok := members[key]; ok {
		return raw, true
	}
	for name, raw := range members {
		if strings.EqualFold(name, key) {
			return raw, true
		}
	}
	return nil, false
}

// memberString returns the first non-empty member among keys rendered as a
// string. Numbers and booleans keep their literal text.
func memberString(members map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := member(members, key)
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s != "" {
				return s
			}
			continue
		}
		literal := strings.TrimSpace(string(raw))
		if literal != "" && literal != "null" && literal != "false" && literal != "0" && literal[0] != '{' && literal[0] != '[' {
			return literal
		}
	}
	return ""
}

// memberNumber reads a numeric member that may also be encoded as a string.
func memberNumber(members map[string]json.RawMessage, key string) (float64, bool) {
	raw, ok := member(members, key)
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return 0, false
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}
	return ParseNumber(s)
}

// memberFinite is memberNumber restricted to finite values; anything else
// reads as absent.
func memberFinite(members map[string]json.RawMessage, key string) (float64, bool) {
	n, ok := memberNumber(members, key)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

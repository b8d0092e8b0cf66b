package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Encode writes the snapshot as a JSON object keyed by decimal day
// strings, in ascending day order.
func Encode(s Snapshot) ([]byte, error) {
	days := make([]int, 0, len(s))
	for day := range s {
		days = append(days, day)
	}
	sort.Ints(days)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, day := range days {
		if i > 0 {
			buf.WriteByte(',')
		}
		tasks := s[day]
		if tasks == nil {
			tasks = []Task{}
		}
		val, err := json.Marshal(tasks)
		if err != nil {
			return nil, fmt.Errorf("encode day %d: %w", day, err)
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(day)))
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode parses a snapshot written by Encode. Empty input and JSON null
// decode to an empty snapshot; keys that are not canonical days 1-31
// ("5", never "05" or "+5") are skipped.
func Decode(data []byte) (Snapshot, error) {
	out := Snapshot{}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	var raw map[string][]Task
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	for key, tasks := range raw {
		day, err := strconv.Atoi(key)
		if err != nil || strconv.Itoa(day) != key || checkDay(day) != nil {
			continue
		}
		if tasks == nil {
			tasks = []Task{}
		}
		out[day] = tasks
	}
	return out, nil
}

package trace

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/specbox/pkg/boxstat"
)

// Column is the x or y data of a trace: either box statistics or
// positions.
type Column struct {
	Stats  []boxstat.Raw
	Values []any
}

// IsStats reports whether the column carries box statistics.
func (c Column) IsStats() bool {
	return len(c.Stats) > 0
}

// IsZero reports whether the column is empty.
func (c Column) IsZero() bool {
	return len(c.Stats) == 0 && len(c.Values) == 0
}

// Len returns the number of entries.
func (c Column) Len() int {
	if c.IsStats() {
		return len(c.Stats)
	}
	return len(c.Values)
}

// UnmarshalJSON decodes an array of statistic objects or of positions.
func (c *Column) UnmarshalJSON(b []byte) error {
	*c = Column{}
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	if isObjectArray(items) {
		return json.Unmarshal(b, &c.Stats)
	}
	return json.Unmarshal(b, &c.Values)
}

// MarshalJSON encodes whichever form the column holds.
func (c Column) MarshalJSON() ([]byte, error) {
	if c.IsStats() {
		return json.Marshal(c.Stats)
	}
	if c.Values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Values)
}

func isObjectArray(items []json.RawMessage) bool {
	for _, it := range items {
		it = bytes.TrimSpace(it)
		if len(it) == 0 || bytes.Equal(it, []byte("null")) {
			continue
		}
		return it[0] == '{'
	}
	return false
}

package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// lenientNumber decodes a JSON number, a numeric string such as "200", "87,5" or
// "200 kcal", or null. Strings that hold no number decode to 0.
type lenientNumber float64

func (n *lenientNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = lenientNumber(parseNumericString(s))
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = lenientNumber(f)
	return nil
}

func parseNumericString(s string) float64 {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "kcal"))
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

package lessonplan

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt accepts a session value however the form sends it: a JSON number,
// a numeric string, or garbage. Non-numeric and negative values coerce to
// zero instead of failing the request.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			*f = 0
			return nil
		}
		*f = FlexInt(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil || n < 0 {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(f))
}

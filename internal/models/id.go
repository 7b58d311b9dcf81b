package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is a request-side row id. JSON clients may send it as a number or as a
// numeric string; null and "" decode to 0, which handlers treat as missing.
type ID int64

func (id *ID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*id = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
		if s == "" {
			*id = 0
			return nil
		}
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %s", string(b))
	}
	*id = ID(n)
	return nil
}

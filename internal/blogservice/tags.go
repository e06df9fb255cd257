package blogservice

import (
	"encoding/json"
	"errors"
	"strings"
)

// Tags accepts either a JSON array of strings or a single comma separated string.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = SplitTags(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return errors.New("tags must be a string or an array of strings")
	}

	*t = list
	return nil
}

// SplitTags splits a comma separated list, trimming every entry and dropping empty ones.
func SplitTags(s string) Tags {
	tags := Tags{}
	for _, tag := range strings.Split(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// normalize trims every entry. Entries of an array are never split or dropped.
func (t Tags) normalize() []string {
	tags := make([]string, len(t))
	for i, tag := range t {
		tags[i] = strings.TrimSpace(tag)
	}
	return tags
}

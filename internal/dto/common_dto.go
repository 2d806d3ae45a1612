package dto

import (
	"encoding/json"
	"strings"
)

// StringOrList accepts either a JSON array of strings or a single
// comma-separated string, the two shapes clients send for tags, skills
// and interests.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = trimmed(list)
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	if single == "" {
		*s = StringOrList{}
		return nil
	}
	*s = trimmed(strings.Split(single, ","))
	return nil
}

func trimmed(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

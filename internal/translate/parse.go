package translate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseSegments parses engine output into ordered segment pairs.
// Engines are asked for a bare JSON array, but models occasionally wrap the
// array in an object or surround it with prose, so parsing is tolerant:
// a bare array, then any array-valued field of a wrapping object, then the
// outermost [...] slice of the raw text.
func parseSegments(content string) ([]SegmentPair, error) {
	content = strings.TrimSpace(content)

	var pairs []SegmentPair
	if err := json.Unmarshal([]byte(content), &pairs); err != nil {
		pairs = nil

		var wrapped map[string]json.RawMessage
		if err2 := json.Unmarshal([]byte(content), &wrapped); err2 == nil {
			for _, v := range wrapped {
				var candidate []SegmentPair
				if json.Unmarshal(v, &candidate) == nil && len(candidate) > 0 {
					pairs = candidate
					break
				}
			}
		}

		if pairs == nil {
			start := strings.Index(content, "[")
			end := strings.LastIndex(content, "]")
			if start >= 0 && end > start {
				var candidate []SegmentPair
				if json.Unmarshal([]byte(content[start:end+1]), &candidate) == nil {
					pairs = candidate
				}
			}
		}
	}

	if len(pairs) == 0 {
		return nil, fmt.Errorf("no segment pairs in engine response")
	}

	// Every pair carries both languages; a partial pair means the model
	// broke the schema and the whole response is rejected.
	for i, p := range pairs {
		if strings.TrimSpace(p.Arabic) == "" || strings.TrimSpace(p.English) == "" {
			return nil, fmt.Errorf("segment %d is missing its arabic or english field", i)
		}
	}

	return pairs, nil
}

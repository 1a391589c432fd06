package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// jsonDelimiter brackets JSON payloads embedded in free-form model
// output. The model is asked to wrap its structured answer between two
// occurrences of this marker.
const jsonDelimiter = "#+#"

// ExtractDelimitedJSON returns the first JSON object found between two
// occurrences of the delimiter marker. It reports failure instead of
// panicking so callers can apply their default-substitution policy
// uniformly.
func ExtractDelimitedJSON(text string) ([]byte, error) {
	first := strings.Index(text, jsonDelimiter)
	if first < 0 {
		return nil, errors.New("no opening delimiter in model output")
	}
	rest := text[first+len(jsonDelimiter):]
	second := strings.Index(rest, jsonDelimiter)
	if second < 0 {
		return nil, errors.New("no closing delimiter in model output")
	}

	payload := strings.TrimSpace(rest[:second])
	if payload == "" {
		return nil, errors.New("empty delimited block")
	}
	if !json.Valid([]byte(payload)) {
		return nil, fmt.Errorf("delimited block is not valid JSON: %.80s", payload)
	}
	return []byte(payload), nil
}

package generation

import (
	"bytes"
	"encoding/json"
)

// NormalizeResponse turns a completion payload into the text the extractor
// scans:
//
//   - an array whose first element has a non-empty "generated_text" string
//     yields that string
//   - a JSON string yields the decoded string
//   - a body that is not JSON is returned verbatim
//   - any other JSON is returned in compact form
func NormalizeResponse(payload []byte) string {
	var decoded any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return string(payload)
	}

	switch v := decoded.(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if first, ok := v[0].(map[string]any); ok {
				if text, ok := first["generated_text"].(string); ok && text != "" {
					return text
				}
			}
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, payload); err != nil {
		return string(payload)
	}
	return compact.String()
}

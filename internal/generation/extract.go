package generation

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/phrazzld/studybuddy-api/internal/domain"
)

// arrayPattern matches from a '[' followed by optional whitespace and '{'
// to the first '}' that is followed by optional whitespace and ']'.
var arrayPattern = regexp.MustCompile(`\[\s*\{[\s\S]*?\}\s*\]`)

// FindJSONArray returns the first substring of text shaped like a JSON
// array of objects. It does not check that the substring parses.
func FindJSONArray(text string) (string, bool) {
	loc := arrayPattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return text[loc[0]:loc[1]], true
}

// ExtractJSONArray locates the first JSON array of objects in text and
// parses it. It reports false when there is no such substring or it is not
// valid JSON. Only the first candidate is considered.
func ExtractJSONArray(text string) ([]json.RawMessage, bool) {
	island, ok := FindJSONArray(text)
	if !ok {
		return nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(island), &elems); err != nil {
		return nil, false
	}
	return elems, true
}

// draftsFromElements reads question and answer from at most the first
// MaxCards elements and keeps the complete pairs in order. Missing fields,
// non-string fields and non-object elements count as empty.
func draftsFromElements(elems []json.RawMessage) []domain.CardDraft {
	if len(elems) > MaxCards {
		elems = elems[:MaxCards]
	}

	drafts := make([]domain.CardDraft, 0, len(elems))
	for _, elem := range elems {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(elem, &fields); err != nil {
			continue
		}
		draft := domain.CardDraft{
			Question: stringField(fields, "question"),
			Answer:   stringField(fields, "answer"),
		}.Normalize()
		if draft.Question == "" || draft.Answer == "" {
			continue
		}
		drafts = append(drafts, draft)
	}
	return drafts
}

func stringField(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

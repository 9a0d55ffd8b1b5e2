package generation

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/studybuddy-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONArray(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		wantOK bool
		wantN  int
	}{
		{
			name:   "surrounded by prose",
			text:   `Here are your cards: [{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}] Hope that helps!`,
			wantOK: true,
			wantN:  2,
		},
		{
			name:   "bare array",
			text:   `[{"question":"Q","answer":"A"}]`,
			wantOK: true,
			wantN:  1,
		},
		{
			name:   "whitespace between brackets",
			text:   "```json\n[\n  {\"question\": \"Q\", \"answer\": \"A\"}\n]\n```",
			wantOK: true,
			wantN:  1,
		},
		{
			name:   "first array wins",
			text:   `[{"question":"Q1","answer":"A1"}] and later [{"question":"Q2","answer":"A2"},{"question":"Q3","answer":"A3"}]`,
			wantOK: true,
			wantN:  1,
		},
		{
			name:   "nested braces inside object",
			text:   `[{"question":"Q","answer":"A","meta":{"level":1}}]`,
			wantOK: true,
			wantN:  1,
		},
		{
			name:   "no array",
			text:   "I cannot help with that.",
			wantOK: false,
		},
		{
			name:   "array of strings only",
			text:   `["a", "b"]`,
			wantOK: false,
		},
		{
			name:   "prose between bracket and brace",
			text:   `[note: {"question":"Q","answer":"A"}]`,
			wantOK: false,
		},
		{
			name:   "truncated array",
			text:   `[{"question":"Q1","answer":"A1"},{"question":"Q2"`,
			wantOK: false,
		},
		{
			name:   "trailing comma",
			text:   `[{"question":"Q","answer":"A"},]`,
			wantOK: false,
		},
		{
			name:   "closing bracket inside a string",
			text:   `[{"question":"What is } ]?","answer":"A"}]`,
			wantOK: false,
		},
		{
			name:   "empty text",
			text:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			elems, ok := ExtractJSONArray(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Len(t, elems, tt.wantN)
			} else {
				assert.Nil(t, elems)
			}
		})
	}
}

func TestFindJSONArray(t *testing.T) {
	t.Parallel()

	island := `[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}]`
	got, ok := FindJSONArray("prefix " + island + " suffix ]")
	require.True(t, ok)
	assert.Equal(t, island, got)

	_, ok = FindJSONArray("no brackets here")
	assert.False(t, ok)
}

func TestDraftsFromElements(t *testing.T) {
	t.Parallel()

	t.Run("keeps the first five", func(t *testing.T) {
		t.Parallel()

		var elems []json.RawMessage
		for _, q := range []string{"1", "2", "3", "4", "5", "6", "7"} {
			elems = append(elems, json.RawMessage(`{"question":"Q`+q+`","answer":"A`+q+`"}`))
		}

		drafts := draftsFromElements(elems)
		require.Len(t, drafts, MaxCards)
		assert.Equal(t, domain.CardDraft{Question: "Q1", Answer: "A1"}, drafts[0])
		assert.Equal(t, domain.CardDraft{Question: "Q5", Answer: "A5"}, drafts[4])
	})

	t.Run("drops incomplete pairs within the first five", func(t *testing.T) {
		t.Parallel()

		elems := []json.RawMessage{
			json.RawMessage(`{"question":"  Q1 ","answer":" A1  "}`),
			json.RawMessage(`{"question":"Q2"}`),
			json.RawMessage(`{"question":"Q3","answer":"   "}`),
			json.RawMessage(`{"question":42,"answer":"A4"}`),
			json.RawMessage(`"not an object"`),
			json.RawMessage(`{"question":"Q6","answer":"A6"}`),
		}

		drafts := draftsFromElements(elems)
		assert.Equal(t, []domain.CardDraft{{Question: "Q1", Answer: "A1"}}, drafts)
	})

	t.Run("ignores extra fields", func(t *testing.T) {
		t.Parallel()

		drafts := draftsFromElements([]json.RawMessage{
			json.RawMessage(`{"question":"Q","answer":"A","hint":"h"}`),
		})
		assert.Equal(t, []domain.CardDraft{{Question: "Q", Answer: "A"}}, drafts)
	})
}

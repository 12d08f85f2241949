package record

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("PreservesOrder", func(t *testing.T) {
		days, err := Decode(strings.NewReader(`{
			"2024-01-02": {"weight": "80kg", "mood": "fine", "alpha": "1"},
			"2024-01-01": {}
		}`))
		require.NoError(t, err)

		assert.Equal(t, []Unparsed{
			{Date: "2024-01-02", Entries: []Entry{{"weight", "80kg"}, {"mood", "fine"}, {"alpha", "1"}}},
			{Date: "2024-01-01"},
		}, days)
	})

	t.Run("RepeatedNamesOverwrite", func(t *testing.T) {
		days, err := Decode(strings.NewReader(`{
			"2024-01-01": {"a": "1", "b": "2", "a": "3"},
			"2024-01-02": {"x": "y"},
			"2024-01-01": {"c": "4"}
		}`))
		require.NoError(t, err)

		assert.Equal(t, []Unparsed{
			{Date: "2024-01-01", Entries: []Entry{{"c", "4"}}},
			{Date: "2024-01-02", Entries: []Entry{{"x", "y"}}},
		}, days)
	})

	t.Run("Empty", func(t *testing.T) {
		days, err := Decode(strings.NewReader(" {}\n"))
		require.NoError(t, err)
		assert.Empty(t, days)
	})

	t.Run("Invalid", func(t *testing.T) {
		testdata := []string{
			``,
			`[]`,
			`{"2024-01-01": []}`,
			`{"2024-01-01": {"a": 1}}`,
			`{"2024-01-01": {"a": null}}`,
			`{"2024-01-01": {"a": {"b": "c"}}}`,
			`{"2024-01-01": "a"}`,
			`{"2024-01-01": {"a": "b",}}`,
			`{"2024-01-01": {"a": "b"}`,
			`{"2024-01-01": {"a": "b"}} {}`,
			`{"2024-01-01": {"a": "b"}} x`,
		}

		for _, doc := range testdata {
			_, err := Decode(strings.NewReader(doc))
			assert.Error(t, err, "decoding %q should fail", doc)
		}
	})
}

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("Empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, nil))
		assert.Equal(t, "{}\n", buf.String())
	})

	t.Run("Days", func(t *testing.T) {
		days, err := ParseAndSort([]Unparsed{
			{Date: "2024-01-02", Entries: []Entry{{"weight", "80kg"}, {"note", `say "hi"`}}},
			{Date: "2024-01-01"},
		})
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, days))

		expected := "{\n" +
			"  \"2024-01-01\": {},\n" +
			"  \"2024-01-02\": {\n" +
			"    \"weight\": \"80kg\",\n" +
			"    \"note\": \"say \\\"hi\\\"\"\n" +
			"  }\n" +
			"}\n"
		assert.Equal(t, expected, buf.String())

		decoded, err := Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, []Unparsed{
			{Date: "2024-01-01"},
			{Date: "2024-01-02", Entries: []Entry{{"weight", "80kg"}, {"note", `say "hi"`}}},
		}, decoded)
	})
}

package record

import (
	"bufio"
	"encoding/json"
	"fmt"
	"github.com/pkg/errors"
	"io"
)

// Decode reads a JSON document of the form {"<date>": {"<key>": "<value>", ...}, ...}.
//
// The order of dates and of the entries within each date is preserved. A date or key occurring
// more than once overwrites the earlier value but keeps the earlier position.
func Decode(r io.Reader) ([]Unparsed, error) {
	dec := json.NewDecoder(r)

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var days []Unparsed
	index := make(map[string]int)
	for dec.More() {
		date, err := readString(dec)
		if err != nil {
			return nil, err
		}

		entries, err := decodeEntries(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot decode entries of %q", date)
		}

		if i, ok := index[date]; ok {
			days[i].Entries = entries
			continue
		}

		index[date] = len(days)
		days = append(days, Unparsed{Date: date, Entries: entries})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	// Anything but whitespace after the closing brace makes the document invalid.
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after the top-level object")
	}

	return days, nil
}

func decodeEntries(dec *json.Decoder) ([]Entry, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var entries []Entry
	index := make(map[string]int)
	for dec.More() {
		key, err := readString(dec)
		if err != nil {
			return nil, err
		}

		value, err := readString(dec)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot decode value of %q", key)
		}

		if i, ok := index[key]; ok {
			entries[i].Value = value
			continue
		}

		index[key] = len(entries)
		entries = append(entries, Entry{Key: key, Value: value})
	}

	return entries, expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return errors.Wrapf(err, "expected %q", want)
	}

	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.Errorf("expected %q, got %v", want, tok)
	}

	return nil
}

func readString(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", errors.Wrap(err, "expected a string")
	}

	s, ok := tok.(string)
	if !ok {
		return "", errors.Errorf("expected a string, got %v", tok)
	}

	return s, nil
}

// Encode writes the given days as an indented JSON object keyed by date string.
//
// Dates are written in slice order and entries in their stored order.
func Encode(w io.Writer, days []*Day) error {
	bw := bufio.NewWriter(w)

	if len(days) == 0 {
		_, _ = bw.WriteString("{}\n")
		return bw.Flush()
	}

	_, _ = bw.WriteString("{\n")
	for i, day := range days {
		date, err := json.Marshal(day.DateString)
		if err != nil {
			return errors.Wrapf(err, "cannot encode date %q", day.DateString)
		}

		_, _ = fmt.Fprintf(bw, "  %s: {", date)
		for j, e := range day.Entries {
			key, err := json.Marshal(e.Key)
			if err != nil {
				return errors.Wrapf(err, "cannot encode key %q", e.Key)
			}
			value, err := json.Marshal(e.Value)
			if err != nil {
				return errors.Wrapf(err, "cannot encode value of %q", e.Key)
			}

			sep := ","
			if j == len(day.Entries)-1 {
				sep = ""
			}
			_, _ = fmt.Fprintf(bw, "\n    %s: %s%s", key, value, sep)
		}

		if len(day.Entries) > 0 {
			_, _ = bw.WriteString("\n  ")
		}

		if i == len(days)-1 {
			_, _ = bw.WriteString("}\n")
		} else {
			_, _ = bw.WriteString("},\n")
		}
	}
	_, _ = bw.WriteString("}\n")

	return bw.Flush()
}

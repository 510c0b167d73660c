package road

import (
	"encoding/json"
	"io"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

// ReadSegments decodes a JSON array of segments. Elements are decoded one at a
// time so a malformed element becomes a *SegmentError while the others are
// kept. The returned error is reserved for input that is not a JSON array.
func ReadSegments(r io.Reader) ([]Segment, []*SegmentError, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, eris.Wrap(err, "road: read segments")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, nil, eris.Errorf("road: read segments: expected an array, got %v", tok)
	}

	var (
		segments []Segment
		failures []*SegmentError
	)
	for index := 0; dec.More(); index++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, eris.Wrapf(err, "road: read segments: element %d", index)
		}

		var seg Segment
		if err := json.Unmarshal(raw, &seg); err != nil {
			failures = append(failures, &SegmentError{Index: index, Err: err})
			continue
		}
		if err := seg.Validate(); err != nil {
			failures = append(failures, &SegmentError{Index: index, ID: seg.EdgeID, Err: err})
			continue
		}
		segments = append(segments, seg)
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, eris.Wrap(err, "road: read segments")
	}
	return segments, failures, nil
}

func WriteSegments(w io.Writer, segments []Segment) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(segments), "road: write segments")
}

// ReadRecords decodes a name to record object and returns the records sorted by name.
func ReadRecords(r io.Reader) ([]Record, error) {
	byName := make(map[string]Record)
	if err := json.NewDecoder(r).Decode(&byName); err != nil {
		return nil, eris.Wrap(err, "road: read records")
	}

	records := make([]Record, 0, len(byName))
	for name, rec := range byName {
		if rec.Name == "" {
			rec.Name = name
		}
		if rec.Areas == nil {
			rec.Areas = []string{}
		}
		if rec.SubAreas == nil {
			rec.SubAreas = []string{}
		}
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b Record) int { return strings.Compare(a.Name, b.Name) })
	return records, nil
}

// WriteRecords encodes records as one JSON object keyed by road name.
func WriteRecords(w io.Writer, records []Record) error {
	byName := make(map[string]Record, len(records))
	for _, r := range records {
		byName[r.Name] = r
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(byName), "road: write records")
}

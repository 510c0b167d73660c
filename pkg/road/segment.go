package road

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/natevvv/osm-district-roads/pkg/geometry"
	"github.com/paulmach/orb"
	"github.com/rotisserie/eris"
)

var (
	ErrTooFewPoints  = geometry.ErrTooFewPoints
	ErrBadCoordinate = eris.New("road: coordinate is not a pair of finite numbers")
)

// TagValue is an OSM tag value that may arrive either as a single string or
// as a list of strings when several ways were merged into one edge.
type TagValue []string

func (v *TagValue) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*v = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = TagValue{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return eris.Wrap(err, "road: tag value must be a string or a list of strings")
	}
	*v = list
	return nil
}

func (v TagValue) MarshalJSON() ([]byte, error) {
	switch len(v) {
	case 0:
		return []byte("null"), nil
	case 1:
		return json.Marshal(v[0])
	}
	return json.Marshal([]string(v))
}

// String joins the non-empty entries with " / ".
func (v TagValue) String() string {
	parts := make([]string, 0, len(v))
	for _, s := range v {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " / ")
}

// NormalizeName turns a raw name into the single string roads are grouped by.
// It returns false for names that must be dropped: empty, "unnamed" or "unknown".
func NormalizeName(v TagValue) (string, bool) {
	name := v.String()
	switch strings.ToLower(name) {
	case "", "unnamed", "unknown":
		return "", false
	}
	return name, true
}

// Segment is one edge of the source road graph.
type Segment struct {
	EdgeID    string          `json:"edge_id,omitempty"`
	StartNode int64           `json:"start_node,omitempty"`
	EndNode   int64           `json:"end_node,omitempty"`
	Points    orb.LineString  `json:"coordinates"`
	Name      TagValue        `json:"name,omitempty"`
	Highway   TagValue        `json:"highway,omitempty"`
	Length    *float64        `json:"length,omitempty"`
	OneWay    bool            `json:"oneway,omitempty"`
	OSMID     json.RawMessage `json:"osmid,omitempty"`
}

// UnmarshalJSON rejects coordinates that are not exactly two numbers, which a
// plain decode into orb.Point would silently truncate or zero-fill.
func (s *Segment) UnmarshalJSON(b []byte) error {
	type plain Segment
	var aux struct {
		plain
		Coordinates [][]float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return eris.Wrap(err, "road: decode segment")
	}

	*s = Segment(aux.plain)
	s.Points = nil
	if aux.Coordinates != nil {
		s.Points = make(orb.LineString, len(aux.Coordinates))
	}
	for i, c := range aux.Coordinates {
		if len(c) != 2 {
			return eris.Wrapf(ErrBadCoordinate, "index %d has %d values", i, len(c))
		}
		s.Points[i] = orb.Point{c[0], c[1]}
	}
	return nil
}

// Validate checks the segment has at least two finite points.
func (s *Segment) Validate() error {
	if len(s.Points) < 2 {
		return eris.Wrapf(ErrTooFewPoints, "got %d", len(s.Points))
	}
	for i, p := range s.Points {
		if err := geometry.ValidatePoint(p); err != nil {
			return eris.Wrapf(ErrBadCoordinate, "index %d: %v", i, p)
		}
	}
	return nil
}

// Meters returns the stored length, or the haversine length of the points
// when the source did not provide one.
func (s *Segment) Meters() float64 {
	if s.Length != nil {
		return *s.Length
	}
	return geometry.LineLength(s.Points)
}

func (s *Segment) First() orb.Point { return s.Points[0] }
func (s *Segment) Last() orb.Point  { return s.Points[len(s.Points)-1] }

// SegmentError reports a malformed segment so the caller can skip it or abort.
type SegmentError struct {
	Index int
	ID    string
	Err   error
}

func (e *SegmentError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("road: segment %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("road: segment %d (%s): %v", e.Index, e.ID, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

// Package district builds and validates the district upload payload.
package district

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const maxTextLen = 255

type Status string

const (
	Active   Status = "active"
	Archived Status = "archived"
	Disabled Status = "disabled"
)

var (
	ErrInvalidKey       = eris.New("district: invalid key")
	ErrInvalidName      = eris.New("district: invalid name")
	ErrInvalidStatus    = eris.New("district: invalid status")
	ErrInvalidBorder    = eris.New("district: invalid border")
	ErrInvalidTimestamp = eris.New("district: invalid timestamp")
	ErrInvalidRoadCount = eris.New("district: road count must not be negative")
)

var (
	keyPattern     = regexp.MustCompile(`^[a-z0-9-]+$`)
	spaceRun       = regexp.MustCompile(`[\s_]+`)
	nonSlug        = regexp.MustCompile(`[^a-z0-9-]`)
	dashRun        = regexp.MustCompile(`-+`)
	nonAlnumRun    = regexp.MustCompile(`[^a-z0-9]+`)
	filenameSpacer = strings.NewReplacer("_", " ", "-", " ")
)

// Slugify lowercases text, turns whitespace and underscores into dashes and
// drops everything outside [a-z0-9-].
func Slugify(text string) string {
	s := strings.ToLower(text)
	s = spaceRun.ReplaceAllString(s, "-")
	s = nonSlug.ReplaceAllString(s, "")
	s = dashRun.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// RoadKey turns a road name into a key fragment: every run of characters
// outside [a-z0-9] becomes a single dash.
func RoadKey(name string) string {
	return strings.Trim(nonAlnumRun.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// NameFromFilename derives a display name from a boundary file,
// "my_district.geojson" becomes "My District".
func NameFromFilename(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return cases.Title(language.English).String(filenameSpacer.Replace(stem))
}

func ValidateKey(key string) error {
	switch {
	case key == "":
		return eris.Wrap(ErrInvalidKey, "key cannot be empty")
	case len(key) > maxTextLen:
		return eris.Wrapf(ErrInvalidKey, "key must be %d characters or less", maxTextLen)
	case !keyPattern.MatchString(key):
		return eris.Wrapf(ErrInvalidKey, "%q must contain only lowercase letters, numbers and hyphens", key)
	}
	return nil
}

func ValidateName(name string) error {
	switch {
	case name == "":
		return eris.Wrap(ErrInvalidName, "name cannot be empty")
	case len(name) > maxTextLen:
		return eris.Wrapf(ErrInvalidName, "name must be %d characters or less", maxTextLen)
	}
	return nil
}

// ValidateStatus accepts the empty status as unset.
func ValidateStatus(s Status) error {
	switch s {
	case "", Active, Archived, Disabled:
		return nil
	}
	return eris.Wrapf(ErrInvalidStatus, "got %q", s)
}

// ValidateBorder requires a Polygon or MultiPolygon whose rings are closed and
// have at least four positions.
func ValidateBorder(g orb.Geometry) error {
	var polygons []orb.Polygon
	switch v := g.(type) {
	case orb.Polygon:
		polygons = []orb.Polygon{v}
	case orb.MultiPolygon:
		polygons = v
	default:
		return eris.Wrapf(ErrInvalidBorder, "type must be Polygon or MultiPolygon, got %T", g)
	}
	if len(polygons) == 0 {
		return eris.Wrap(ErrInvalidBorder, "no coordinates")
	}
	for _, p := range polygons {
		if len(p) == 0 {
			return eris.Wrap(ErrInvalidBorder, "polygon has no rings")
		}
		for _, r := range p {
			if len(r) < 4 {
				return eris.Wrap(ErrInvalidBorder, "ring must have at least 4 coordinates")
			}
			if !r.Closed() {
				return eris.Wrap(ErrInvalidBorder, "ring must be closed")
			}
		}
	}
	return nil
}

// District is the district row of an upload.
type District struct {
	Key       string            `json:"key"`
	Name      string            `json:"name"`
	Status    Status            `json:"status,omitempty"`
	RoadCount int               `json:"road_count"`
	Border    *geojson.Geometry `json:"district_border_coordinates,omitempty"`
	Owner     *int64            `json:"owner,omitempty"`
	CreatedBy *int64            `json:"created_by,omitempty"`
	CreatedAt string            `json:"created_at,omitempty"`
}

// NewDistrict builds an active district from a boundary. An empty name is
// derived from the file name and an empty key from the name.
func NewDistrict(boundaryFile string, border orb.Geometry, name, key string) (*District, error) {
	if name == "" {
		name = NameFromFilename(boundaryFile)
	}
	if key == "" {
		key = Slugify(name)
	}
	d := &District{
		Key:    key,
		Name:   name,
		Status: Active,
		Border: geojson.NewGeometry(border),
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *District) Validate() error {
	if err := ValidateKey(d.Key); err != nil {
		return err
	}
	if err := ValidateName(d.Name); err != nil {
		return err
	}
	if err := ValidateStatus(d.Status); err != nil {
		return err
	}
	if d.RoadCount < 0 {
		return eris.Wrapf(ErrInvalidRoadCount, "got %d", d.RoadCount)
	}
	if d.Border != nil {
		if err := ValidateBorder(d.Border.Geometry()); err != nil {
			return err
		}
	}
	if d.CreatedAt != "" {
		if _, err := time.Parse(time.RFC3339, d.CreatedAt); err != nil {
			return eris.Wrapf(ErrInvalidTimestamp, "created_at %q", d.CreatedAt)
		}
	}
	return nil
}

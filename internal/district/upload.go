package district

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/natevvv/osm-district-roads/pkg/area"
	"github.com/natevvv/osm-district-roads/pkg/road"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
)

var (
	ErrInvalidArea       = eris.New("district: invalid area")
	ErrInvalidRoad       = eris.New("district: invalid road")
	ErrInvalidMember     = eris.New("district: invalid member")
	ErrInvalidAttachment = eris.New("district: invalid attachment")
	ErrInvalidEvent      = eris.New("district: invalid event")
)

// AreaObject is an area or sub-area row. SubArea is 0 or 1.
type AreaObject struct {
	TempID    string            `json:"temp_id"`
	Name      string            `json:"name"`
	Status    Status            `json:"status,omitempty"`
	SubArea   int               `json:"sub_area"`
	Border    *geojson.Geometry `json:"area_border_coordinates,omitempty"`
	CreatedBy *int64            `json:"created_by,omitempty"`
}

func (a *AreaObject) Validate() error {
	if a.TempID == "" {
		return eris.Wrap(ErrInvalidArea, "temp_id cannot be empty")
	}
	if err := ValidateName(a.Name); err != nil {
		return eris.Wrapf(ErrInvalidArea, "%s: %v", a.TempID, err)
	}
	if err := ValidateStatus(a.Status); err != nil {
		return eris.Wrapf(ErrInvalidArea, "%s: %v", a.TempID, err)
	}
	if a.SubArea != 0 && a.SubArea != 1 {
		return eris.Wrapf(ErrInvalidArea, "%s: sub_area must be 0 or 1", a.TempID)
	}
	if a.Border != nil {
		if err := ValidateBorder(a.Border.Geometry()); err != nil {
			return eris.Wrapf(ErrInvalidArea, "%s: %v", a.TempID, err)
		}
	}
	return nil
}

// RoadObject is a road row. Areas holds area temp ids or names, resolved to
// ids when the upload is stored.
type RoadObject struct {
	TempID      string           `json:"temp_id"`
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Type        string           `json:"type,omitempty"`
	Length      float64          `json:"length"`
	Size        road.Size        `json:"size,omitempty"`
	Segments    int              `json:"segments"`
	Areas       []string         `json:"areas"`
	Coordinates []orb.LineString `json:"coordinates"`
	SubAreas    int              `json:"sub_areas"`
}

func (r *RoadObject) Validate() error {
	if r.TempID == "" {
		return eris.Wrap(ErrInvalidRoad, "temp_id cannot be empty")
	}
	if r.Key == "" || r.Key != strings.ToLower(r.Key) {
		return eris.Wrapf(ErrInvalidRoad, "%s: key %q must be non-empty and lowercase", r.TempID, r.Key)
	}
	if len(r.Key) > maxTextLen {
		return eris.Wrapf(ErrInvalidRoad, "%s: key must be %d characters or less", r.TempID, maxTextLen)
	}
	if err := ValidateName(r.Name); err != nil {
		return eris.Wrapf(ErrInvalidRoad, "%s: %v", r.TempID, err)
	}
	if r.Length < 0 {
		return eris.Wrapf(ErrInvalidRoad, "%s: length must not be negative", r.TempID)
	}
	if r.Size != "" && !r.Size.Valid() {
		return eris.Wrapf(ErrInvalidRoad, "%s: size %q", r.TempID, r.Size)
	}
	if r.SubAreas != 0 && r.SubAreas != 1 {
		return eris.Wrapf(ErrInvalidRoad, "%s: sub_areas must be 0 or 1", r.TempID)
	}
	return nil
}

type Member struct {
	UserID      int64    `json:"user_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	Active      int      `json:"active"`
}

// NewMember returns an active member with the "member" role.
func NewMember(userID int64) Member {
	return Member{UserID: userID, Role: "member", Active: 1}
}

func (m *Member) Validate() error {
	if m.UserID <= 0 {
		return eris.Wrapf(ErrInvalidMember, "user_id %d", m.UserID)
	}
	if m.Role == "" {
		return eris.Wrapf(ErrInvalidMember, "user %d: role cannot be empty", m.UserID)
	}
	if m.Active != 0 && m.Active != 1 {
		return eris.Wrapf(ErrInvalidMember, "user %d: active must be 0 or 1", m.UserID)
	}
	return nil
}

type Attachment struct {
	Filename       string `json:"filename"`
	StorageKey     string `json:"storage_key"`
	ContentType    string `json:"content_type,omitempty"`
	OwnerID        *int64 `json:"owner_id,omitempty"`
	Size           *int64 `json:"size,omitempty"`
	OrganizationID *int64 `json:"organization_id,omitempty"`
}

func (a *Attachment) Validate() error {
	if a.Filename == "" || a.StorageKey == "" {
		return eris.Wrap(ErrInvalidAttachment, "filename and storage_key are required")
	}
	if a.Size != nil && *a.Size < 0 {
		return eris.Wrapf(ErrInvalidAttachment, "%s: size must not be negative", a.Filename)
	}
	return nil
}

type Event struct {
	ActorID      *int64         `json:"actor_id,omitempty"`
	ObjectType   string         `json:"object_type"`
	ObjectTempID string         `json:"object_temp_id,omitempty"`
	ObjectID     *int64         `json:"object_id,omitempty"`
	EventType    string         `json:"event_type"`
	Payload      map[string]any `json:"payload,omitempty"`
}

func (e *Event) Validate() error {
	if e.ObjectType == "" || e.EventType == "" {
		return eris.Wrap(ErrInvalidEvent, "object_type and event_type are required")
	}
	if e.ObjectTempID == "" && e.ObjectID == nil {
		return eris.Wrapf(ErrInvalidEvent, "%s %s: needs object_temp_id or object_id", e.ObjectType, e.EventType)
	}
	return nil
}

// Upload is the complete payload for creating a district with its contents.
type Upload struct {
	District        District     `json:"district"`
	Areas           []AreaObject `json:"areas,omitempty"`
	Roads           []RoadObject `json:"roads,omitempty"`
	DistrictMembers []Member     `json:"district_members,omitempty"`
	Attachments     []Attachment `json:"attachments,omitempty"`
	Events          []Event      `json:"events,omitempty"`
}

// Validate checks every object and that road area references point at a
// known area temp id or name.
func (u *Upload) Validate() error {
	if err := u.District.Validate(); err != nil {
		return err
	}
	known := make(map[string]bool, 2*len(u.Areas))
	for i := range u.Areas {
		if err := u.Areas[i].Validate(); err != nil {
			return err
		}
		if known[u.Areas[i].TempID] {
			return eris.Wrapf(ErrInvalidArea, "duplicate temp_id %s", u.Areas[i].TempID)
		}
		known[u.Areas[i].TempID] = true
		known[u.Areas[i].Name] = true
	}
	keys := make(map[string]bool, len(u.Roads))
	for i := range u.Roads {
		r := &u.Roads[i]
		if err := r.Validate(); err != nil {
			return err
		}
		if keys[r.Key] {
			return eris.Wrapf(ErrInvalidRoad, "duplicate key %s", r.Key)
		}
		keys[r.Key] = true
		for _, ref := range r.Areas {
			if !known[ref] {
				return eris.Wrapf(ErrInvalidRoad, "%s: unknown area %q", r.TempID, ref)
			}
		}
	}
	for i := range u.DistrictMembers {
		if err := u.DistrictMembers[i].Validate(); err != nil {
			return err
		}
	}
	for i := range u.Attachments {
		if err := u.Attachments[i].Validate(); err != nil {
			return err
		}
	}
	for i := range u.Events {
		if err := u.Events[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (u *Upload) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(u), "district: encode upload")
}

func ReadUpload(r io.Reader) (*Upload, error) {
	var u Upload
	if err := json.NewDecoder(r).Decode(&u); err != nil {
		return nil, eris.Wrap(err, "district: decode upload")
	}
	return &u, nil
}

// RoadObjects turns stitched records into road rows keyed under districtKey.
func RoadObjects(records []road.Record, districtKey string) []RoadObject {
	out := make([]RoadObject, 0, len(records))
	for i, rec := range records {
		key := truncate(districtKey+"-"+RoadKey(rec.Name), maxTextLen)
		subAreas := 0
		if len(rec.SubAreas) > 0 {
			subAreas = 1
		}
		areas := rec.Areas
		if areas == nil {
			areas = []string{}
		}
		out = append(out, RoadObject{
			TempID:      fmt.Sprintf("road-%d", i+1),
			Key:         key,
			Name:        truncate(rec.Name, maxTextLen),
			Type:        rec.RoadType,
			Length:      rec.Length,
			Size:        rec.Size,
			Segments:    rec.SegmentCount,
			Areas:       areas,
			Coordinates: rec.Coordinates,
			SubAreas:    subAreas,
		})
	}
	return out
}

// AreaObjects turns loaded areas into area rows. Sub-areas get "subarea-N"
// temp ids.
func AreaObjects(areas []*area.Area, subArea bool, createdBy *int64) []AreaObject {
	prefix, flag := "area", 0
	if subArea {
		prefix, flag = "subarea", 1
	}
	out := make([]AreaObject, 0, len(areas))
	for i, a := range areas {
		out = append(out, AreaObject{
			TempID:    fmt.Sprintf("%s-%d", prefix, i+1),
			Name:      a.Name,
			Status:    Active,
			SubArea:   flag,
			Border:    geojson.NewGeometry(a.Geometry),
			CreatedBy: createdBy,
		})
	}
	return out
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

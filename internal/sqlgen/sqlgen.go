// Package sqlgen renders SQLite INSERT statements for a district, its
// members, areas and roads.
package sqlgen

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/natevvv/osm-district-roads/internal/district"
	"github.com/natevvv/osm-district-roads/pkg/road"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
)

var ErrEmptyName = eris.New("sqlgen: name cannot be empty")

// Quote doubles single quotes.
func Quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// QuoteJSON escapes a JSON payload for a single-quoted SQL literal.
func QuoteJSON(s string) string {
	return Quote(strings.ReplaceAll(s, `\`, `\\`))
}

func literal(s string) string { return "'" + Quote(s) + "'" }

func jsonLiteral(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", eris.Wrap(err, "sqlgen: encode json")
	}
	return "'" + QuoteJSON(string(b)) + "'", nil
}

func insert(table string, fields, values []string) string {
	return fmt.Sprintf("INSERT INTO %s (%s)\nVALUES (%s);", table, strings.Join(fields, ", "), strings.Join(values, ", "))
}

func geometryJSON(g orb.Geometry) (string, error) {
	b, err := geojson.NewGeometry(g).MarshalJSON()
	if err != nil {
		return "", eris.Wrap(err, "sqlgen: encode border")
	}
	return string(b), nil
}

// District renders the district row. A nil border leaves the column out.
func District(name string, createdBy, owner int64, border orb.Geometry) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}
	fields := []string{"name", "created_by", "owner"}
	values := []string{literal(name), strconv.FormatInt(createdBy, 10), strconv.FormatInt(owner, 10)}
	if border != nil {
		b, err := geometryJSON(border)
		if err != nil {
			return "", err
		}
		fields = append(fields, "district_border_coordinates")
		values = append(values, literal(b))
	}
	return insert("districts", fields, values), nil
}

func Member(districtID, userID int64) string {
	return fmt.Sprintf("INSERT INTO district_members (district_id, user_id, joined_at, active)\nVALUES (%d, %d, datetime('now'), 1);", districtID, userID)
}

// Area renders an area or sub-area row. A nil border leaves the column out.
func Area(districtID int64, name string, border orb.Geometry, subArea bool, createdBy int64) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrEmptyName
	}
	flag := "0"
	if subArea {
		flag = "1"
	}
	fields := []string{"district_id", "name", "sub_area", "created_by"}
	values := []string{strconv.FormatInt(districtID, 10), literal(name), flag, strconv.FormatInt(createdBy, 10)}
	if border != nil {
		b, err := geometryJSON(border)
		if err != nil {
			return "", err
		}
		fields = append(fields, "area_border_coordinates")
		values = append(values, "'"+QuoteJSON(b)+"'")
	}
	return insert("areas", fields, values), nil
}

type segmentRow struct {
	Index       int            `json:"index"`
	Coordinates orb.LineString `json:"coordinates"`
}

// Road renders a road row with its areas written as names. A comment above
// the statement lists them, since the column holds area ids once the areas
// are inserted.
func Road(districtID int64, rec road.Record) (string, error) {
	areas := rec.Areas
	if areas == nil {
		areas = []string{}
	}
	q, err := roadInsert(districtID, rec, areas)
	if err != nil || len(areas) == 0 {
		return q, err
	}
	comment := "-- Road references areas: " + strings.Join(areas, ", ") + "\n" +
		"-- Note: 'areas' holds area names, replace them with area ids once the areas table is populated\n"
	return comment + q, nil
}

// RoadResolved renders a road row with its areas replaced by ids from
// idByName. Names without an id are returned and left out of the row.
func RoadResolved(districtID int64, rec road.Record, idByName map[string]int64) (string, []string, error) {
	ids, unresolved := ResolveIDs(rec.Areas, idByName)
	q, err := roadInsert(districtID, rec, ids)
	return q, unresolved, err
}

func roadInsert(districtID int64, rec road.Record, areas any) (string, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return "", ErrEmptyName
	}
	size := rec.Size
	if size == "" {
		size = road.Medium
	}
	coordinates := rec.Coordinates
	if coordinates == nil {
		coordinates = []orb.LineString{}
	}
	segments := make([]segmentRow, len(coordinates))
	for i, c := range coordinates {
		segments[i] = segmentRow{Index: i, Coordinates: c}
	}
	segJSON, err := jsonLiteral(segments)
	if err != nil {
		return "", err
	}
	areaJSON, err := jsonLiteral(areas)
	if err != nil {
		return "", err
	}
	coordJSON, err := jsonLiteral(coordinates)
	if err != nil {
		return "", err
	}
	subAreas := "0"
	if len(rec.SubAreas) > 0 {
		subAreas = "1"
	}

	fields := []string{"key", "district_id", "name", "length", "size", "segments", "areas", "coordinates", "sub_areas"}
	values := []string{
		literal(district.RoadKey(rec.Name)),
		strconv.FormatInt(districtID, 10),
		literal(rec.Name),
		strconv.FormatFloat(rec.Length, 'f', -1, 64),
		literal(string(size)),
		segJSON,
		areaJSON,
		coordJSON,
		subAreas,
	}
	if rec.RoadType != "" {
		fields = slices.Insert(fields, 4, "type")
		values = slices.Insert(values, 4, literal(rec.RoadType))
	}
	return insert("roads", fields, values), nil
}

// ResolveIDs maps names to ids. The ids come back sorted and unique;
// unresolved names keep their input order.
func ResolveIDs(names []string, idByName map[string]int64) ([]int64, []string) {
	ids := []int64{}
	var unresolved []string
	seen := make(map[int64]bool, len(names))
	for _, n := range names {
		id, ok := idByName[n]
		if !ok {
			unresolved = append(unresolved, n)
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, unresolved
}

// Script joins statements with a blank line between them.
func Script(queries []string) string {
	return strings.Join(queries, "\n\n")
}

// Package store persists district uploads in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/natevvv/osm-district-roads/internal/district"
	"github.com/natevvv/osm-district-roads/internal/sqlgen"
	"github.com/natevvv/osm-district-roads/pkg/road"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var ddl string

var ErrNotFound = eris.New("store: not found")

type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at path. ":memory:" gives a private
// in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "store: open %s", path)
	}
	// one connection keeps an in-memory database alive and serializes writers
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "store: enable foreign keys")
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(ddl, "-- migrate") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return eris.Wrapf(err, "store: migrate [%s]", stmt)
		}
	}
	return nil
}

// SaveUpload validates u and inserts it in one transaction. Road area
// references (temp ids or names) are stored as the ids of the inserted areas.
func (s *Store) SaveUpload(ctx context.Context, u *district.Upload) (int64, error) {
	if err := u.Validate(); err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "store: begin")
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			zap.L().Warn("rollback failed", zap.Error(err))
		}
	}()

	districtID, err := insertDistrict(ctx, tx, &u.District)
	if err != nil {
		return 0, err
	}
	objectIDs := map[string]int64{u.District.Key: districtID}

	for _, m := range u.DistrictMembers {
		perms, err := optionalJSON(m.Permissions)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO district_members (district_id, user_id, role, permissions, active) VALUES (?, ?, ?, ?, ?)`,
			districtID, m.UserID, m.Role, perms, m.Active); err != nil {
			return 0, eris.Wrapf(err, "store: insert member %d", m.UserID)
		}
	}

	areaIDs := make(map[string]int64, 2*len(u.Areas))
	for _, a := range u.Areas {
		border, err := geometryColumn(a.Border)
		if err != nil {
			return 0, err
		}
		res, err := tx.ExecContext(ctx,
			`INSERT INTO areas (district_id, name, status, sub_area, area_border_coordinates, created_by) VALUES (?, ?, ?, ?, ?, ?)`,
			districtID, a.Name, statusOrActive(a.Status), a.SubArea, border, a.CreatedBy)
		if err != nil {
			return 0, eris.Wrapf(err, "store: insert area %s", a.Name)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, eris.Wrap(err, "store: area id")
		}
		areaIDs[a.Name] = id
		areaIDs[a.TempID] = id
		objectIDs[a.TempID] = id
	}

	for _, r := range u.Roads {
		r := r
		id, err := insertRoad(ctx, tx, districtID, &r, areaIDs)
		if err != nil {
			return 0, err
		}
		objectIDs[r.TempID] = id
	}

	for _, a := range u.Attachments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO attachments (district_id, filename, storage_key, content_type, owner_id, size, organization_id) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			districtID, a.Filename, a.StorageKey, a.ContentType, a.OwnerID, a.Size, a.OrganizationID); err != nil {
			return 0, eris.Wrapf(err, "store: insert attachment %s", a.Filename)
		}
	}

	for _, e := range u.Events {
		objectID := e.ObjectID
		if objectID == nil {
			if id, ok := objectIDs[e.ObjectTempID]; ok {
				objectID = &id
			}
		}
		payload, err := optionalJSON(e.Payload)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO events (district_id, actor_id, object_type, object_id, event_type, payload) VALUES (?, ?, ?, ?, ?, ?)`,
			districtID, e.ActorID, e.ObjectType, objectID, e.EventType, payload); err != nil {
			return 0, eris.Wrapf(err, "store: insert event %s", e.EventType)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "store: commit")
	}
	zap.L().Info("stored district",
		zap.String("district", u.District.Key),
		zap.Int64("id", districtID),
		zap.Int("areas", len(u.Areas)),
		zap.Int("roads", len(u.Roads)),
		zap.Int("members", len(u.DistrictMembers)),
	)
	return districtID, nil
}

func insertDistrict(ctx context.Context, tx *sql.Tx, d *district.District) (int64, error) {
	border, err := geometryColumn(d.Border)
	if err != nil {
		return 0, err
	}
	var createdAt any
	if d.CreatedAt != "" {
		createdAt = d.CreatedAt
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO districts (key, name, status, road_count, district_border_coordinates, owner, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, COALESCE(?, datetime('now')))`,
		d.Key, d.Name, statusOrActive(d.Status), d.RoadCount, border, d.Owner, d.CreatedBy, createdAt)
	if err != nil {
		return 0, eris.Wrapf(err, "store: insert district %s", d.Key)
	}
	id, err := res.LastInsertId()
	return id, eris.Wrap(err, "store: district id")
}

func insertRoad(ctx context.Context, tx *sql.Tx, districtID int64, r *district.RoadObject, areaIDs map[string]int64) (int64, error) {
	ids, unresolved := sqlgen.ResolveIDs(r.Areas, areaIDs)
	if len(unresolved) > 0 {
		return 0, eris.Wrapf(district.ErrInvalidRoad, "%s: unknown areas %v", r.TempID, unresolved)
	}
	coordinates := r.Coordinates
	if coordinates == nil {
		coordinates = []orb.LineString{}
	}
	segments := make([]segmentColumn, len(coordinates))
	for i, c := range coordinates {
		segments[i] = segmentColumn{Index: i, Coordinates: c}
	}
	segJSON, err := json.Marshal(segments)
	if err != nil {
		return 0, eris.Wrap(err, "store: encode segments")
	}
	coordJSON, err := json.Marshal(coordinates)
	if err != nil {
		return 0, eris.Wrap(err, "store: encode coordinates")
	}
	areaJSON, err := json.Marshal(ids)
	if err != nil {
		return 0, eris.Wrap(err, "store: encode areas")
	}
	var roadType any
	if r.Type != "" {
		roadType = r.Type
	}
	size := r.Size
	if size == "" {
		size = road.Medium
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO roads (key, district_id, name, length, type, size, segment_count, segments, areas, coordinates, sub_areas)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Key, districtID, r.Name, r.Length, roadType, string(size), r.Segments,
		string(segJSON), string(areaJSON), string(coordJSON), r.SubAreas)
	if err != nil {
		return 0, eris.Wrapf(err, "store: insert road %s", r.Key)
	}
	id, err := res.LastInsertId()
	return id, eris.Wrap(err, "store: road id")
}

type segmentColumn struct {
	Index       int            `json:"index"`
	Coordinates orb.LineString `json:"coordinates"`
}

// DistrictID looks a district up by key.
func (s *Store) DistrictID(ctx context.Context, key string) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM districts WHERE key = ?`, key).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, eris.Wrapf(ErrNotFound, "district %s", key)
	}
	return id, eris.Wrapf(err, "store: district %s", key)
}

// Areas returns the areas of a district ordered by name, with their temp ids
// set to "area-<id>".
func (s *Store) Areas(ctx context.Context, districtID int64) ([]district.AreaObject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, status, sub_area, area_border_coordinates, created_by FROM areas WHERE district_id = ? ORDER BY name, id`,
		districtID)
	if err != nil {
		return nil, eris.Wrap(err, "store: query areas")
	}
	defer rows.Close()

	var areas []district.AreaObject
	for rows.Next() {
		var (
			id        int64
			a         district.AreaObject
			border    sql.NullString
			createdBy sql.NullInt64
		)
		if err := rows.Scan(&id, &a.Name, &a.Status, &a.SubArea, &border, &createdBy); err != nil {
			return nil, eris.Wrap(err, "store: scan area")
		}
		a.TempID = "area-" + strconv.FormatInt(id, 10)
		if border.Valid {
			g, err := geojson.UnmarshalGeometry([]byte(border.String))
			if err != nil {
				return nil, eris.Wrapf(err, "store: decode border of %s", a.Name)
			}
			a.Border = g
		}
		if createdBy.Valid {
			a.CreatedBy = &createdBy.Int64
		}
		areas = append(areas, a)
	}
	return areas, eris.Wrap(rows.Err(), "store: read areas")
}

// Roads reads back the roads of a district ordered by name. Area ids are
// turned back into area names.
func (s *Store) Roads(ctx context.Context, districtID int64) ([]district.RoadObject, error) {
	names, err := s.areaNames(ctx, districtID)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, key, name, length, type, size, segment_count, areas, coordinates, sub_areas
		FROM roads WHERE district_id = ? ORDER BY name, id`, districtID)
	if err != nil {
		return nil, eris.Wrap(err, "store: query roads")
	}
	defer rows.Close()

	var roads []district.RoadObject
	for rows.Next() {
		var (
			id          int64
			r           district.RoadObject
			roadType    sql.NullString
			size        string
			areaJSON    string
			coordJSON   string
			areaIDs     []int64
			coordinates []orb.LineString
		)
		if err := rows.Scan(&id, &r.Key, &r.Name, &r.Length, &roadType, &size, &r.Segments, &areaJSON, &coordJSON, &r.SubAreas); err != nil {
			return nil, eris.Wrap(err, "store: scan road")
		}
		if err := json.Unmarshal([]byte(areaJSON), &areaIDs); err != nil {
			return nil, eris.Wrapf(err, "store: decode areas of %s", r.Key)
		}
		if err := json.Unmarshal([]byte(coordJSON), &coordinates); err != nil {
			return nil, eris.Wrapf(err, "store: decode coordinates of %s", r.Key)
		}
		r.TempID = "road-" + strconv.FormatInt(id, 10)
		r.Type = roadType.String
		r.Size = road.Size(size)
		r.Coordinates = coordinates
		r.Areas = make([]string, 0, len(areaIDs))
		for _, aid := range areaIDs {
			r.Areas = append(r.Areas, names[aid])
		}
		roads = append(roads, r)
	}
	return roads, eris.Wrap(rows.Err(), "store: read roads")
}

func (s *Store) areaNames(ctx context.Context, districtID int64) (map[int64]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM areas WHERE district_id = ?`, districtID)
	if err != nil {
		return nil, eris.Wrap(err, "store: query area names")
	}
	defer rows.Close()
	names := map[int64]string{}
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, eris.Wrap(err, "store: scan area name")
		}
		names[id] = name
	}
	return names, eris.Wrap(rows.Err(), "store: read area names")
}

func geometryColumn(g *geojson.Geometry) (any, error) {
	if g == nil {
		return nil, nil
	}
	b, err := json.Marshal(g)
	if err != nil {
		return nil, eris.Wrap(err, "store: encode border")
	}
	return string(b), nil
}

func optionalJSON[T any](v T) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "store: encode json")
	}
	if string(b) == "null" {
		return nil, nil
	}
	return string(b), nil
}

func statusOrActive(s district.Status) string {
	if s == "" {
		return string(district.Active)
	}
	return string(s)
}

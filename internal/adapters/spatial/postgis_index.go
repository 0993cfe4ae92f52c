package spatial

import (
	"commute-planner-service/internal/domain"
	"commute-planner-service/internal/platform/obs"
	"commute-planner-service/internal/ports"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb/geojson"
)

// PostGISIndex answers spatial queries from a PostGIS "routes" table.
// Distances are computed on the geography type so they are real meters.
// Each query checks a connection out of the pool and returns it on every path.
type PostGISIndex struct {
	pool *pgxpool.Pool
}

func NewPostGISIndex(pool *pgxpool.Pool) *PostGISIndex {
	return &PostGISIndex{pool: pool}
}

func (p *PostGISIndex) Ping(ctx context.Context) error {
	if p.pool == nil {
		return errors.New("postgis: pool is nil")
	}
	return p.pool.Ping(ctx)
}

const nearestQuery = `
SELECT id, name, ref, mode, sub_type, geometry, d_src, d_dst, src_lon, src_lat, dst_lon, dst_lat
FROM (
	SELECT r.id, r.name, r.ref, r.mode, r.sub_type,
		ST_AsGeoJSON(r.geom) AS geometry,
		ST_Distance(r.geom::geography, q.src::geography) AS d_src,
		ST_Distance(r.geom::geography, q.dst::geography) AS d_dst,
		ST_X(ST_ClosestPoint(r.geom, q.src)) AS src_lon,
		ST_Y(ST_ClosestPoint(r.geom, q.src)) AS src_lat,
		ST_X(ST_ClosestPoint(r.geom, q.dst)) AS dst_lon,
		ST_Y(ST_ClosestPoint(r.geom, q.dst)) AS dst_lat
	FROM routes r,
		(SELECT ST_SetSRID(ST_MakePoint($1, $2), 4326) AS src,
		        ST_SetSRID(ST_MakePoint($3, $4), 4326) AS dst) q
) c
ORDER BY $5::float8 * d_src + $6::float8 * d_dst, id
LIMIT $7
`

func (p *PostGISIndex) Nearest(ctx context.Context, q ports.NearestQuery) (_ []domain.RouteProximity, err error) {
	defer obs.Time(ctx, "spatial.postgis.Nearest")(&err)

	if p.pool == nil {
		return nil, fmt.Errorf("postgis nearest: %w", domain.ErrSpatialStoreUnavailable)
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgis nearest: acquire: %w: %w", domain.ErrSpatialStoreUnavailable, err)
	}
	defer conn.Release()

	rows, err := conn.Query(ctx, nearestQuery,
		q.Source.Lon, q.Source.Lat,
		q.Dest.Lon, q.Dest.Lat,
		q.SourceWeight, q.DestWeight,
		q.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("postgis nearest: query: %w", err)
	}
	defer rows.Close()

	var out []domain.RouteProximity
	for rows.Next() {
		var (
			r        domain.RouteFeature
			geomJSON string
			px       domain.RouteProximity
		)
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Ref, &r.Mode, &r.SubType, &geomJSON,
			&px.DistanceFromSource, &px.DistanceFromDest,
			&px.ClosestPointToSource.Lon, &px.ClosestPointToSource.Lat,
			&px.ClosestPointToDest.Lon, &px.ClosestPointToDest.Lat,
		); err != nil {
			return nil, fmt.Errorf("postgis nearest: scan: %w", err)
		}

		g, err := geojson.UnmarshalGeometry([]byte(geomJSON))
		if err != nil {
			return nil, fmt.Errorf("postgis nearest: route %q geometry: %w", r.ID, err)
		}
		r.Geometry = lineOf(g.Geometry())

		px.Route = r
		out = append(out, px)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgis nearest: rows: %w", err)
	}

	return out, nil
}

const minDistanceQuery = `
SELECT ST_X(ST_StartPoint(l)), ST_Y(ST_StartPoint(l)),
	ST_X(ST_EndPoint(l)), ST_Y(ST_EndPoint(l)),
	ST_Length(l::geography)
FROM (
	SELECT ST_ShortestLine(a.geom, b.geom) AS l
	FROM routes a, routes b
	WHERE a.id = $1 AND b.id = $2
) s
`

func (p *PostGISIndex) MinDistance(ctx context.Context, routeA, routeB string) (_ ports.RouteGap, err error) {
	defer obs.Time(ctx, "spatial.postgis.MinDistance")(&err)

	if p.pool == nil {
		return ports.RouteGap{}, fmt.Errorf("postgis min distance: %w", domain.ErrSpatialStoreUnavailable)
	}

	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return ports.RouteGap{}, fmt.Errorf("postgis min distance: acquire: %w: %w", domain.ErrSpatialStoreUnavailable, err)
	}
	defer conn.Release()

	var gap ports.RouteGap
	err = conn.QueryRow(ctx, minDistanceQuery, routeA, routeB).Scan(
		&gap.PointOnA.Lon, &gap.PointOnA.Lat,
		&gap.PointOnB.Lon, &gap.PointOnB.Lat,
		&gap.Meters,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ports.RouteGap{}, fmt.Errorf("postgis min distance: unknown route %q or %q", routeA, routeB)
	}
	if err != nil {
		return ports.RouteGap{}, fmt.Errorf("postgis min distance: %q/%q: %w", routeA, routeB, err)
	}

	return gap, nil
}

// InitSchema creates the PostGIS extension, the routes table and its spatial index.
func InitSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return errors.New("init schema: pool is nil")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS postgis`,
		`CREATE TABLE IF NOT EXISTS routes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			ref TEXT NOT NULL DEFAULT '',
			mode TEXT NOT NULL,
			sub_type TEXT NOT NULL DEFAULT '',
			geom geometry(LineString, 4326) NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_routes_geom ON routes USING GIST (geom)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}
	return nil
}

// SeedRoutes upserts routes into the routes table in one transaction.
func SeedRoutes(ctx context.Context, pool *pgxpool.Pool, routes []domain.RouteFeature) (int, error) {
	if pool == nil {
		return 0, errors.New("seed routes: pool is nil")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed routes: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, r := range routes {
		geom, err := geojson.NewGeometry(r.Geometry).MarshalJSON()
		if err != nil {
			return 0, fmt.Errorf("seed routes: encode %q: %w", r.ID, err)
		}

		batch.Queue(`
			INSERT INTO routes (id, name, ref, mode, sub_type, geom)
			VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_GeomFromGeoJSON($6), 4326))
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				ref = EXCLUDED.ref,
				mode = EXCLUDED.mode,
				sub_type = EXCLUDED.sub_type,
				geom = EXCLUDED.geom
		`, r.ID, r.Name, r.Ref, r.Mode, r.SubType, string(geom))
	}

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("seed routes: batch insert: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("seed routes: commit: %w", err)
	}
	return len(routes), nil
}

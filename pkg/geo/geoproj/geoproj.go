// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

// Package geoproj implements the Coordinate Reference Service (C) of
// spec.md §4.3: a process-lifetime cache of PROJ transformation pipelines
// keyed by (source SRID, target SRID), and the Transform operation that
// reprojects a Geometry Value through one. PROJ, via
// github.com/twpayne/go-proj/v10, is this module's only native
// dependency, as spec.md §4.3 requires.
package geoproj

import (
	"fmt"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sqlitegis/sqlitegis/pkg/geo"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geopb"
	"github.com/twpayne/go-geom"
	proj "github.com/twpayne/go-proj/v10"
)

// pipelineState is the per-(source,target) lifecycle spec.md §4.3
// describes: a pipeline is absent until first requested, then transitions
// to creating while PROJ builds it, and finally to ready or failed.
type pipelineState int

const (
	pipelineCreating pipelineState = iota
	pipelineReady
	pipelineFailed
)

type pipelineEntry struct {
	state pipelineState
	pj    *proj.PJ
	err   error
}

// Service is the Coordinate Reference Service. It owns one PROJ context
// and a cache of pipelines built against it; both are safe for concurrent
// use by multiple SQLite connections sharing one extension registration.
type Service struct {
	mu        sync.Mutex
	pjContext *proj.Context
	pipelines map[pipelineKey]*pipelineEntry

	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	failures    prometheus.Counter
}

type pipelineKey struct {
	src geopb.SRID
	dst geopb.SRID
}

// searchPaths overrides PROJ's default resource-file search path for every
// Service created after it is set. Set it via SetSearchPaths before the
// CLI's first CRS operation; it has no effect on a Service already built.
var searchPaths []string

// SetSearchPaths overrides PROJ's default resource-file search path (where
// it looks for proj.db and grid files) for every Service created
// afterward, the Go analogue of pointing the original's PROJ_LIB
// environment variable somewhere nonstandard.
func SetSearchPaths(paths []string) {
	searchPaths = paths
}

// NewService creates a Coordinate Reference Service with an empty
// pipeline cache and registers its cache-hit/miss/failure counters with
// reg. reg may be nil, in which case metrics are tracked but not exposed.
func NewService(reg prometheus.Registerer) (*Service, error) {
	pjCtx := proj.NewContext()
	if len(searchPaths) > 0 {
		pjCtx.SetSearchPaths(searchPaths)
	}
	s := &Service{
		pjContext: pjCtx,
		pipelines: make(map[pipelineKey]*pipelineEntry),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sqlitegis",
			Subsystem: "geoproj",
			Name:      "pipeline_cache_hits_total",
			Help:      "Number of CRS transform pipeline cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sqlitegis",
			Subsystem: "geoproj",
			Name:      "pipeline_cache_misses_total",
			Help:      "Number of CRS transform pipeline cache misses.",
		}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sqlitegis",
			Subsystem: "geoproj",
			Name:      "pipeline_build_failures_total",
			Help:      "Number of CRS transform pipelines that failed to build.",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{s.cacheHits, s.cacheMisses, s.failures} {
			if err := reg.Register(c); err != nil {
				return nil, errors.Wrap(err, "geoproj: registering metrics")
			}
		}
	}
	return s, nil
}

// Transform reprojects g's coordinates from its own SRID to targetSRID,
// building and caching the PROJ pipeline between the two on first use.
// SetSRID (in package geo) is the "change SRID, don't reproject" sibling
// of this operation; Transform is the one that actually moves coordinates.
func (s *Service) Transform(g geo.Geometry, targetSRID geopb.SRID) (geo.Geometry, error) {
	if g.SRID() == geopb.UnknownSRID {
		return geo.Geometry{}, errors.New("geoproj: cannot transform a geometry with unknown SRID")
	}
	if g.SRID() == targetSRID {
		return g, nil
	}
	pj, err := s.pipelineFor(g.SRID(), targetSRID)
	if err != nil {
		return geo.Geometry{}, err
	}
	t, err := g.AsGeomT()
	if err != nil {
		return geo.Geometry{}, err
	}
	out, err := transformGeomT(pj, t)
	if err != nil {
		return geo.Geometry{}, errors.Wrap(err, "geoproj: transforming coordinates")
	}
	out = setSRIDDeep(out, int(targetSRID))
	return geo.NewGeometryFromGeomT(out)
}

// pipelineFor returns the ready PJ transformation for (src, dst), from
// cache if present, otherwise building and caching it. A failed build is
// not cached: it is removed from the map before returning, so the next
// call retries creation from scratch instead of replaying the old error.
func (s *Service) pipelineFor(src, dst geopb.SRID) (*proj.PJ, error) {
	key := pipelineKey{src: src, dst: dst}

	s.mu.Lock()
	if entry, ok := s.pipelines[key]; ok {
		s.mu.Unlock()
		switch entry.state {
		case pipelineReady:
			s.cacheHits.Inc()
			return entry.pj, nil
		default:
			// A concurrent build is in flight; retake the lock and fall
			// through to a from-scratch build below, which is redundant
			// work but still correct, since PJ construction has no side
			// effects on shared state beyond the cache entry itself,
			// which the second writer simply overwrites.
			s.mu.Lock()
		}
	}
	entry := &pipelineEntry{state: pipelineCreating}
	s.pipelines[key] = entry
	s.mu.Unlock()

	s.cacheMisses.Inc()
	pj, err := s.pjContext.NewCRSToCRS(
		fmt.Sprintf("EPSG:%d", src),
		fmt.Sprintf("EPSG:%d", dst),
		nil,
	)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.failures.Inc()
		delete(s.pipelines, key)
		return nil, errors.Wrapf(err, "geoproj: building pipeline from EPSG:%d to EPSG:%d", src, dst)
	}
	entry.state = pipelineReady
	entry.pj = pj
	return pj, nil
}

// transformGeomT rebuilds t with every coordinate passed through pj,
// preserving structure and layout.
func transformGeomT(pj *proj.PJ, t geom.T) (geom.T, error) {
	switch t := t.(type) {
	case *geom.Point:
		c, err := transformCoord(pj, t.Coords())
		if err != nil {
			return nil, err
		}
		return geom.NewPoint(t.Layout()).SetSRID(t.SRID()).SetCoords(c)
	case *geom.LineString:
		cs, err := transformCoords(pj, t.Coords())
		if err != nil {
			return nil, err
		}
		return geom.NewLineString(t.Layout()).SetSRID(t.SRID()).SetCoords(cs)
	case *geom.Polygon:
		rings := t.Coords()
		out := make([][]geom.Coord, len(rings))
		for i, r := range rings {
			cs, err := transformCoords(pj, r)
			if err != nil {
				return nil, err
			}
			out[i] = cs
		}
		return geom.NewPolygon(t.Layout()).SetSRID(t.SRID()).SetCoords(out)
	case *geom.MultiPoint:
		cs, err := transformCoords(pj, t.Coords())
		if err != nil {
			return nil, err
		}
		return geom.NewMultiPoint(t.Layout()).SetSRID(t.SRID()).SetCoords(cs)
	case *geom.MultiLineString:
		lines := t.Coords()
		out := make([][]geom.Coord, len(lines))
		for i, l := range lines {
			cs, err := transformCoords(pj, l)
			if err != nil {
				return nil, err
			}
			out[i] = cs
		}
		return geom.NewMultiLineString(t.Layout()).SetSRID(t.SRID()).SetCoords(out)
	case *geom.MultiPolygon:
		polys := t.Coords()
		out := make([][][]geom.Coord, len(polys))
		for i, p := range polys {
			rings := make([][]geom.Coord, len(p))
			for j, r := range p {
				cs, err := transformCoords(pj, r)
				if err != nil {
					return nil, err
				}
				rings[j] = cs
			}
			out[i] = rings
		}
		return geom.NewMultiPolygon(t.Layout()).SetSRID(t.SRID()).SetCoords(out)
	case *geom.GeometryCollection:
		gc := geom.NewGeometryCollection().SetSRID(t.SRID())
		for _, child := range t.Geoms() {
			c, err := transformGeomT(pj, child)
			if err != nil {
				return nil, err
			}
			if err := gc.Push(c); err != nil {
				return nil, err
			}
		}
		return gc, nil
	default:
		return nil, errors.Newf("geoproj: unsupported geometry type %T", t)
	}
}

func transformCoord(pj *proj.PJ, c geom.Coord) (geom.Coord, error) {
	x, y := c[0], c[1]
	var z float64
	if len(c) > 2 {
		z = c[2]
	}
	out, err := pj.Forward(proj.Coord{x, y, z, 0})
	if err != nil {
		return nil, err
	}
	res := make(geom.Coord, len(c))
	copy(res, c)
	res[0], res[1] = out[0], out[1]
	if len(res) > 2 {
		res[2] = out[2]
	}
	return res, nil
}

func transformCoords(pj *proj.PJ, cs []geom.Coord) ([]geom.Coord, error) {
	out := make([]geom.Coord, len(cs))
	for i, c := range cs {
		tc, err := transformCoord(pj, c)
		if err != nil {
			return nil, err
		}
		out[i] = tc
	}
	return out, nil
}

func setSRIDDeep(t geom.T, srid int) geom.T {
	switch t := t.(type) {
	case *geom.Point:
		t.SetSRID(srid)
	case *geom.LineString:
		t.SetSRID(srid)
	case *geom.Polygon:
		t.SetSRID(srid)
	case *geom.MultiPoint:
		t.SetSRID(srid)
	case *geom.MultiLineString:
		t.SetSRID(srid)
	case *geom.MultiPolygon:
		t.SetSRID(srid)
	case *geom.GeometryCollection:
		t.SetSRID(srid)
		for _, child := range t.Geoms() {
			setSRIDDeep(child, srid)
		}
	}
	return t
}

// Close releases the underlying PROJ context and every cached pipeline.
// It is safe to call once a Service is no longer needed, e.g. when a
// *sqlite3.SQLiteConn using it is closed.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.pipelines {
		if entry.pj != nil {
			entry.pj.Close()
		}
	}
	s.pjContext.Close()
}

// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package geoproj

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/sqlitegis/sqlitegis/pkg/geo"
	"github.com/sqlitegis/sqlitegis/pkg/geo/geopb"
)

func TestTransformSameSRIDIsNoOp(t *testing.T) {
	s, err := NewService(prometheus.NewRegistry())
	require.NoError(t, err)
	defer s.Close()

	g, err := geo.ParseEWKT("SRID=4326;POINT(139.69 35.68)")
	require.NoError(t, err)

	out, err := s.Transform(g, 4326)
	require.NoError(t, err)
	require.Equal(t, g.SRID(), out.SRID())
}

func TestTransformUnknownSRIDErrors(t *testing.T) {
	s, err := NewService(prometheus.NewRegistry())
	require.NoError(t, err)
	defer s.Close()

	g, err := geo.ParseEWKT("POINT(1 2)")
	require.NoError(t, err)

	_, err = s.Transform(g, geopb.SRID(3857))
	require.Error(t, err)
}

func TestFailedPipelineIsNotCached(t *testing.T) {
	s, err := NewService(prometheus.NewRegistry())
	require.NoError(t, err)
	defer s.Close()

	g, err := geo.ParseEWKT("SRID=999999;POINT(1 2)")
	require.NoError(t, err)

	_, err = s.Transform(g, 4326)
	require.Error(t, err)

	s.mu.Lock()
	_, ok := s.pipelines[pipelineKey{src: 999999, dst: 4326}]
	s.mu.Unlock()
	require.False(t, ok, "a failed pipeline build must not leave a cache entry")

	_, err = s.Transform(g, 4326)
	require.Error(t, err, "the retried build should fail again rather than panic on stale state")
}

func TestPipelineIsCachedAcrossCalls(t *testing.T) {
	s, err := NewService(prometheus.NewRegistry())
	require.NoError(t, err)
	defer s.Close()

	g, err := geo.ParseEWKT("SRID=4326;POINT(139.69 35.68)")
	require.NoError(t, err)

	_, err = s.Transform(g, 3857)
	require.NoError(t, err)
	_, err = s.Transform(g, 3857)
	require.NoError(t, err)

	s.mu.Lock()
	entry, ok := s.pipelines[pipelineKey{src: 4326, dst: 3857}]
	s.mu.Unlock()
	require.True(t, ok)
	require.Equal(t, pipelineReady, entry.state)
}

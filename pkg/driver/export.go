// Copyright 2025 The SqliteGIS Authors.
//
// Use of this software is governed by the Business Source License
// included in the file licenses/BSL.txt.
//
// As of the Change Date specified in that file, in accordance with
// the Business Source License, use of this software will be governed
// by the Apache License, Version 2.0, included in the file
// licenses/APL.txt.

package driver

import (
	"github.com/cockroachdb/errors"
	"github.com/lukeroth/gdal"
)

// ExportLayer writes every feature of l into a new dataset of the named
// GDAL driver (e.g. "ESRI Shapefile", "GeoJSON") at destPath, using
// github.com/lukeroth/gdal. This is the interchange path the original
// driver got for free by being a real OGR format driver: any
// GDAL-supported sink can consume a sqlitegis table once it is translated
// through GDAL's own Geometry/Feature/Layer types, the same round trip
// ogr2ogr would perform against the original's .so.
func ExportLayer(l *Layer, gdalDriverName, destPath string) error {
	drv, ok := gdal.OGRDriverByName(gdalDriverName)
	if !ok {
		return errors.Newf("driver: unknown GDAL driver %q", gdalDriverName)
	}
	ds, ok := drv.Create(destPath, nil)
	if !ok {
		return errors.Newf("driver: GDAL driver %q could not create %q", gdalDriverName, destPath)
	}
	defer ds.Destroy()

	sr := gdal.CreateSpatialReference("")
	if l.srid > 0 {
		if err := sr.FromEPSG(l.srid); err != nil {
			return errors.Wrapf(err, "driver: resolving SRID %d for export", l.srid)
		}
	}

	out, err := ds.CreateLayer(l.tableName, sr, gdal.GT_Unknown, nil)
	if err != nil {
		return errors.Wrapf(err, "driver: creating GDAL layer %q", l.tableName)
	}
	for _, fd := range l.fields {
		fieldDefn := gdal.CreateFieldDefinition(fd.Name, gdalFieldType(fd.Type))
		if err := out.CreateField(fieldDefn, true); err != nil {
			return errors.Wrapf(err, "driver: creating GDAL field %q", fd.Name)
		}
	}

	l.ResetReading()
	defer l.ResetReading()
	for {
		f, err := l.GetNextFeature()
		if err != nil {
			return err
		}
		if f == nil {
			break
		}
		if err := exportFeature(out, l.fields, f); err != nil {
			return err
		}
	}
	return nil
}

func gdalFieldType(t FieldType) gdal.FieldType {
	switch t {
	case FieldInteger:
		return gdal.FT_Integer
	case FieldReal:
		return gdal.FT_Real
	default:
		return gdal.FT_String
	}
}

func exportFeature(layer gdal.Layer, fields []FieldDefn, f *Feature) error {
	feature := layer.NewFeature(layer.Definition())
	defer feature.Destroy()

	if f.HasGeom {
		wkb, err := f.Geometry.AsBinary()
		if err != nil {
			return errors.Wrap(err, "driver: encoding feature geometry for export")
		}
		geom, err := gdal.CreateFromWKB(wkb, gdal.SpatialReference{}, len(wkb))
		if err != nil {
			return errors.Wrap(err, "driver: decoding exported geometry")
		}
		if err := feature.SetGeometry(geom); err != nil {
			return errors.Wrap(err, "driver: attaching exported geometry")
		}
	}
	for i, fd := range fields {
		v := f.Fields[fd.Name]
		switch fd.Type {
		case FieldInteger:
			if n, ok := v.(int64); ok {
				feature.SetFieldInteger(i, int(n))
			}
		case FieldReal:
			if r, ok := v.(float64); ok {
				feature.SetFieldFloat64(i, r)
			}
		default:
			if s, ok := v.(string); ok {
				feature.SetFieldString(i, s)
			}
		}
	}
	return layer.CreateFeature(feature)
}

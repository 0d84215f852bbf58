package export

import (
	"fmt"

	"github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"
)

// WriteShapefile writes the polygonal features of a feature collection to
// an ESRI shapefile at path (conventionally ending in .shp). Non-polygon
// features are skipped. Each record carries a NAME attribute taken from the
// feature's "name" property when present.
func WriteShapefile(path string, fc *geojson.FeatureCollection) error {
	if fc == nil {
		return eris.New("export: nil feature collection")
	}

	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		return eris.Wrap(err, "export: create shapefile")
	}
	defer w.Close()

	w.SetFields([]shp.Field{shp.StringField("NAME", 64)})

	var row int
	var skipped int
	for i, f := range fc.Features {
		name := featureName(f, i)

		switch g := f.Geometry.(type) {
		case *geom.Polygon:
			w.Write(polygonToShape(g))
			if err := w.WriteAttribute(row, 0, name); err != nil {
				return eris.Wrap(err, "export: write attribute")
			}
			row++
		case *geom.MultiPolygon:
			for j := 0; j < g.NumPolygons(); j++ {
				w.Write(polygonToShape(g.Polygon(j)))
				if err := w.WriteAttribute(row, 0, name); err != nil {
					return eris.Wrap(err, "export: write attribute")
				}
				row++
			}
		default:
			skipped++
		}
	}

	if skipped > 0 {
		zap.L().Warn("export: skipped non-polygon features",
			zap.String("path", path),
			zap.Int("skipped", skipped),
		)
	}
	if row == 0 {
		return eris.New("export: no polygonal features to write")
	}
	return nil
}

func featureName(f *geojson.Feature, index int) string {
	if v, ok := f.Properties["name"]; ok {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("feature_%d", index)
}

// polygonToShape flattens a go-geom polygon (rings of XY coordinates) into
// the part/point layout shapefiles use.
func polygonToShape(p *geom.Polygon) *shp.Polygon {
	var points []shp.Point
	var parts []int32

	for i := 0; i < p.NumLinearRings(); i++ {
		parts = append(parts, int32(len(points)))
		for _, c := range p.LinearRing(i).Coords() {
			points = append(points, shp.Point{X: c.X(), Y: c.Y()})
		}
	}

	return &shp.Polygon{
		Box:       boundingBox(points),
		NumParts:  int32(len(parts)),
		NumPoints: int32(len(points)),
		Parts:     parts,
		Points:    points,
	}
}

func boundingBox(points []shp.Point) shp.Box {
	if len(points) == 0 {
		return shp.Box{}
	}
	box := shp.Box{MinX: points[0].X, MinY: points[0].Y, MaxX: points[0].X, MaxY: points[0].Y}
	for _, pt := range points[1:] {
		if pt.X < box.MinX {
			box.MinX = pt.X
		}
		if pt.Y < box.MinY {
			box.MinY = pt.Y
		}
		if pt.X > box.MaxX {
			box.MaxX = pt.X
		}
		if pt.Y > box.MaxY {
			box.MaxY = pt.Y
		}
	}
	return box
}

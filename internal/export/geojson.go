// Package export writes Dotlas responses to notebook-adjacent formats:
// GeoJSON for mapping libraries, ESRI shapefiles for GIS tooling, XLSX for
// spreadsheets.
package export

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// WriteGeoJSON writes a feature collection to path, indented for human
// inspection.
func WriteGeoJSON(path string, fc *geojson.FeatureCollection) error {
	if fc == nil {
		return eris.New("export: nil feature collection")
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal geojson")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrap(err, "export: write geojson")
	}
	return nil
}

package block

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// PredefinedGeometry is a named disk-image size preset, e.g. a 1.44 MiB
// floppy. The bfs command's --preset flag uses it to size a missing or empty
// image file, so the caller does not have to compute a byte count by hand
// before the first "format"; it has no bearing on the on-disk format itself.
type PredefinedGeometry struct {
	Slug        string `csv:"slug"`
	Description string `csv:"description"`
	TotalBlocks uint32 `csv:"total_blocks"`
}

//go:embed geometries.csv
var rawPredefinedGeometries string

var predefinedGeometries map[string]PredefinedGeometry

func init() {
	predefinedGeometries = make(map[string]PredefinedGeometry)

	err := gocsv.UnmarshalToCallback(
		strings.NewReader(rawPredefinedGeometries),
		func(row PredefinedGeometry) error {
			if _, exists := predefinedGeometries[row.Slug]; exists {
				return fmt.Errorf("duplicate disk geometry preset %q", row.Slug)
			}
			predefinedGeometries[row.Slug] = row
			return nil
		},
	)
	if err != nil && err != io.EOF {
		panic(err)
	}
}

// GetPredefinedGeometry looks up a named disk-image size preset.
func GetPredefinedGeometry(slug string) (PredefinedGeometry, error) {
	geometry, ok := predefinedGeometries[slug]
	if !ok {
		return PredefinedGeometry{}, fmt.Errorf("no predefined disk geometry named %q", slug)
	}
	return geometry, nil
}

// PredefinedGeometrySlugs returns the names of all known presets, for use in
// help text.
func PredefinedGeometrySlugs() []string {
	slugs := make([]string, 0, len(predefinedGeometries))
	for slug := range predefinedGeometries {
		slugs = append(slugs, slug)
	}
	return slugs
}

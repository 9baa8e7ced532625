package campsite

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// SeedFile is the YAML layout accepted by Import.
//
//	campsites:
//	  - name: React Lake Campground
//	    image: images/react-lake.jpg
//	    featured: true
//	    description: Nestled in the foothills...
type SeedFile struct {
	Campsites []Campsite `yaml:"campsites"`
}

// ParseSeed decodes a campsite seed file.
func ParseSeed(r io.Reader) ([]Campsite, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return f.Campsites, nil
}

// Import upserts every campsite in the seed, keyed by name.
func (r *Repository) Import(seed []Campsite) ([]*Campsite, error) {
	saved := make([]*Campsite, 0, len(seed))
	for i := range seed {
		c, err := r.Upsert(&seed[i])
		if err != nil {
			return saved, fmt.Errorf("importing entry %d: %w", i, err)
		}
		saved = append(saved, c)
	}
	return saved, nil
}

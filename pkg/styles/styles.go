// Package styles loads the visual style palette used to steer image
// generation. The palette file groups styles by category (art style,
// composition, lighting, texture, color palette); each run picks one
// style per category at random to keep the gallery varied.
package styles

import (
	"math/rand"
	"os"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/yazelin/catime/pkg/errors"
)

// DefaultFile is the palette file name, relative to the working directory.
const DefaultFile = "styles.yaml"

// Style is one palette entry. ZH and EN name the style for the idea
// prompt; Prompt is the snippet merged into the image prompt.
type Style struct {
	ZH     string `yaml:"zh"`
	EN     string `yaml:"en"`
	Prompt string `yaml:"prompt"`
}

// Reference maps a category name to its candidate styles.
type Reference map[string][]Style

// Load reads a palette file. A missing file yields an empty reference;
// generation runs without style picks in that case.
func Load(path string) (Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Reference{}, nil
		}
		return nil, errors.WrapIO("read", path, err)
	}

	var ref Reference
	if err := yaml.Unmarshal(data, &ref); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return ref, nil
}

// Pick selects one random style per category. Categories are visited in
// sorted order so a seeded rng gives reproducible picks in tests.
func (r Reference) Pick(rng *rand.Rand) map[string]Style {
	if len(r) == 0 {
		return nil
	}

	categories := make([]string, 0, len(r))
	for category := range r {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	picks := make(map[string]Style, len(categories))
	for _, category := range categories {
		entries := r[category]
		if len(entries) == 0 {
			continue
		}
		picks[category] = entries[rng.Intn(len(entries))]
	}
	return picks
}

// Names returns the English names of the picked styles, keyed by
// category, for recording in the detail entry.
func Names(picks map[string]Style) map[string]string {
	if len(picks) == 0 {
		return nil
	}
	names := make(map[string]string, len(picks))
	for category, style := range picks {
		names[category] = style.EN
	}
	return names
}

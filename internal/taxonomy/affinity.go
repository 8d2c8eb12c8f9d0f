package taxonomy

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Affinity links an objective category to the sections that may claim its
// evidence. Primary affinity always wins over secondary; sections earlier in
// the taxonomy win ties.
type Affinity struct {
	Category  string `json:"category" validate:"required"`
	Primary   int    `json:"primary" validate:"required,min=1,max=12"`
	Secondary int    `json:"secondary,omitempty" validate:"omitempty,min=1,max=12"`
}

// AffinityConfig is the loadable affinity rule set.
type AffinityConfig struct {
	Affinities []Affinity `json:"affinities" validate:"required,min=1,dive"`
}

// DefaultAffinities mirrors the standard objectives-export categories.
func DefaultAffinities() *AffinityConfig {
	return &AffinityConfig{Affinities: []Affinity{
		{Category: "Engineering/Operation Excellence", Primary: 1, Secondary: 8},
		{Category: "Roadmap Delivery", Primary: 2, Secondary: 9},
		{Category: "Raising the Bar", Primary: 3, Secondary: 10},
		{Category: "Mentorship", Primary: 4, Secondary: 6},
		{Category: "Tech Initiatives", Primary: 5, Secondary: 7},
	}}
}

// LoadAffinities reads an affinity rule file and validates it structurally.
func LoadAffinities(path string) (*AffinityConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read affinity file %s: %w", path, err)
	}

	var cfg AffinityConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse affinity file %s: %w", path, err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid affinity config %s: %w", path, err)
	}

	return &cfg, nil
}

// SectionsFor returns the primary and secondary section numbers for a
// category. Unknown categories have no affinity and return (0, 0).
func (c *AffinityConfig) SectionsFor(category string) (primary, secondary int) {
	for _, a := range c.Affinities {
		if a.Category == category {
			return a.Primary, a.Secondary
		}
	}
	return 0, 0
}

package extraction

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Vocabulary is the keyword data the extractor matches against. It is data,
// not code: teams extend it with a JSON file instead of editing patterns.
type Vocabulary struct {
	Technologies []string `json:"technologies" validate:"required,min=1,dive,min=1"`
	Themes       []string `json:"themes" validate:"omitempty,dive,min=1"`
}

// DefaultVocabulary returns the built-in keyword set.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		Technologies: []string{
			"React Native", "MMKV", "Databricks", "Mixpanel", "AsyncStorage",
			"Fabric", "TurboModules", "Protobufs", "Crashlytics", "SDK",
			"DigiLocker", "Acko", "ZeptoLocker", "AETHER", "Horizon",
			"CleverTap", "AppsFlyer", "KNOW SDK", "HyperVerge", "Lucid",
			"ClickHouse", "Kafka", "LogChef", "Storybook", "Fresco",
			"pdfplumber", "native-stack", "KeyboardController",
			"PagerView", "Android", "iOS", "TypeScript", "JavaScript",
			"Python", "Node.js", "API", "JWT", "OAuth",
		},
		Themes: []string{
			"mentorship", "mentoring", "code review", "migration",
			"automation", "monitoring", "refactor", "documentation",
			"onboarding", "architecture", "upgrade", "optimization",
		},
	}
}

// LoadVocabulary reads a vocabulary JSON file and validates it structurally.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	var vocab Vocabulary
	if err := json.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file %s: %w", path, err)
	}

	if err := validator.New().Struct(&vocab); err != nil {
		return nil, fmt.Errorf("invalid vocabulary %s: %w", path, err)
	}

	return &vocab, nil
}

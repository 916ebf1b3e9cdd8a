package tier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type profilesFile struct {
	Tiers map[string]Profile `yaml:"tiers"`
}

// LoadProfiles reads tier overrides from a YAML file and merges them over the defaults.
// An empty path returns the defaults unchanged. Only tiers present in the file are replaced.
//
// Example:
//
//	tiers:
//	  fast:
//	    strategies: [vector, lexical]
//	    token_budget: 1200
//	    top_k: 6
//	    weights: {semantic: 0.6, lexical: 0.3, recency: 0.1}
//	    strategy_timeout: 300ms
//	    deadline: 600ms
func LoadProfiles(path string) (Profiles, error) {
	profiles := DefaultProfiles()
	if path == "" {
		return profiles, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tier profiles: %w", err)
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse tier profiles: %w", err)
	}

	for name, profile := range file.Tiers {
		t, err := Parse(name)
		if err != nil {
			return nil, fmt.Errorf("tier profiles: %w", err)
		}
		if err := profile.Validate(); err != nil {
			return nil, fmt.Errorf("tier %s: %w", t, err)
		}
		profiles[t] = profile
	}

	return profiles, nil
}

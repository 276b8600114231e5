package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TierThreshold is one cost floor of the tier fallback used for items without an explicit tier.
type TierThreshold struct {
	MinCost int `yaml:"min_cost"`
	Tier    int `yaml:"tier"`
}

type tierFile struct {
	Thresholds []TierThreshold `yaml:"thresholds"`
}

// LoadTierThresholds reads a YAML override of the cost-to-tier table:
//
//	thresholds:
//	  - {min_cost: 10000, tier: 5}
//	  - {min_cost: 6000, tier: 4}
func LoadTierThresholds(path string) ([]TierThreshold, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tier thresholds: %w", err)
	}
	return ParseTierThresholds(data)
}

func ParseTierThresholds(data []byte) ([]TierThreshold, error) {
	var f tierFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse tier thresholds: %w", err)
	}
	if len(f.Thresholds) == 0 {
		return nil, fmt.Errorf("tier thresholds: no entries")
	}
	for i, th := range f.Thresholds {
		if th.Tier < 1 || th.Tier > 5 {
			return nil, fmt.Errorf("tier thresholds: entry %d has tier %d outside 1-5", i, th.Tier)
		}
		if th.MinCost < 0 {
			return nil, fmt.Errorf("tier thresholds: entry %d has negative min_cost", i)
		}
		if i > 0 && th.MinCost >= f.Thresholds[i-1].MinCost {
			return nil, fmt.Errorf("tier thresholds: entry %d min_cost %d is not below %d", i, th.MinCost, f.Thresholds[i-1].MinCost)
		}
	}
	return f.Thresholds, nil
}

package monster

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gevornos/Life-is-RPG/internal/domain"
)

// Config is the monster template catalog loaded at startup.
type Config struct {
	Version   int                      `json:"version"`
	Templates []domain.MonsterTemplate `json:"templates"`
}

// Load reads and validates the template catalog from a JSON file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read monster config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse monster config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid monster config: %w", err)
	}
	return &cfg, nil
}

// Validate checks every template for usable ranges.
func (c *Config) Validate() error {
	if len(c.Templates) == 0 {
		return fmt.Errorf("no monster templates defined")
	}
	for i, tpl := range c.Templates {
		if tpl.Name == "" {
			return fmt.Errorf("template %d: name is required", i)
		}
		if tpl.MinHP <= 0 || tpl.MaxHP < tpl.MinHP {
			return fmt.Errorf("template %q: invalid hp range [%d, %d]", tpl.Name, tpl.MinHP, tpl.MaxHP)
		}
		if tpl.GoldMin < 0 || tpl.GoldMax < tpl.GoldMin {
			return fmt.Errorf("template %q: invalid gold range [%d, %d]", tpl.Name, tpl.GoldMin, tpl.GoldMax)
		}
		if tpl.XPMin < 0 || tpl.XPMax < tpl.XPMin {
			return fmt.Errorf("template %q: invalid xp range [%d, %d]", tpl.Name, tpl.XPMin, tpl.XPMax)
		}
		for _, attr := range tpl.Weakness {
			if !attr.IsValid() {
				return fmt.Errorf("template %q: unknown weakness attribute %q", tpl.Name, attr)
			}
		}
	}
	return nil
}

// Package catalog reads the event code, phase and aerodrome reference data
// that is seeded into Firestore.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/GregMSThompson/flight-events/internal/models"
)

//go:embed default.yaml
var defaultCatalog []byte

type Catalog struct {
	EventCodes []models.EventCode `yaml:"event_codes"`
	Phases     []models.Phase     `yaml:"phases"`
	Aerodromes []models.Aerodrome `yaml:"aerodromes"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog file. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks that ids and codes are present and unique and that every
// phase references known codes.
func (c *Catalog) Validate() error {
	ids := make(map[string]bool, len(c.EventCodes))
	codes := make(map[string]bool, len(c.EventCodes))
	for _, ec := range c.EventCodes {
		if ec.CodeID == "" || ec.Code == "" || ec.Name == "" {
			return errors.New("event code needs id, code and name")
		}
		if ids[ec.CodeID] {
			return fmt.Errorf("duplicate event code id %q", ec.CodeID)
		}
		if codes[ec.Code] {
			return fmt.Errorf("duplicate event code %q", ec.Code)
		}
		ids[ec.CodeID] = true
		codes[ec.Code] = true
	}

	phaseIDs := make(map[string]bool, len(c.Phases))
	for _, p := range c.Phases {
		if p.PhaseID == "" || p.Name == "" {
			return errors.New("phase needs id and name")
		}
		if phaseIDs[p.PhaseID] {
			return fmt.Errorf("duplicate phase id %q", p.PhaseID)
		}
		phaseIDs[p.PhaseID] = true
		if !codes[p.StartCode] || !codes[p.EndCode] {
			return fmt.Errorf("phase %q references unknown event code", p.Name)
		}
	}

	icaos := make(map[string]bool, len(c.Aerodromes))
	for _, a := range c.Aerodromes {
		if len(a.ICAO) != 4 {
			return fmt.Errorf("aerodrome %q needs a 4 letter ICAO identifier", a.Name)
		}
		if icaos[a.ICAO] {
			return fmt.Errorf("duplicate aerodrome %q", a.ICAO)
		}
		icaos[a.ICAO] = true
		if a.TZ != "" {
			if _, err := time.LoadLocation(a.TZ); err != nil {
				return fmt.Errorf("aerodrome %q: %w", a.ICAO, err)
			}
		}
	}
	return nil
}

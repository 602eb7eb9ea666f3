package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"

	"github.com/harven/cityforge/internal/models"
)

// BuildingJSON represents the JSON structure for a building definition
type BuildingJSON struct {
	BuildingType      string             `json:"building_type" validate:"required"`
	MaxLevel          int                `json:"max_level" validate:"min=1"`
	ConstructionCosts map[string]float64 `json:"construction_costs" validate:"dive,min=0"`
	BuildTicks        int                `json:"build_ticks" validate:"min=1"`
	Input             map[string]float64 `json:"input,omitempty" validate:"dive,min=0"`
	Output            map[string]float64 `json:"output,omitempty" validate:"dive,min=0"`
	RequiresDeposit   *string            `json:"requires_deposit,omitempty"`
}

// LoadBuildings loads building definitions from the JSON file
func LoadBuildings(dataDir string) (map[models.BuildingType]*models.BuildingDefinition, error) {
	filePath := filepath.Join(dataDir, "buildings.json")
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read buildings.json: %w", err)
	}

	var rawBuildings map[string]BuildingJSON
	if err := json.Unmarshal(data, &rawBuildings); err != nil {
		return nil, fmt.Errorf("failed to parse buildings.json: %w", err)
	}

	validate := validator.New()
	definitions := make(map[models.BuildingType]*models.BuildingDefinition)

	for name, raw := range rawBuildings {
		if raw.BuildingType == "" {
			raw.BuildingType = name
		}
		if err := validate.Struct(raw); err != nil {
			return nil, fmt.Errorf("invalid definition for %q: %w", name, err)
		}

		def := &models.BuildingDefinition{
			Type:              models.BuildingType(raw.BuildingType),
			MaxLevel:          raw.MaxLevel,
			ConstructionCosts: toStock(raw.ConstructionCosts),
			BuildTicks:        raw.BuildTicks,
			Input:             toStock(raw.Input),
			Output:            toStock(raw.Output),
		}
		if raw.RequiresDeposit != nil {
			deposit := models.ResourceType(*raw.RequiresDeposit)
			if !models.IsDeposit(deposit) {
				return nil, fmt.Errorf("invalid definition for %q: %q is not a deposit", name, deposit)
			}
			def.RequiresDeposit = &deposit
		}

		definitions[def.Type] = def
	}

	return definitions, nil
}

// LoadResourceValues loads base market values from resources.json
func LoadResourceValues(dataDir string) (map[models.ResourceType]float64, error) {
	filePath := filepath.Join(dataDir, "resources.json")
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read resources.json: %w", err)
	}

	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse resources.json: %w", err)
	}

	values := make(map[models.ResourceType]float64, len(raw))
	for name, value := range raw {
		if value <= 0 {
			return nil, fmt.Errorf("resource %q has non-positive value %v", name, value)
		}
		values[models.ResourceType(name)] = value
	}

	return values, nil
}

func toStock(raw map[string]float64) models.ResourceStock {
	stock := make(models.ResourceStock, len(raw))
	for name, amount := range raw {
		if amount > 0 {
			stock[models.ResourceType(name)] = amount
		}
	}
	return stock
}

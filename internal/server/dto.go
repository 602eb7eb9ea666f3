package server

import (
	"math"

	"github.com/harven/cityforge/internal/grid"
	"github.com/harven/cityforge/internal/models"
	"github.com/harven/cityforge/internal/sim"
)

// BuildingResponse is the wire form of a building. MaxInputDistance is
// omitted when unbounded so the body stays valid JSON.
type BuildingResponse struct {
	ID                   string             `json:"id"`
	Type                 string             `json:"type"`
	Level                int                `json:"level"`
	DesiredLevel         int                `json:"desired_level"`
	Status               string             `json:"status"`
	Position             string             `json:"position"`
	Resources            map[string]float64 `json:"resources,omitempty"`
	Capacity             float64            `json:"capacity"`
	StockpileCapacity    float64            `json:"stockpile_capacity"`
	StockpileMax         float64            `json:"stockpile_max"`
	ProductionPriority   int                `json:"production_priority"`
	ConstructionPriority int                `json:"construction_priority"`
	Electrification      int                `json:"electrification,omitempty"`
	InputMode            string             `json:"input_mode"`
	SuspendedInputs      []string           `json:"suspended_inputs,omitempty"`
	MaxInputDistance     *float64           `json:"max_input_distance,omitempty"`
}

// CityResponse is the wire form of a full city snapshot
type CityResponse struct {
	Tick      int                `json:"tick"`
	MapSize   int                `json:"map_size"`
	WarpBank  float64            `json:"warp_bank"`
	Buildings []BuildingResponse `json:"buildings"`
	Deposits  []TileDeposits     `json:"deposits,omitempty"`
}

// TileDeposits lists the deposit types on one tile
type TileDeposits struct {
	Position  string   `json:"position"`
	Resources []string `json:"resources"`
}

func buildingResponse(b *models.Building, p grid.Point) BuildingResponse {
	resp := BuildingResponse{
		ID:                   b.ID.String(),
		Type:                 string(b.Type),
		Level:                b.Level,
		DesiredLevel:         b.DesiredLevel,
		Status:               string(b.Status),
		Position:             p.String(),
		Capacity:             b.Capacity,
		StockpileCapacity:    b.StockpileCapacity,
		StockpileMax:         b.StockpileMax,
		ProductionPriority:   b.ProductionPriority,
		ConstructionPriority: b.ConstructionPriority,
		Electrification:      b.Electrification,
		InputMode:            string(b.InputMode),
	}
	if len(b.Resources) > 0 {
		resp.Resources = make(map[string]float64, len(b.Resources))
		for rt, amount := range b.Resources {
			resp.Resources[string(rt)] = amount
		}
	}
	for _, rt := range models.AllResourceTypes() {
		if b.SuspendedInputs[rt] {
			resp.SuspendedInputs = append(resp.SuspendedInputs, string(rt))
		}
	}
	if !math.IsInf(b.MaxInputDistance, 1) {
		d := b.MaxInputDistance
		resp.MaxInputDistance = &d
	}
	return resp
}

func cityResponse(s *sim.State) CityResponse {
	resp := CityResponse{
		Tick:     s.Tick,
		MapSize:  s.Map.Size,
		WarpBank: s.WarpBank,
	}
	for _, p := range s.Map.SortedPoints() {
		tile := s.Map.At(p)
		if tile.Occupied() {
			resp.Buildings = append(resp.Buildings, buildingResponse(s.Buildings[tile.Building], p))
		}
		if len(tile.Deposits) == 0 {
			continue
		}
		td := TileDeposits{Position: p.String()}
		for _, rt := range models.AllDeposits() {
			if tile.Deposits[rt] {
				td.Resources = append(td.Resources, string(rt))
			}
		}
		resp.Deposits = append(resp.Deposits, td)
	}
	if resp.Buildings == nil {
		resp.Buildings = []BuildingResponse{}
	}
	return resp
}

// PlaceBuildingRequest is the body of POST /api/buildings. Optional fields
// follow the factory's descriptor semantics: absent means default.
type PlaceBuildingRequest struct {
	Type string `json:"type" validate:"required"`
	X    int    `json:"x"`
	Y    int    `json:"y"`

	DesiredLevel         *int     `json:"desired_level,omitempty"`
	Capacity             *float64 `json:"capacity,omitempty"`
	StockpileCapacity    *float64 `json:"stockpile_capacity,omitempty"`
	StockpileMax         *float64 `json:"stockpile_max,omitempty"`
	ProductionPriority   *int     `json:"production_priority,omitempty"`
	ConstructionPriority *int     `json:"construction_priority,omitempty"`
	InputMode            string   `json:"input_mode,omitempty"`
	SuspendedInputs      []string `json:"suspended_inputs,omitempty"`
	MaxInputDistance     *float64 `json:"max_input_distance,omitempty"`
}

func (req *PlaceBuildingRequest) descriptor() models.Descriptor {
	d := models.Descriptor{
		Type:                 models.BuildingType(req.Type),
		DesiredLevel:         req.DesiredLevel,
		Capacity:             req.Capacity,
		StockpileCapacity:    req.StockpileCapacity,
		StockpileMax:         req.StockpileMax,
		ProductionPriority:   req.ProductionPriority,
		ConstructionPriority: req.ConstructionPriority,
		InputMode:            models.InputMode(req.InputMode),
		MaxInputDistance:     req.MaxInputDistance,
	}
	for _, rt := range req.SuspendedInputs {
		d.SuspendedInputs = append(d.SuspendedInputs, models.ResourceType(rt))
	}
	return d
}

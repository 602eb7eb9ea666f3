package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/harven/cityforge/internal/grid"
	"github.com/harven/cityforge/internal/models"
	"github.com/harven/cityforge/internal/sim"
)

// Routes wires the HTTP API onto a running simulation
type Routes struct {
	runner   *sim.Runner
	cities   map[string]grid.CityLayout
	current  string
	validate *validator.Validate
}

func NewRoutes(runner *sim.Runner, cities map[string]grid.CityLayout, currentCity string) *Routes {
	return &Routes{
		runner:   runner,
		cities:   cities,
		current:  currentCity,
		validate: validator.New(),
	}
}

func (rt *Routes) Setup() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", rt.handleHealth)
	mux.HandleFunc("GET /api/city", rt.handleCity)
	mux.HandleFunc("GET /api/buildings", rt.handleListBuildings)
	mux.HandleFunc("GET /api/buildings/{id}", rt.handleGetBuilding)
	mux.HandleFunc("POST /api/buildings", rt.handlePlaceBuilding)
	mux.HandleFunc("DELETE /api/buildings/{id}", rt.handleDemolishBuilding)
	mux.HandleFunc("GET /api/deposits/{resource}", rt.handleDepositCount)
	mux.HandleFunc("POST /api/catchup", rt.handleCatchUp)

	slog.Info("Routes configured",
		"endpoints", []string{"/api/health", "/api/city", "/api/buildings", "/api/deposits", "/api/catchup"},
	)
	return mux
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Tick      int    `json:"tick"`
	Buildings int    `json:"buildings"`
}

func (rt *Routes) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := rt.runner.Snapshot()
	respond(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Tick:      snap.Tick,
		Buildings: len(snap.Buildings),
	})
}

func (rt *Routes) handleCity(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, cityResponse(rt.runner.Snapshot()))
}

func (rt *Routes) handleListBuildings(w http.ResponseWriter, r *http.Request) {
	city := cityResponse(rt.runner.Snapshot())
	respond(w, http.StatusOK, city.Buildings)
}

func (rt *Routes) handleGetBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Errorf("invalid building id: %w", err))
		return
	}

	snap := rt.runner.Snapshot()
	b := snap.Building(id)
	if b == nil {
		respondError(w, r, http.StatusNotFound, fmt.Errorf("building %s not found", id))
		return
	}
	respond(w, http.StatusOK, buildingResponse(b, snap.Positions[id]))
}

func (rt *Routes) handlePlaceBuilding(w http.ResponseWriter, r *http.Request) {
	var req PlaceBuildingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := rt.validate.Struct(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	var resp BuildingResponse
	err := rt.runner.Do(func(e *sim.Engine, s *sim.State) error {
		p := grid.Point{X: req.X, Y: req.Y}
		b, err := e.Place(s, req.descriptor(), p)
		if err != nil {
			return err
		}
		resp = buildingResponse(b, p)
		return nil
	})
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err)
		return
	}
	respond(w, http.StatusCreated, resp)
}

func (rt *Routes) handleDemolishBuilding(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Errorf("invalid building id: %w", err))
		return
	}

	found := false
	_ = rt.runner.Do(func(e *sim.Engine, s *sim.State) error {
		found = s.Demolish(id)
		return nil
	})
	if !found {
		respondError(w, r, http.StatusNotFound, fmt.Errorf("building %s not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type depositCountResponse struct {
	City     string `json:"city"`
	Resource string `json:"resource"`
	Tiles    int    `json:"tiles"`
}

func (rt *Routes) handleDepositCount(w http.ResponseWriter, r *http.Request) {
	resource := models.ResourceType(r.PathValue("resource"))
	if !models.IsDeposit(resource) {
		respondError(w, r, http.StatusBadRequest, fmt.Errorf("%q is not a deposit resource", resource))
		return
	}

	city := rt.current
	if q := r.URL.Query().Get("city"); q != "" {
		city = q
	}
	respond(w, http.StatusOK, depositCountResponse{
		City:     city,
		Resource: string(resource),
		Tiles:    grid.DepositTileCount(resource, rt.cities, city),
	})
}

type catchUpRequest struct {
	ElapsedTicks int `json:"elapsed_ticks" validate:"min=1"`
}

type catchUpResponse struct {
	Tick     int     `json:"tick"`
	WarpBank float64 `json:"warp_bank"`
}

func (rt *Routes) handleCatchUp(w http.ResponseWriter, r *http.Request) {
	var req catchUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if err := rt.validate.Struct(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, fmt.Errorf("elapsed_ticks must be at least 1: %w", err))
		return
	}

	var resp catchUpResponse
	_ = rt.runner.Do(func(e *sim.Engine, s *sim.State) error {
		e.CatchUp(s, req.ElapsedTicks)
		resp = catchUpResponse{Tick: s.Tick, WarpBank: s.WarpBank}
		return nil
	})
	respond(w, http.StatusOK, resp)
}

package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	carrierCommands "github.com/andrescamacho/colonial-go/internal/application/carrier/commands"
	carrierQueries "github.com/andrescamacho/colonial-go/internal/application/carrier/queries"
	"github.com/andrescamacho/colonial-go/internal/application/markets"
	"github.com/andrescamacho/colonial-go/internal/application/mediator"
	projectCommands "github.com/andrescamacho/colonial-go/internal/application/project/commands"
	projectQueries "github.com/andrescamacho/colonial-go/internal/application/project/queries"
	"github.com/andrescamacho/colonial-go/internal/domain/cargo"
	"github.com/andrescamacho/colonial-go/internal/domain/commodity"
	"github.com/andrescamacho/colonial-go/internal/domain/market"
	"github.com/andrescamacho/colonial-go/internal/domain/page"
	"github.com/andrescamacho/colonial-go/internal/domain/project"
	"github.com/andrescamacho/colonial-go/internal/domain/shared"
)

// RouteResponse is a parsed URL fragment and its canonical form
type RouteResponse struct {
	Route    page.Route `json:"route"`
	Fragment string     `json:"fragment"`
}

// MarketSearchRequest is the body of POST /api/projects/{buildId}/markets
type MarketSearchRequest struct {
	Criteria  market.Criteria `json:"criteria"`
	Source    string          `json:"source,omitempty"`
	Column    string          `json:"column,omitempty"`
	Ascending bool            `json:"ascending,omitempty"`
}

// DeliverRequest is the body of POST /api/projects/{buildId}/deliver
type DeliverRequest struct {
	Cmdr  string    `json:"cmdr,omitempty"`
	Cargo cargo.Map `json:"cargo"`
}

// CargoDeltaRequest is the body of POST /api/carriers/{marketId}/cargo
type CargoDeltaRequest struct {
	Delta cargo.Map `json:"delta"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	route := page.Parse(r.URL.Query().Get("hash"))
	writeJSON(w, http.StatusOK, RouteResponse{Route: route, Fragment: route.Format()})
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	recent, _ := strconv.ParseBool(q.Get("recent"))
	resp, err := mediator.Send[*projectQueries.ListProjectsResponse](r.Context(), s.mediator,
		&projectQueries.ListProjectsQuery{SystemName: q.Get("system"), Cmdr: q.Get("cmdr"), Recent: recent})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var draft project.Draft
	if err := decodeJSON(w, r, &draft); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := mediator.Send[*projectCommands.CreateProjectResponse](r.Context(), s.mediator,
		&projectCommands.CreateProjectCommand{Draft: draft})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) cargoGrid(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := &projectQueries.GetCargoGridQuery{
		BuildID:         chi.URLParam(r, "buildId"),
		IncludeCarriers: true,
	}
	if v := q.Get("sort"); v != "" {
		mode, ok := commodity.ParseSortMode(v)
		if !ok {
			writeError(w, r, shared.NewValidationError("sort", "unknown sort mode "+strconv.Quote(v)))
			return
		}
		query.SortMode = mode
	} else if s.prefs != nil {
		ui, err := s.prefs.UI(r.Context())
		if err != nil {
			writeError(w, r, fmt.Errorf("failed to read preferences: %w", err))
			return
		}
		query.SortMode = ui.CargoSort
	}
	if v := q.Get("fc"); v != "" {
		query.IncludeCarriers, _ = strconv.ParseBool(v)
	}
	query.AllowStale, _ = strconv.ParseBool(q.Get("stale"))

	resp, err := mediator.Send[*projectQueries.GetCargoGridResponse](r.Context(), s.mediator, query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) projectStats(w http.ResponseWriter, r *http.Request) {
	resp, err := mediator.Send[*projectQueries.GetProjectStatsResponse](r.Context(), s.mediator,
		&projectQueries.GetProjectStatsQuery{BuildID: chi.URLParam(r, "buildId")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) cachedMarkets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	column, ok := market.ParseColumn(q.Get("sort"))
	if !ok {
		writeError(w, r, shared.NewValidationError("sort", "unknown column "+strconv.Quote(q.Get("sort"))))
		return
	}
	asc, _ := strconv.ParseBool(q.Get("asc"))
	s.findMarkets(w, r, &markets.FindMarketsQuery{
		BuildID:   chi.URLParam(r, "buildId"),
		Column:    column,
		Ascending: asc,
		UseCached: true,
	})
}

func (s *Server) searchMarkets(w http.ResponseWriter, r *http.Request) {
	var req MarketSearchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	column, ok := market.ParseColumn(req.Column)
	if !ok {
		writeError(w, r, shared.NewValidationError("column", "unknown column "+strconv.Quote(req.Column)))
		return
	}
	s.findMarkets(w, r, &markets.FindMarketsQuery{
		BuildID:   chi.URLParam(r, "buildId"),
		Criteria:  req.Criteria,
		Column:    column,
		Ascending: req.Ascending,
		Source:    req.Source,
	})
}

func (s *Server) findMarkets(w http.ResponseWriter, r *http.Request, query *markets.FindMarketsQuery) {
	resp, err := mediator.Send[*markets.FindMarketsResponse](r.Context(), s.mediator, query)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) deliver(w http.ResponseWriter, r *http.Request) {
	var req DeliverRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := mediator.Send[*projectCommands.DeliverCargoResponse](r.Context(), s.mediator,
		&projectCommands.DeliverCargoCommand{BuildID: chi.URLParam(r, "buildId"), Cmdr: req.Cmdr, Cargo: req.Cargo})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) live(w http.ResponseWriter, r *http.Request) {
	s.hub.Serve(w, r, chi.URLParam(r, "buildId"))
}

func (s *Server) carrier(w http.ResponseWriter, r *http.Request) {
	marketID, err := marketIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := mediator.Send[*carrierQueries.GetCarrierResponse](r.Context(), s.mediator,
		&carrierQueries.GetCarrierQuery{MarketID: marketID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) updateCarrierCargo(w http.ResponseWriter, r *http.Request) {
	marketID, err := marketIDParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req CargoDeltaRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := mediator.Send[*carrierCommands.UpdateCarrierCargoResponse](r.Context(), s.mediator,
		&carrierCommands.UpdateCarrierCargoCommand{MarketID: marketID, Delta: req.Delta})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func marketIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "marketId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, shared.NewValidationError("marketId", "market id must be a positive number")
	}
	return id, nil
}

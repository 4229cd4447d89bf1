package handlers

import (
	"net/http"

	"github.com/ndewijer/Show-Ledger-Backend/internal/api/response"
	"github.com/ndewijer/Show-Ledger-Backend/internal/service"
)

// DashboardHandler serves the read-only overview and the consistency audit.
type DashboardHandler struct {
	dashboardService *service.DashboardService
	auditService     *service.AuditService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService, auditService *service.AuditService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		auditService:     auditService,
	}
}

// Overview handles GET requests for the owner's cash balance with lot and show rollups.
//
// Endpoint: GET /api/dashboard
// Response: 200 OK with Overview
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.dashboardService.Overview(r.Context(), ownerID(r))
	if err != nil {
		respondServiceError(w, "failed to build overview", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, overview)
}

// Consistency handles GET requests to audit the owner's ledger on demand.
//
// Endpoint: GET /api/audit/consistency
// Response: 200 OK with AuditReport
func (h *DashboardHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.auditService.Audit(r.Context(), ownerID(r))
	if err != nil {
		respondServiceError(w, "failed to audit ledger", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

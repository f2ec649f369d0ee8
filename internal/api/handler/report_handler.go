package handler

import (
	"encoding/json"
	"net/http"

	"crackthechain/internal/api/middleware"
	"crackthechain/internal/app/service"
	"crackthechain/internal/common"

	"github.com/go-chi/chi/v5"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/project/{projectId}/published", h.publishedByProject)
	r.Get("/{id}", h.getReport)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/", h.createReport)
		authed.Get("/user", h.myReports)
		authed.Patch("/{id}", h.updateReport)
		authed.Delete("/{id}", h.deleteReport)
		authed.Post("/{id}/restore", h.restoreReport)
		authed.Post("/{id}/publish", h.publishReport)
		authed.Post("/{id}/unpublish", h.unpublishReport)
	})
}

func (h *ReportHandler) createReport(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondError(w, common.ErrUnauthorized)
		return
	}

	var req service.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	report, err := h.reportService.Create(r.Context(), uid, req)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusCreated, report, "Report created successfully")
}

func (h *ReportHandler) myReports(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondError(w, common.ErrUnauthorized)
		return
	}
	page, limit := parsePagination(r)

	result, err := h.reportService.ByUser(r.Context(), uid, page, limit)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if result == nil {
		common.RespondNotFound(w, "User not found")
		return
	}
	common.Respond(w, http.StatusOK, result, "Reports fetched successfully")
}

func (h *ReportHandler) publishedByProject(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	result, err := h.reportService.PublishedByProject(r.Context(), chi.URLParam(r, "projectId"), page, limit)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if result == nil {
		common.RespondNotFound(w, "Project not found")
		return
	}
	common.Respond(w, http.StatusOK, result, "Reports fetched successfully")
}

func (h *ReportHandler) getReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if report == nil {
		common.RespondNotFound(w, "Report not found")
		return
	}
	common.Respond(w, http.StatusOK, report, "Report fetched successfully")
}

func (h *ReportHandler) updateReport(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	report, err := h.reportService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if report == nil {
		common.RespondNotFound(w, "Report not found")
		return
	}
	common.Respond(w, http.StatusOK, report, "Report updated successfully")
}

func (h *ReportHandler) deleteReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if report == nil {
		common.RespondNotFound(w, "Report not found")
		return
	}
	common.Respond(w, http.StatusOK, report, "Report deleted successfully")
}

func (h *ReportHandler) restoreReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.Restore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if report == nil {
		common.RespondNotFound(w, "Report not found")
		return
	}
	common.Respond(w, http.StatusOK, report, "Report restored successfully")
}

func (h *ReportHandler) publishReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.Publish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if report == nil {
		common.RespondNotFound(w, "Report not found")
		return
	}
	common.Respond(w, http.StatusOK, report, "Report published successfully")
}

func (h *ReportHandler) unpublishReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportService.Unpublish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if report == nil {
		common.RespondNotFound(w, "Report not found")
		return
	}
	common.Respond(w, http.StatusOK, report, "Report unpublished successfully")
}

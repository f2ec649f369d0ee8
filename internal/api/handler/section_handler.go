package handler

import (
	"encoding/json"
	"net/http"

	"crackthechain/internal/api/middleware"
	"crackthechain/internal/app/service"
	"crackthechain/internal/common"

	"github.com/go-chi/chi/v5"
)

type SectionHandler struct {
	sectionService *service.SectionService
}

func NewSectionHandler(sectionService *service.SectionService) *SectionHandler {
	return &SectionHandler{sectionService: sectionService}
}

// RegisterRoutes uses a single {id} param for both project-scoped and
// section-scoped routes; chi requires the same name at a given segment.
func (h *SectionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{id}/sections", h.listByProject)
	r.Get("/{id}/assets", h.listAssets)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/{id}/sections", h.createSection)
		authed.Patch("/{id}", h.updateSection)
		authed.Delete("/{id}", h.deleteSection)
		authed.Post("/{id}/restore", h.restoreSection)
		authed.Post("/{id}/change-rank", h.changeRank)
	})
}

func (h *SectionHandler) listByProject(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	result, err := h.sectionService.ListByProject(r.Context(), chi.URLParam(r, "id"), page, limit)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, result, "Sections fetched successfully")
}

func (h *SectionHandler) listAssets(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	result, err := h.sectionService.ListAssets(r.Context(), chi.URLParam(r, "id"), page, limit)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, result, "Assets fetched successfully")
}

func (h *SectionHandler) createSection(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	section, err := h.sectionService.Create(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusCreated, section, "Section created successfully")
}

func (h *SectionHandler) updateSection(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	section, err := h.sectionService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if section == nil {
		common.RespondNotFound(w, "Section not found")
		return
	}
	common.Respond(w, http.StatusOK, section, "Section updated successfully")
}

func (h *SectionHandler) deleteSection(w http.ResponseWriter, r *http.Request) {
	section, err := h.sectionService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if section == nil {
		common.RespondNotFound(w, "Section not found")
		return
	}
	common.Respond(w, http.StatusOK, section, "Section deleted successfully")
}

func (h *SectionHandler) restoreSection(w http.ResponseWriter, r *http.Request) {
	section, err := h.sectionService.Restore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if section == nil {
		common.RespondNotFound(w, "Section not found")
		return
	}
	common.Respond(w, http.StatusOK, section, "Section restored successfully")
}

func (h *SectionHandler) changeRank(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	swap, err := h.sectionService.ChangeRank(r.Context(), chi.URLParam(r, "id"), req.Direction)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if swap == nil {
		common.RespondNotFound(w, "Section not found")
		return
	}
	common.Respond(w, http.StatusOK, swap, "Section rank changed successfully")
}

package handler

import (
	"encoding/json"
	"net/http"

	"crackthechain/internal/api/middleware"
	"crackthechain/internal/app/service"
	"crackthechain/internal/common"

	"github.com/go-chi/chi/v5"
)

type ProjectHandler struct {
	projectService *service.ProjectService
}

func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listProjects)
	r.Get("/published", h.listPublished)
	r.Get("/published/dropdown", h.publishedDropdown)
	r.Get("/{id}", h.getProject)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Post("/", h.createProject)
		authed.Patch("/{id}", h.updateProject)
		authed.Delete("/{id}", h.deleteProject)
		authed.Post("/{id}/restore", h.restoreProject)
		authed.Post("/{id}/publish", h.publishProject)
		authed.Post("/{id}/unpublish", h.unpublishProject)
	})
}

// isProjectFromQuery maps the type query param onto the isProject flag;
// anything other than "program" means project.
func isProjectFromQuery(r *http.Request) bool {
	return r.URL.Query().Get("type") != "program"
}

func (h *ProjectHandler) listProjects(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	result, err := h.projectService.List(r.Context(), isProjectFromQuery(r), page, limit)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, result, "Projects fetched successfully")
}

func (h *ProjectHandler) listPublished(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePagination(r)

	projects, err := h.projectService.ListPublished(r.Context(), isProjectFromQuery(r), page, limit)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, projects, "Published projects fetched successfully")
}

func (h *ProjectHandler) publishedDropdown(w http.ResponseWriter, r *http.Request) {
	options, err := h.projectService.PublishedDropdown(r.Context())
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusOK, options, "Published projects fetched successfully")
}

func (h *ProjectHandler) getProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if project == nil {
		common.RespondNotFound(w, "Project not found")
		return
	}
	common.Respond(w, http.StatusOK, project, "Project details fetched successfully")
}

func (h *ProjectHandler) createProject(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	project, err := h.projectService.Create(r.Context(), req)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	common.Respond(w, http.StatusCreated, project, "Project created successfully")
}

func (h *ProjectHandler) updateProject(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, common.ValidationError("Invalid request payload: "+err.Error()))
		return
	}

	project, err := h.projectService.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if project == nil {
		common.RespondNotFound(w, "Project not found")
		return
	}
	common.Respond(w, http.StatusOK, project, "Project updated successfully")
}

func (h *ProjectHandler) deleteProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if project == nil {
		common.RespondNotFound(w, "Project not found")
		return
	}
	common.Respond(w, http.StatusOK, project, "Project deleted successfully")
}

func (h *ProjectHandler) restoreProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.Restore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if project == nil {
		common.RespondNotFound(w, "Project not found")
		return
	}
	common.Respond(w, http.StatusOK, project, "Project restored successfully")
}

func (h *ProjectHandler) publishProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.Publish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if project == nil {
		common.RespondNotFound(w, "Project not found")
		return
	}
	common.Respond(w, http.StatusOK, project, "Project published successfully")
}

func (h *ProjectHandler) unpublishProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.Unpublish(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.RespondError(w, err)
		return
	}
	if project == nil {
		common.RespondNotFound(w, "Project not found")
		return
	}
	common.Respond(w, http.StatusOK, project, "Project unpublished successfully")
}

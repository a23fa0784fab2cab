package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Chandanpatidar24/Project-Management/middleware"
	"github.com/Chandanpatidar24/Project-Management/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProjectHandler struct {
	service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// callerID extracts the authenticated caller identity placed in the request
// context by the JWT middleware.
func callerID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, ok := middleware.CallerIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathID parses a hex ObjectID path variable.
func pathID(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)[name])
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid ID format")
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Deadline    string `json:"deadline"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	project, err := h.service.CreateProject(r.Context(), caller, req.Title, req.Description, req.Deadline)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, project)
}

func (h *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	projects, err := h.service.GetProjects(r.Context(), caller)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	project, err := h.service.GetProjectByID(r.Context(), caller, projectID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var patch services.ProjectPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	project, err := h.service.UpdateProject(r.Context(), caller, projectID, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProject(r.Context(), caller, projectID); err != nil {
		respondError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Project removed")
}

func (h *ProjectHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	// The email field also accepts a username.
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	project, err := h.service.AddMember(r.Context(), caller, projectID, req.Email)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, project)
}

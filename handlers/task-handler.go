package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Chandanpatidar24/Project-Management/services"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var in services.CreateTaskInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.service.CreateTask(r.Context(), caller, in)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) GetTasksByProject(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	projectID, ok := pathID(w, r, "projectId")
	if !ok {
		return
	}

	tasks, err := h.service.GetTasksByProject(r.Context(), caller, projectID)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetAssignedTasks(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	tasks, err := h.service.GetAssignedTasks(r.Context(), caller)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var patch services.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.service.UpdateTask(r.Context(), caller, taskID, patch)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTask(r.Context(), caller, taskID); err != nil {
		respondError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Task removed")
}

func (h *TaskHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}
	taskID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	task, err := h.service.AddComment(r.Context(), caller, taskID, req.Text)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

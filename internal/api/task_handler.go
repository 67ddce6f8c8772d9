package api

import (
	"net/http"

	"github.com/n0secutiry/taskapi/internal/api/shared"
	"github.com/n0secutiry/taskapi/internal/service"
)

// TaskHandler serves the task endpoints. Each route reports service
// failures with its own status: reads use 404, writes use 409.
type TaskHandler struct {
	tasks service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(tasks service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ListAll handles GET /all_task.
func (h *TaskHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.List(r.Context())
	if err != nil {
		h.fail(w, r, err, http.StatusNotFound)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// Get handles GET /task/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		h.fail(w, r, err, http.StatusNotFound)
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, http.StatusNotFound)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Create handles POST /create.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	task, err := h.tasks.Create(r.Context(), req.Name, *req.Task)
	if err != nil {
		h.fail(w, r, err, http.StatusConflict)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PUT /update/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		h.fail(w, r, err, http.StatusConflict)
		return
	}

	var req TaskRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	task, err := h.tasks.Update(r.Context(), id, req.Name, *req.Task)
	if err != nil {
		h.fail(w, r, err, http.StatusConflict)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /delete/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		h.fail(w, r, err, http.StatusConflict)
		return
	}

	confirmation, err := h.tasks.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, http.StatusConflict)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, confirmation)
}

func (h *TaskHandler) fail(w http.ResponseWriter, r *http.Request, err error, failure int) {
	status := routeFailureStatus(err, failure)
	// Unexpected errors get WARN even though the route answers with a 4xx.
	if MapErrorToStatusCode(err) == http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, shared.WithElevatedLogLevel())
		return
	}
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avkhasev/tasktrack/internal/logger"
	"github.com/avkhasev/tasktrack/internal/utils"
	"github.com/avkhasev/tasktrack/models"
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSON(w, errResponse{Error: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	var req models.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, errResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	task, err := h.services.TaskService.CreateTask(ctx, ownerID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusCreated)
}

func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSON(w, errResponse{Error: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	filter, err := taskFilterFromQuery(r)
	if err != nil {
		log.Err(err).Msg("invalid list filter")
		utils.WriteJSON(w, errResponse{Error: err.Error()}, http.StatusBadRequest)
		return
	}

	tasks, err := h.services.TaskService.ListTasks(ctx, ownerID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSON(w, errResponse{Error: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	taskID, err := taskIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid task id")
		utils.WriteJSON(w, errResponse{Error: "invalid task id"}, http.StatusBadRequest)
		return
	}

	task, err := h.services.TaskService.GetTask(ctx, ownerID, taskID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSON(w, errResponse{Error: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	taskID, err := taskIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid task id")
		utils.WriteJSON(w, errResponse{Error: "invalid task id"}, http.StatusBadRequest)
		return
	}

	var upd models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, errResponse{Error: "invalid JSON was passed"}, http.StatusBadRequest)
		return
	}

	task, err := h.services.TaskService.UpdateTask(ctx, ownerID, taskID, upd)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSON(w, errResponse{Error: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	taskID, err := taskIDFromURL(r)
	if err != nil {
		log.Err(err).Msg("invalid task id")
		utils.WriteJSON(w, errResponse{Error: "invalid task id"}, http.StatusBadRequest)
		return
	}

	if err := h.services.TaskService.DeleteTask(ctx, ownerID, taskID); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) taskStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	ownerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		log.Error().Msg("no user id in request context")
		utils.WriteJSON(w, errResponse{Error: http.StatusText(http.StatusUnauthorized)}, http.StatusUnauthorized)
		return
	}

	stats, err := h.services.TaskService.Stats(ctx, ownerID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, stats, http.StatusOK)
}

// taskIDFromURL parses the {taskID} route parameter as a base-10 int64.
func taskIDFromURL(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
}

// taskFilterFromQuery builds a listing filter from the optional "completed"
// and "priority" query parameters. Absent parameters leave the corresponding
// filter field nil, which matches everything.
func taskFilterFromQuery(r *http.Request) (models.TaskFilter, error) {
	var filter models.TaskFilter

	if raw := r.URL.Query().Get("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return models.TaskFilter{}, err
		}
		filter.Completed = &completed
	}

	if raw := r.URL.Query().Get("priority"); raw != "" {
		priority := models.Priority(raw)
		filter.Priority = &priority
	}

	return filter, nil
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Chandanpatidar24/Project-Management/services"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.service.Register(r.Context(), req.Username, req.Email, req.Password); err != nil {
		respondError(w, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Verification code sent")
}

func (h *UserHandler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.service.ConfirmEmail(r.Context(), req.Username, req.Code); err != nil {
		respondError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Account activated")
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token":    token,
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenStr := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	if err := h.service.Logout(r.Context(), tokenStr); err != nil {
		respondError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Logged out")
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetUserByID(r.Context(), caller)
	if err != nil {
		respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

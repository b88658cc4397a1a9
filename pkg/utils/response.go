package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

type Response struct {
	Error string `json:"error" example:"insufficient funds"`
}

func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if code == http.StatusNoContent {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("can't encode response", zap.Error(err))
	}
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, Response{Error: message})
}

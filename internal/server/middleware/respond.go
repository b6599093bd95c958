package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/maynagashev/ignitecall/models"
)

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Message: message})
}

// Package web tiene helpers compartidos de respuesta HTTP.
package web

import (
	"encoding/json"
	"net/http"
)

// MaxBodySize es el límite de body para endpoints JSON.
const MaxBodySize = 64 * 1024 // 64KB

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// WriteData escribe el envelope de éxito estándar {success:true, data}.
func WriteData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

// WriteMessage escribe un éxito sin payload, sólo con mensaje.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Message: msg})
}

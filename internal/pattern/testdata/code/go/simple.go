package server

import (
	"fmt"
	"net/http"
)

const (
	DefaultPort    = 8080
	DefaultTimeout = 30
)

type Handler struct {
	port int
}

func NewHandler(port int) *Handler {
	fmt.Println("creating handler")
	return &Handler{port: port}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fmt.Println("request", r.URL.Path)
	fmt.Fprintf(w, "Hello, World!")
}

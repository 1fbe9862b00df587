package main

import (
	"github.com/nfrund/formwire/internal/server"
)

// main boots the demo server. It mirrors cmd/server so `go run .` works
// from the repository root.
func main() {
	s := server.New()
	s.RegisterRoutes()
	s.Start()
}

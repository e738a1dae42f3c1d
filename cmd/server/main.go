// Package main is the entry point for the BPMtoFPS API server
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/JHGFD82/BPMtoFPS/pkg/api"
	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	port := flag.Int("port", 0, "Server port (falls back to PORT, then 8080)")
	flag.Parse()

	if *port == 0 {
		*port = portFromEnv()
	}

	fmt.Printf("Starting BPMtoFPS API server on port %d...\n", *port)
	fmt.Printf("Swagger docs available at http://localhost:%d/swagger/index.html\n", *port)

	if err := api.StartServer(*port); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func portFromEnv() int {
	s := os.Getenv("PORT")
	if s == "" {
		return 8080
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid PORT %q\n", s)
		os.Exit(1)
	}
	return port
}

// Package main provides the container health probe. It exits zero when the
// local server's liveness endpoint answers 200 and nonzero otherwise, so it
// can back a Docker HEALTHCHECK without shipping curl in the image.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/jkassel/checkin-bot-go/internal/config"
)

func main() {
	port := os.Getenv(config.EnvPort)
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: config.HealthProbeTimeout}
	url := fmt.Sprintf("http://localhost:%s/livez", port)

	resp, err := client.Get(url)
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}

	os.Exit(0)
}

// Command screensvc serves the suppression screen over HTTP: GET/POST /scan
// and GET /healthz.
package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/coldharbor-labs/suppression-screen/internal/config"
	"github.com/coldharbor-labs/suppression-screen/internal/httpapi"
	"github.com/coldharbor-labs/suppression-screen/internal/metadata"
	"github.com/coldharbor-labs/suppression-screen/internal/scanner"
)

func main() {
	cfgFile := os.Getenv("SCREENSVC_CONFIG_FILE")

	cfg, err := loadConfig(cfgFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	sink := metadata.NewZerologSink(os.Stdout)
	s := scanner.New(cfg, sink, time.Now)
	handler := httpapi.NewHandler(s, sink)

	mux := http.NewServeMux()
	handler.Routes(mux)

	log.Printf("listening on %s", cfg.ListenAddr())
	if err := http.ListenAndServe(cfg.ListenAddr(), mux); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.WithDefault().Build()
	}
	return config.WithConfigFile(path)
}

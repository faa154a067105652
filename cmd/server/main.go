package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/teatak/wordlattice/config"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file (default data/config.yaml if present)")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(config.Resolve(*configPath))
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}
	cfg = config.Merge(cfg, config.Config{Server: config.Server{Addr: *addr}})

	// Setup access log file (沉淀用户输入)
	logF, err := os.OpenFile(cfg.Server.AccessLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatal(err)
	}
	defer logF.Close()

	srv := newServer(cfg, logF, prometheus.NewRegistry())
	if err := srv.reloadEngine(); err != nil {
		log.Fatalf("Initial load failed: %v", err)
	}

	log.Printf("Server started on %s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, srv.routes()))
}

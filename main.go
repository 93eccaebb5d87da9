package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	accounts := NewAccountStore()
	auth := NewAuth(accounts)
	registry := NewRegistry(accounts)

	hub := NewHub(registry, auth, accounts)
	go hub.Run()

	sim := NewSimulator(registry)
	go sim.Run()

	mux := SetupRoutes(hub)
	server := &http.Server{Addr: *addr, Handler: mux}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Arena server starting on %s", *addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down...")
	sim.Stop()
	server.Close()
}

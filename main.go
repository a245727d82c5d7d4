package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strings"

	"inkpad/internal/draw"
	lan "inkpad/internal/net"
	"inkpad/internal/store"
)

func main() {
	addr := flag.String("addr", ":8888", "listen address for the share endpoint")
	dataPath := flag.String("data", "drafts.json", "draft collection path (JSON file, or database file with -sqlite)")
	useSQLite := flag.Bool("sqlite", false, "store drafts in a SQLite database instead of a JSON file")
	noMDNS := flag.Bool("no-mdns", false, "do not advertise the share endpoint over mDNS")
	flag.Parse()

	backend, closeBackend, err := openBackend(*dataPath, *useSQLite)
	if err != nil {
		log.Fatalf("Failed to open draft storage: %v", err)
	}
	defer closeBackend()

	session := draw.NewSession()
	st := store.New(backend)
	server := lan.NewServer(session, st)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go server.Run(ctx)

	port := listenPort(*addr)
	if !*noMDNS {
		mdnsServer, err := lan.Advertise(port)
		if err != nil {
			log.Printf("mDNS advertisement failed: %v", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	if ip, err := lan.OutgoingIP(); err == nil {
		log.Printf("Share link: ws://%s:%d/ws", ip, port)
		log.Printf("Snapshot:   http://%s:%d/snapshot.png", ip, port)
	}

	log.Printf("inkpad host listening on %s", *addr)
	if err := http.ListenAndServe(*addr, server.Handler()); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func openBackend(path string, useSQLite bool) (store.Backend, func(), error) {
	if useSQLite {
		b, err := store.OpenSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return b, func() { b.Close() }, nil
	}
	return store.NewFileBackend(path), func() {}, nil
}

func listenPort(addr string) int {
	var port int
	if i := strings.LastIndex(addr, ":"); i >= 0 {
		fmt.Sscanf(addr[i+1:], "%d", &port)
	}
	if port == 0 {
		port = 8888
	}
	return port
}

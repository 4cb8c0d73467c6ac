// Command server renders Mandelbrot images for remote clients.
//
// Clients connect over plain TCP or over a websocket and call
// mandel.Renderer over irpc; each render is answered with a zstd compressed
// RGBA frame. The same renders are available as PNG files from /render.png.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"runtime"

	"github.com/marben/bandmandel/render"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	tcpAddr := flag.String("tcp", ":8081", "tcp listen address")
	httpPort := flag.Int("http", 8080, "http port serving /ws and /render.png")
	workers := flag.Int("workers", runtime.NumCPU(), "maximum workers per render")
	maxIter := flag.Int("max-iter", 100000, "largest accepted iteration budget")
	flag.Parse()

	// renders from tcp, websocket and http clients all go through one service
	svc := newRenderService(render.Local{Workers: *workers}, *workers, *maxIter)

	// irpc server provides mandel.Renderer to every connected client
	irpcServer := svc.newIrpcServer()

	// TCP
	log.Printf("tcp listening on %s", *tcpAddr)
	tcpListener, err := net.Listen("tcp", *tcpAddr)
	if err != nil {
		return fmt.Errorf("net.Listen: %w", err)
	}

	// WEBSOCKET
	websocketListener, httpServer := webServer(context.Background(), *httpPort, svc)

	go func() {
		if err := httpServer.ListenAndServe(); err != nil {
			log.Fatalf("httpServer: %v", err)
		}
	}()

	// irpcServer can serve multiple listeners. In this case both tcp and websocket
	go func() {
		if err := irpcServer.Serve(tcpListener); err != nil {
			log.Fatalf("server.Serve tcp: %v", err)
		}
	}()
	go func() {
		if err := irpcServer.Serve(websocketListener); err != nil {
			log.Fatalf("server.Serve ws: %v", err)
		}
	}()

	log.Printf("mb server waiting for tcp and websocket connections")
	select {}
}

package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mandel "github.com/marben/bandmandel"
	"github.com/marben/bandmandel/render"
)

func TestPNGHandler(t *testing.T) {
	svc := newRenderService(render.Local{Workers: 2}, 2, 1000)
	h := pngHandler(svc)

	tests := []struct {
		query  string
		status int
		size   image.Point
	}{
		{"w=40&h=30&iter=50", http.StatusOK, image.Pt(40, 30)},
		{"landmark=seahorse-valley&w=20&h=10", http.StatusOK, image.Pt(20, 10)},
		{"w=80&h=40&thumb=20", http.StatusOK, image.Pt(20, 10)},
		{"landmark=atlantis", http.StatusBadRequest, image.Point{}},
		{"w=ten", http.StatusBadRequest, image.Point{}},
		{"zoom=0", http.StatusBadRequest, image.Point{}},
		{"iter=5000", http.StatusBadRequest, image.Point{}},
		{"w=-4", http.StatusBadRequest, image.Point{}},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/render.png?"+tc.query, nil))

			if rec.Code != tc.status {
				t.Fatalf("status %d, want %d: %s", rec.Code, tc.status, rec.Body)
			}
			if tc.status != http.StatusOK {
				return
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type %q", ct)
			}
			img, err := png.Decode(rec.Body)
			if err != nil {
				t.Fatal(err)
			}
			if got := img.Bounds().Size(); got != tc.size {
				t.Errorf("image size %v, want %v", got, tc.size)
			}
		})
	}
}

func TestWebsocketSession(t *testing.T) {
	svc := newRenderService(render.Local{Workers: 2}, 2, 1000)
	l := NewWSListener(context.Background(), "test/ws")
	defer l.Close()

	srv := httptest.NewServer(websocketHandler(l))
	defer srv.Close()

	server := svc.newIrpcServer()
	served := make(chan error, 1)
	go func() { served <- server.Serve(l) }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := mandel.Dial(ctx, "ws", strings.Replace(srv.URL, "http://", "ws://", 1))
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	img, err := client.RenderImage(mandel.Request{Width: 32, Height: 24, Viewport: mandel.FullView, Iterations: 64})
	if err != nil {
		t.Fatal(err)
	}
	want, err := render.RenderImage(32, 24, mandel.FullView, 64, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(img.Pix, want.Pix) {
		t.Error("image changed in transit")
	}

	l.Close()
	if err := <-served; err == nil {
		t.Error("serve returned nil after Close")
	}
}

func TestWSListenerClose(t *testing.T) {
	l := NewWSListener(context.Background(), ":0/ws")
	if l.Addr().Network() != "ws" || l.Addr().String() != ":0/ws" {
		t.Errorf("addr %s %s", l.Addr().Network(), l.Addr())
	}
	l.Close()
	l.Close()
	_, err := l.Accept()
	if !errors.Is(err, net.ErrClosed) && !errors.Is(err, context.Canceled) {
		t.Errorf("Accept after Close: %v", err)
	}
}

func TestServeTCP(t *testing.T) {
	svc := newRenderService(render.Local{Workers: 2}, 2, 1000)
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	server := svc.newIrpcServer()
	defer server.Close()
	go server.Serve(l)

	client, err := mandel.Dial(context.Background(), "tcp", l.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer client.Close()

	img, err := client.RenderImage(mandel.Request{Width: 10, Height: 8, Viewport: mandel.SeahorseValley, Iterations: 100})
	if err != nil {
		t.Fatal(err)
	}
	if img.Rect != image.Rect(0, 0, 10, 8) {
		t.Errorf("got rect %v", img.Rect)
	}
	waitSessions(t, svc, 1)

	client.Close()
	waitSessions(t, svc, 0)
}

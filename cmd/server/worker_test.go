package main

import (
	"bytes"
	"errors"
	"image"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/marben/irpc"

	mandel "github.com/marben/bandmandel"
	"github.com/marben/bandmandel/render"
)

// pipeClient connects a client to an irpc endpoint backed by svc.
func pipeClient(t *testing.T, svc *renderService) *mandel.Client {
	t.Helper()
	clientConn, serverConn := net.Pipe()
	ep := irpc.NewEndpoint(serverConn, irpc.WithEndpointServices(mandel.NewRendererIrpcService(svc)))
	t.Cleanup(func() { ep.Close() })

	client, err := mandel.NewClient(clientConn)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRenderService(t *testing.T) {
	svc := newRenderService(render.Local{Workers: 2}, 4, 500)
	client := pipeClient(t, svc)

	req := mandel.Request{Width: 40, Height: 30, Viewport: mandel.FullView, Iterations: 100}
	img, err := client.RenderImage(req)
	if err != nil {
		t.Fatal(err)
	}
	want, err := render.RenderImage(40, 30, mandel.FullView, 100, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(img.Pix, want.Pix) {
		t.Error("served image differs from local render")
	}

	// over the limit: reported, session continues
	req.Iterations = 501
	if _, err := client.Render(req); err == nil || !strings.Contains(err.Error(), "above server limit") {
		t.Fatalf("err = %v, want server limit error", err)
	}

	req.Iterations = 10
	req.Workers = 1000
	if _, err := client.Render(req); err != nil {
		t.Fatal(err)
	}

	svc.m.Lock()
	defer svc.m.Unlock()
	if svc.served != 2 {
		t.Errorf("served %d, want 2", svc.served)
	}
}

// waitSessions polls until svc counts n sessions.
func waitSessions(t *testing.T, svc *renderService, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		svc.m.Lock()
		s := svc.sessions
		svc.m.Unlock()
		if s == n {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("sessions %d, want %d", s, n)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestIrpcServerGarbage(t *testing.T) {
	svc := newRenderService(render.Local{}, 0, 0)
	server := svc.newIrpcServer()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer server.Close()
	go server.Serve(l)

	conn, err := net.Dial("tcp", l.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	waitSessions(t, svc, 1)

	if _, err := conn.Write(bytes.Repeat([]byte("not irpc "), 64)); err != nil {
		t.Fatal(err)
	}
	// the server hangs up
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, err := io.ReadAll(conn); err != nil && !errors.Is(err, net.ErrClosed) && !isConnReset(err) {
		t.Errorf("read after garbage: %v", err)
	}
	waitSessions(t, svc, 0)
}

func isConnReset(err error) bool {
	return strings.Contains(err.Error(), "connection reset")
}

// recordingRenderer remembers the last request it saw.
type recordingRenderer struct {
	last mandel.Request
}

func (r *recordingRenderer) Image(req mandel.Request) (*image.RGBA, error) {
	r.last = req
	return render.Local{}.Image(req)
}

func TestRenderImageLimits(t *testing.T) {
	rec := &recordingRenderer{}
	svc := newRenderService(rec, 3, 100)
	req := mandel.Request{Width: 4, Height: 4, Viewport: mandel.FullView, Iterations: 100}

	for _, tc := range []struct{ asked, used int }{{0, 3}, {2, 2}, {3, 3}, {50, 3}} {
		req.Workers = tc.asked
		if _, err := svc.renderImage(req); err != nil {
			t.Fatal(err)
		}
		if rec.last.Workers != tc.used {
			t.Errorf("asked for %d workers, rendered with %d, want %d", tc.asked, rec.last.Workers, tc.used)
		}
	}

	req.Iterations = 101
	if _, err := svc.renderImage(req); !errors.Is(err, mandel.ErrBadRequest) {
		t.Errorf("err = %v, want ErrBadRequest", err)
	}
}

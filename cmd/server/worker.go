package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/marben/irpc"

	mandel "github.com/marben/bandmandel"
)

// imageRenderer renders a request into an uncompressed image.
// render.Local is the one used outside of tests.
type imageRenderer interface {
	Image(req mandel.Request) (*image.RGBA, error)
}

// renderService answers render requests with the wrapped renderer.
// It is shared by every connection.
type renderService struct {
	renderer   imageRenderer
	maxWorkers int
	maxIter    int

	sessions int
	served   int
	m        sync.Mutex
}

func newRenderService(r imageRenderer, maxWorkers, maxIter int) *renderService {
	return &renderService{
		renderer:   r,
		maxWorkers: maxWorkers,
		maxIter:    maxIter,
	}
}

// newIrpcServer serves rs as mandel.Renderer to every connected endpoint.
func (rs *renderService) newIrpcServer() *irpc.Server {
	return irpc.NewServer(
		irpc.WithServices(mandel.NewRendererIrpcService(rs)),
		irpc.WithOnConnect(func(ep *irpc.Endpoint) {
			log.Printf("got connection from: %s", ep.RemoteAddr())
			rs.incSessions()
			<-ep.Context().Done()
			rs.decSessions()
			log.Printf("connection %s closed: %v", ep.RemoteAddr(), context.Cause(ep.Context()))
		}),
	)
}

// Render implements mandel.Renderer for remote clients.
func (rs *renderService) Render(req mandel.Request) (mandel.Frame, error) {
	img, err := rs.renderImage(req)
	if err != nil {
		log.Printf("render %dx%d failed: %v", req.Width, req.Height, err)
		return mandel.Frame{}, err
	}
	return mandel.NewFrame(img), nil
}

// renderImage applies the server limits and renders req.
func (rs *renderService) renderImage(req mandel.Request) (*image.RGBA, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if rs.maxIter > 0 && req.Iterations > rs.maxIter {
		return nil, fmt.Errorf("%w: iterations %d above server limit %d", mandel.ErrBadRequest, req.Iterations, rs.maxIter)
	}
	if rs.maxWorkers > 0 && (req.Workers == 0 || req.Workers > rs.maxWorkers) {
		req.Workers = rs.maxWorkers
	}

	img, err := rs.renderer.Image(req)
	if err != nil {
		return nil, err
	}
	rs.renderFinished(req)
	return img, nil
}

func (rs *renderService) renderFinished(req mandel.Request) {
	rs.m.Lock()
	rs.served++
	n := rs.served
	rs.m.Unlock()

	log.Printf("rendered %dx%d at %+v (%d iterations), %d renders served",
		req.Width, req.Height, req.Viewport, req.Iterations, n)
}

func (rs *renderService) incSessions() {
	rs.m.Lock()
	rs.sessions++
	s := rs.sessions
	rs.m.Unlock()

	log.Printf("sessions: %d", s)
}

func (rs *renderService) decSessions() {
	rs.m.Lock()
	rs.sessions--
	s := rs.sessions
	rs.m.Unlock()

	log.Printf("sessions: %d", s)
}

var _ mandel.Renderer = (*renderService)(nil)

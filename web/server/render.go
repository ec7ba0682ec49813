package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/jLantxa/light/pkg/core"
	"github.com/jLantxa/light/pkg/renderer"
)

// RenderRequest carries the validated query parameters of a render
type RenderRequest struct {
	Scene      string  // Built-in name or "file:" id from the scenes listing
	Width      int     // Image width in pixels
	Height     int     // Image height in pixels
	MaxSamples int     // Samples per pixel, 0 uses the scene's setting
	MaxPasses  int     // Progressive passes
	MaxDepth   int     // Fixed extinction depth override, 0 keeps the scene's policy
	HalfLife   float64 // Stochastic extinction override, 0 keeps the scene's policy
}

// ProgressUpdate is one progressive pass sent to the client: the full
// frame so far plus its statistics
type ProgressUpdate struct {
	PassNumber     int     `json:"passNumber"`
	TotalPasses    int     `json:"totalPasses"`
	ImageData      string  `json:"imageData"` // Base64 encoded PNG
	ElapsedMs      int64   `json:"elapsedMs"`
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	TargetSamples  int     `json:"targetSamples"`
	IsComplete     bool    `json:"isComplete"`
}

// SSEEvent is a unified server-sent event. All writes to the response,
// whatever goroutine produced them, funnel through one writer.
type SSEEvent struct {
	Type string // "console", "progress", "error", "complete"
	Data string
}

// handleRender streams a progressive render via SSE: console lines as
// the renderer logs them, one progress event per pass with the frame as
// base64 PNG, then an error or complete event.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)
	ctx := r.Context()

	// Single writer goroutine; the handler closes the event channel and
	// waits for the writer before returning, so nothing touches the
	// response afterwards.
	events := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writeSSEEvents(ctx, w, events)
	}()
	defer func() {
		close(events)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		sendEvent(ctx, events, SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		streamConsoleMessages(ctx, consoleChan, events)
	}()

	renderErr := s.runRender(ctx, req, NewWebLogger(consoleChan), events)

	// The renderer has exited, so no more console writes can happen;
	// close the channel and let the forwarder drain before the final
	// event goes out.
	close(consoleChan)
	<-consoleDone

	if renderErr != nil {
		sendEvent(ctx, events, SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", renderErr)})
		return
	}
	sendEvent(ctx, events, SSEEvent{Type: "complete", Data: "Rendering completed"})
}

// runRender builds the scene and renderer for a request and streams the
// pass results as progress events
func (s *Server) runRender(ctx context.Context, req *RenderRequest, logger core.Logger, events chan<- SSEEvent) error {
	sceneObj, err := buildScene(req.Scene)
	if err != nil {
		return err
	}

	sceneObj.CameraConfig.Width = req.Width
	sceneObj.CameraConfig.Height = req.Height
	if req.MaxDepth > 0 {
		sceneObj.Sampling.MaxDepth = req.MaxDepth
		sceneObj.Sampling.HalfLife = 0
	}
	if req.HalfLife > 0 {
		sceneObj.Sampling.HalfLife = req.HalfLife
	}

	config := renderer.ProgressiveConfig{
		TileSize:           renderer.DefaultTileSize,
		InitialSamples:     1,
		MaxSamplesPerPixel: req.MaxSamples,
		MaxPasses:          req.MaxPasses,
		NumWorkers:         0, // Auto-detect
	}

	prog, err := renderer.NewProgressive(sceneObj, config, logger)
	if err != nil {
		return err
	}

	startTime := time.Now()
	passes, errs := prog.RenderProgressive(ctx)

	for pass := range passes {
		sendPassUpdate(ctx, events, pass, req.MaxPasses, startTime)
	}
	return <-errs
}

// sendPassUpdate encodes one pass result and queues it as a progress event
func sendPassUpdate(ctx context.Context, events chan<- SSEEvent, pass renderer.PassResult, totalPasses int, startTime time.Time) {
	imageData, err := imageToBase64PNG(pass.Image)
	if err != nil {
		log.Printf("Error encoding pass %d image: %v", pass.PassNumber, err)
		return
	}

	update := ProgressUpdate{
		PassNumber:     pass.PassNumber,
		TotalPasses:    totalPasses,
		ImageData:      imageData,
		ElapsedMs:      time.Since(startTime).Milliseconds(),
		TotalPixels:    pass.Stats.TotalPixels,
		TotalSamples:   pass.Stats.TotalSamples,
		AverageSamples: pass.Stats.AverageSamples,
		TargetSamples:  pass.Stats.TargetSamples,
		IsComplete:     pass.IsLast,
	}

	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("Error marshaling pass update: %v", err)
		return
	}
	sendEvent(ctx, events, SSEEvent{Type: "progress", Data: string(data)})
}

// parseRenderRequest parses and validates the render query parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	if name := r.URL.Query().Get("scene"); name != "" {
		req.Scene = name
	} else {
		req.Scene = "demo"
	}

	var err error
	if req.Width, err = parseIntParam(r.URL.Query(), "width", 400, 8, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(r.URL.Query(), "height", 300, 8, 2000); err != nil {
		return nil, err
	}
	if req.MaxSamples, err = parseIntParam(r.URL.Query(), "maxSamples", 0, 0, 10000); err != nil {
		return nil, err
	}
	if req.MaxPasses, err = parseIntParam(r.URL.Query(), "maxPasses", 7, 1, 1000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(r.URL.Query(), "maxDepth", 0, 0, 1000); err != nil {
		return nil, err
	}
	if req.HalfLife, err = parseFloatParam(r.URL.Query(), "halfLife", 0, 0, 1000); err != nil {
		return nil, err
	}

	if req.Width*req.Height > 800*600 && req.MaxSamples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// writeSSEEvents writes every event to the response from one goroutine.
// It returns when the event channel closes or the client disconnects.
func writeSSEEvents(ctx context.Context, w http.ResponseWriter, events <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards renderer log lines to the SSE channel
// until the console channel closes or the client disconnects
func streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, events chan<- SSEEvent) {
	for {
		select {
		case msg, ok := <-consoleChan:
			if !ok {
				return
			}

			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case events <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			default:
				// Channel full, skip the line rather than stall the render
			}

		case <-ctx.Done():
			return
		}
	}
}

// sendEvent queues an SSE event without blocking a disconnected client
func sendEvent(ctx context.Context, events chan<- SSEEvent, event SSEEvent) {
	select {
	case events <- event:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

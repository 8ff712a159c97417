// Package ws implements the render driver that broadcasts scene state to
// browser clients over a websocket: textures once as PNG, then throttled
// per-frame layer transforms.
package ws

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/softmatter/scrollstage/internal/render"
)

type texMsg struct {
	Type  string `json:"type"`
	ID    int    `json:"id"`
	W     int    `json:"w"`
	H     int    `json:"h"`
	WrapX int    `json:"wrapX"`
	PNG   string `json:"png"`
}

type frameMsg struct {
	Type   string              `json:"type"`
	ID     uint64              `json:"id"`
	Camera render.Camera       `json:"camera"`
	Layers []render.LayerState `json:"layers"`
}

// Event is an input event sent by a preview client: the browser page owns
// scroll and wheel, the server owns layout.
type Event struct {
	Type   string  `json:"type"` // "scroll" | "wheel" | "resize"
	Pos    float64 `json:"pos"`
	DeltaY float64 `json:"deltaY"`
	W      int     `json:"w"`
	H      int     `json:"h"`
}

type State struct {
	mu       sync.Mutex
	log      zerolog.Logger
	upgrader websocket.Upgrader
	clients  map[*websocket.Conn]bool

	// OnEvent receives client input events; it is called from connection
	// goroutines and must hand off to the render loop itself.
	OnEvent func(Event)

	throttle time.Duration
	lastEmit time.Time

	nextTex  render.TextureID
	nextGeom render.GeometryID
	textures map[render.TextureID][]byte // marshalled texMsg, replayed to new clients
	geoms    map[render.GeometryID]render.GeometrySpec
}

func NewState(log zerolog.Logger) *State {
	return &State{
		log:      log,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		clients:  map[*websocket.Conn]bool{},
		throttle: 50 * time.Millisecond, // ~20 FPS to clients
		textures: map[render.TextureID][]byte{},
		geoms:    map[render.GeometryID]render.GeometrySpec{},
	}
}

// ServeHTTP upgrades the connection, replays known textures, then holds the
// socket open until the client goes away.
func (s *State) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("ws upgrade failed")
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	for _, payload := range s.textures {
		_ = conn.WriteMessage(websocket.TextMessage, payload)
	}
	s.mu.Unlock()
	s.log.Info().Str("remote", r.RemoteAddr).Msg("preview client connected")

	go func() {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var ev Event
			if err := json.Unmarshal(msg, &ev); err != nil || ev.Type == "" {
				continue
			}
			if s.OnEvent != nil {
				s.OnEvent(ev)
			}
		}
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		_ = conn.Close()
		s.log.Info().Str("remote", r.RemoteAddr).Msg("preview client gone")
	}()
}

// --- render.Driver ---

func (s *State) CreateTexture(img *image.RGBA, opts render.TextureOpts) (render.TextureID, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTex++
	id := s.nextTex
	msg, err := json.Marshal(texMsg{
		Type:  "texture",
		ID:    int(id),
		W:     img.Bounds().Dx(),
		H:     img.Bounds().Dy(),
		WrapX: int(opts.WrapX),
		PNG:   base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	if err != nil {
		return 0, err
	}
	s.textures[id] = msg
	s.broadcastLocked(msg)
	return id, nil
}

func (s *State) DisposeTexture(id render.TextureID) {
	s.mu.Lock()
	delete(s.textures, id)
	s.mu.Unlock()
}

func (s *State) CreateGeometry(spec render.GeometrySpec) (render.GeometryID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextGeom++
	s.geoms[s.nextGeom] = spec
	return s.nextGeom, nil
}

func (s *State) DisposeGeometry(id render.GeometryID) {
	s.mu.Lock()
	delete(s.geoms, id)
	s.mu.Unlock()
}

func (s *State) Present(f *render.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.lastEmit.Add(s.throttle).After(now) {
		return nil // throttle client updates
	}
	s.lastEmit = now

	if len(s.clients) == 0 {
		return nil
	}
	msg, err := json.Marshal(frameMsg{Type: "frame", ID: f.ID, Camera: f.Camera, Layers: f.Layers})
	if err != nil {
		return err
	}
	s.broadcastLocked(msg)
	return nil
}

func (s *State) broadcastLocked(msg []byte) {
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			delete(s.clients, conn)
			_ = conn.Close()
		}
	}
}

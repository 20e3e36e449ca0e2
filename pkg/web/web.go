package web

import (
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/wayfind-dev/wayfind/pkg/resolver"
	"github.com/wayfind-dev/wayfind/pkg/route"
)

// ViewRef is the serializable view reference carried over the wire.
// The client resolves Component against its own registry and renders
// it with Props; the server never touches a display surface.
type ViewRef struct {
	Component string         `json:"component"`
	Props     map[string]any `json:"props,omitempty"`
}

// ClientMessage is a frame received from the client.
type ClientMessage struct {
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
}

// OutletFrame is one serialized outlet in a state frame.
type OutletFrame struct {
	View      ViewRef      `json:"view"`
	Params    route.Params `json:"params,omitempty"`
	Remainder string       `json:"remainder,omitempty"`
}

// StateFrame is a frame pushed to the client after each publication.
type StateFrame struct {
	Type    string                 `json:"type"`
	Session uint64                 `json:"session"`
	Path    string                 `json:"path"`
	Outlets map[string]OutletFrame `json:"outlets,omitempty"`
}

// ErrorFrame reports a rejected client frame.
type ErrorFrame struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

// Handler serves the navigation bridge: each websocket connection owns
// one resolver over the shared route table. Client "navigate" frames
// feed Resolve; every published state is pushed back as a JSON frame.
type Handler struct {
	table    *route.Table[ViewRef]
	logger   *slog.Logger
	upgrader websocket.Upgrader
	resOpts  []resolver.Option[ViewRef]
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLogger sets the handler's logger.
func WithLogger(logger *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithCheckOrigin sets the websocket origin check.
func WithCheckOrigin(check func(*http.Request) bool) HandlerOption {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = check
	}
}

// WithResolverOptions passes options to each connection's resolver
// (telemetry observers, a custom reporter).
func WithResolverOptions(opts ...resolver.Option[ViewRef]) HandlerOption {
	return func(h *Handler) {
		h.resOpts = append(h.resOpts, opts...)
	}
}

// NewHandler creates a navigation bridge over the given table.
func NewHandler(table *route.Table[ViewRef], opts ...HandlerOption) *Handler {
	h := &Handler{
		table: table,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default().With("component", "web")
	}
	return h
}

// Routes returns a chi router exposing the bridge at "/ws" and a
// liveness probe at "/healthz", ready to mount into a host router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/ws", h.ServeHTTP)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}

// ServeHTTP upgrades the request and runs the connection until the
// client goes away.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	logger := h.logger.With("remote", conn.RemoteAddr().String())
	res := resolver.New(h.table, append([]resolver.Option[ViewRef]{
		resolver.WithLogger[ViewRef](logger),
	}, h.resOpts...)...)
	defer res.Close()

	// gorilla permits one concurrent writer; publications may arrive
	// from loader goroutines, so all writes go through writeMu.
	var writeMu sync.Mutex
	writeJSON := func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	}

	unsubscribe := res.Subscribe(func(st resolver.State[ViewRef]) {
		if st.Session == 0 {
			// Initial empty state, nothing requested yet.
			return
		}
		if err := writeJSON(stateFrame(st)); err != nil {
			logger.Debug("state push failed", "err", err)
		}
	})
	defer unsubscribe()

	if initial := r.URL.Query().Get("path"); initial != "" {
		res.Resolve(initial)
	}

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("connection closed", "err", err)
			}
			return
		}

		switch msg.Type {
		case "navigate":
			if !strings.HasPrefix(msg.Path, "/") {
				writeJSON(ErrorFrame{Type: "error", Reason: "path must start with /"})
				continue
			}
			logger.Debug("navigate", "path", msg.Path)
			res.Resolve(msg.Path)
		default:
			writeJSON(ErrorFrame{Type: "error", Reason: "unknown message type " + msg.Type})
		}
	}
}

// stateFrame converts a published state to its wire form.
func stateFrame(st resolver.State[ViewRef]) StateFrame {
	frame := StateFrame{
		Type:    "state",
		Session: st.Session,
		Path:    st.Path,
	}
	if len(st.Outlets) > 0 {
		frame.Outlets = make(map[string]OutletFrame, len(st.Outlets))
		for name, out := range st.Outlets {
			frame.Outlets[name] = OutletFrame{
				View:      out.View,
				Params:    out.Params,
				Remainder: out.Remainder,
			}
		}
	}
	return frame
}

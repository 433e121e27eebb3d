package httpadapter

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"svw.info/isopuzzle/internal/codec"
	"svw.info/isopuzzle/internal/ctxlog"
	"svw.info/isopuzzle/internal/domain"
	"svw.info/isopuzzle/internal/usecase"
)

// maxBody bounds an event batch upload.
const maxBody = 1 << 20

// Engine is the host loop as seen by the transport: input goes in through
// Submit, state comes out through Snapshot.
type Engine interface {
	Submit(ctx context.Context, events []domain.Event) error
	Snapshot() domain.Snapshot
}

type Handler struct {
	Engine Engine
	UC     *usecase.Service
	Stream http.Handler
}

func New(e Engine, uc *usecase.Service, stream http.Handler) *Handler {
	return &Handler{Engine: e, UC: uc, Stream: stream}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/events", h.handleEvents)
	mux.HandleFunc("/api/snapshot", h.handleSnapshot)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/results", h.handleResults)
	if h.Stream != nil {
		mux.Handle("/api/stream", h.Stream)
	}
}

type errorResp struct {
	Error string `json:"error" msgpack:"error"`
}

// negotiate picks the response codec from ?format= or the Accept header.
func negotiate(r *http.Request) (codec.Codec, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return codec.ByName(f)
	}
	if strings.Contains(r.Header.Get("Accept"), codec.MsgPack{}.ContentType()) {
		return codec.MsgPack{}, nil
	}
	return codec.JSON{}, nil
}

func write(w http.ResponseWriter, r *http.Request, c codec.Codec, status int, v any) {
	data, err := c.Encode(v)
	if err != nil {
		ctxlog.FromContext(r.Context()).Error("encode response", "path", r.URL.Path, "err", err)
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", c.ContentType())
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, r *http.Request, c codec.Codec, status int, err error) {
	write(w, r, c, status, errorResp{Error: err.Error()})
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
	return false
}

// ---- Events ----

type eventsReq struct {
	Events []domain.Event `json:"events" msgpack:"events"`
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodPost) {
		return
	}
	out, err := negotiate(r)
	if err != nil {
		writeError(w, r, codec.JSON{}, http.StatusBadRequest, err)
		return
	}
	in := codec.Codec(codec.JSON{})
	if strings.HasPrefix(r.Header.Get("Content-Type"), codec.MsgPack{}.ContentType()) {
		in = codec.MsgPack{}
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, r, out, http.StatusBadRequest, err)
		return
	}
	var req eventsReq
	if err := in.Decode(body, &req); err != nil {
		writeError(w, r, out, http.StatusBadRequest, errors.New("invalid "+in.Name()+": "+err.Error()))
		return
	}
	if err := h.Engine.Submit(r.Context(), req.Events); err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.Canceled) {
			status = http.StatusRequestTimeout
		}
		writeError(w, r, out, status, err)
		return
	}
	write(w, r, out, http.StatusAccepted, h.Engine.Snapshot())
}

// ---- Snapshot ----

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	out, err := negotiate(r)
	if err != nil {
		writeError(w, r, codec.JSON{}, http.StatusBadRequest, err)
		return
	}
	write(w, r, out, http.StatusOK, h.Engine.Snapshot())
}

// ---- Hint ----

type hintResp struct {
	Found bool         `json:"found"`
	Hint  *domain.Hint `json:"hint,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	if h.UC == nil {
		writeError(w, r, codec.JSON{}, http.StatusNotImplemented, domain.ErrNotConfigured)
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), h.Engine.Snapshot())
	if err != nil {
		writeError(w, r, codec.JSON{}, statusFor(err), err)
		return
	}
	resp := hintResp{Found: ok}
	if ok {
		resp.Hint = &hh
	}
	write(w, r, codec.JSON{}, http.StatusOK, resp)
}

// ---- Results ----

type resultsResp struct {
	Results []domain.Result `json:"results"`
}

func (h *Handler) handleResults(w http.ResponseWriter, r *http.Request) {
	if !allow(w, r, http.MethodGet) {
		return
	}
	if h.UC == nil {
		writeError(w, r, codec.JSON{}, http.StatusNotImplemented, domain.ErrNotConfigured)
		return
	}
	rs, err := h.UC.History(r.Context())
	if err != nil {
		writeError(w, r, codec.JSON{}, statusFor(err), err)
		return
	}
	if rs == nil {
		rs = []domain.Result{}
	}
	write(w, r, codec.JSON{}, http.StatusOK, resultsResp{Results: rs})
}

func statusFor(err error) int {
	if errors.Is(err, domain.ErrNotConfigured) {
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/xtding233/gamerand/internal/random"
)

const transportHTTP = "http"

type errResp struct {
	Err string `json:"err"`
}

func parseFloat(r *http.Request, key string) (float64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

// writeJSON encodes body before committing the status, so encoding
// failures surface as 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, body any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"err":"encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// requestFromQuery maps query parameters onto a Request for kind.
func requestFromQuery(r *http.Request, kind string) (Request, string) {
	req := Request{Kind: kind}
	for _, key := range []string{"min", "max", "radius", "p", "x", "y", "z"} {
		v, ok, msg := parseFloat(r, key)
		if msg != "" {
			return Request{}, msg
		}
		if !ok {
			continue
		}
		switch key {
		case "min":
			req.Min = &v
		case "max":
			req.Max = &v
		case "radius":
			req.Radius = &v
		case "p":
			req.P = &v
		case "x":
			req.X = v
		case "y":
			req.Y = v
		case "z":
			req.Z = v
		}
	}
	n, ok, msg := parseInt(r, "n")
	if msg != "" {
		return Request{}, msg
	}
	if ok {
		req.N = &n
	}
	return req, ""
}

func (s *Server) handleSample(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSON(w, http.StatusMethodNotAllowed, errResp{Err: "method not allowed"})
			return
		}
		req, msg := requestFromQuery(r, kind)
		if msg != "" {
			writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
			return
		}
		out, err := s.sampler.Sample(transportHTTP, req)
		if err != nil {
			writeJSON(w, httpStatus(err), errResp{Err: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// handleReseed reseeds with ?seed=, or from the engine's seed source.
func (s *Server) handleReseed(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errResp{Err: "method not allowed"})
		return
	}
	var v *int32
	if n, ok, msg := parseInt(r, "seed"); msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	} else if ok {
		if n < math.MinInt32 || n > math.MaxInt32 {
			writeJSON(w, http.StatusBadRequest, errResp{Err: "seed out of int32 range"})
			return
		}
		sv := int32(n)
		v = &sv
	}
	if err := s.sampler.Reseed(v); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errResp{Err: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, random.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownKind):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// routes registers every sample kind under /<kind>.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	for _, kind := range []string{
		KindFloat, KindInt, KindRange, KindRangeInt, KindCircle, KindSphere,
		KindVector2, KindVector3, KindRotation, KindSurface, KindChance, KindStats,
	} {
		mux.HandleFunc("/"+kind, s.handleSample(kind))
	}
	mux.HandleFunc("/reseed", s.handleReseed)
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	return mux
}

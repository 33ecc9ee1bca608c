package api

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/mecodix/dontsee/internal/logger"
	"github.com/mecodix/dontsee/pkg/imaging"
	"github.com/mecodix/dontsee/pkg/stego"
	"github.com/mecodix/dontsee/pkg/worker"
)

// CodecHandler serves the three codec endpoints over a worker.
type CodecHandler struct {
	worker    *worker.Worker
	maxUpload int64
}

// NewCodecHandler creates the handler. maxUpload bounds the multipart form
// size in bytes.
func NewCodecHandler(w *worker.Worker, maxUpload int64) *CodecHandler {
	return &CodecHandler{worker: w, maxUpload: maxUpload}
}

// carrierFromRequest parses the multipart form and decodes the uploaded
// image into a carrier buffer.
func (h *CodecHandler) carrierFromRequest(w http.ResponseWriter, r *http.Request) ([]byte, int, int, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse("BadRequest", fmt.Sprintf("invalid multipart form: %v", err)))
		return nil, 0, 0, false
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse("BadRequest", "missing image field"))
		return nil, 0, 0, false
	}
	defer file.Close()

	pix, width, height, err := imaging.Decode(file)
	if err != nil {
		JSON(w, http.StatusBadRequest, ErrorResponse("BadRequest", fmt.Sprintf("undecodable image: %v", err)))
		return nil, 0, 0, false
	}
	return pix, width, height, true
}

// Scan handles POST /api/v1/scan: multipart image -> {"signature": ...}.
func (h *CodecHandler) Scan(w http.ResponseWriter, r *http.Request) {
	pix, width, height, ok := h.carrierFromRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.worker.Do(r.Context(), worker.Request{
		Op: worker.OpScan, Pixels: pix, Width: width, Height: height,
	}, nil)
	if err != nil {
		JSON(w, http.StatusServiceUnavailable, ErrorResponse("Unavailable", err.Error()))
		return
	}

	switch res := resp.(type) {
	case worker.ScanResult:
		JSON(w, http.StatusOK, OKResponse(map[string]any{
			"signature": res.Signature.String(),
			"width":     width,
			"height":    height,
			"capacity":  stego.MaxPayloadBytes(width, height),
		}))
	case worker.ErrorResult:
		JSON(w, statusForKind(res.Kind), ErrorResponse(res.Kind, res.Message))
	}
}

// Conceal handles POST /api/v1/conceal: multipart image + message +
// optional password -> PNG download.
func (h *CodecHandler) Conceal(w http.ResponseWriter, r *http.Request) {
	pix, width, height, ok := h.carrierFromRequest(w, r)
	if !ok {
		return
	}

	message := r.FormValue("message")
	if message == "" {
		JSON(w, http.StatusBadRequest, ErrorResponse("BadRequest", "missing message field"))
		return
	}

	resp, err := h.worker.Do(r.Context(), worker.Request{
		Op:        worker.OpEncode,
		Pixels:    pix,
		Width:     width,
		Height:    height,
		Plaintext: message,
		Password:  r.FormValue("password"),
	}, nil)
	if err != nil {
		JSON(w, http.StatusServiceUnavailable, ErrorResponse("Unavailable", err.Error()))
		return
	}

	switch res := resp.(type) {
	case worker.EncodeResult:
		var out bytes.Buffer
		if err := imaging.EncodePNG(&out, res.Pixels, width, height); err != nil {
			logger.Error("carrier re-encode failed", "error", err)
			JSON(w, http.StatusInternalServerError, ErrorResponse("Internal", "failed to encode result image"))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `attachment; filename="carrier.png"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out.Bytes())
	case worker.ErrorResult:
		JSON(w, statusForKind(res.Kind), ErrorResponse(res.Kind, res.Message))
	}
}

// Reveal handles POST /api/v1/reveal: multipart image + optional password
// -> {"text": ...}.
func (h *CodecHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	pix, width, height, ok := h.carrierFromRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.worker.Do(r.Context(), worker.Request{
		Op: worker.OpDecode, Pixels: pix, Width: width, Height: height,
		Password: r.FormValue("password"),
	}, nil)
	if err != nil {
		JSON(w, http.StatusServiceUnavailable, ErrorResponse("Unavailable", err.Error()))
		return
	}

	switch res := resp.(type) {
	case worker.DecodeResult:
		JSON(w, http.StatusOK, OKResponse(map[string]any{"text": res.Text}))
	case worker.ErrorResult:
		JSON(w, statusForKind(res.Kind), ErrorResponse(res.Kind, res.Message))
	}
}

// Health handles GET /health.
func Health(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, OKResponse(map[string]string{"state": "healthy"}))
}

// Readiness handles GET /health/ready.
func Readiness(w http.ResponseWriter, _ *http.Request) {
	JSON(w, http.StatusOK, OKResponse(map[string]string{"state": "ready"}))
}

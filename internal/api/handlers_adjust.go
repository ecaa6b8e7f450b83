package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/repricer/internal/adjust"
	"github.com/dgallion1/repricer/internal/amount"
	"github.com/dgallion1/repricer/internal/dom"
	"github.com/dgallion1/repricer/internal/render"
	"github.com/dgallion1/repricer/internal/repricer"
)

// handleAdjust rewrites every amount in the posted document. The body is
// HTML, or Markdown when the Content-Type says so; the response is always
// the adjusted HTML document. Parameters come from the query string only:
// the body is the document, never a form.
func (s *Server) handleAdjust(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	spec, opts, errMsg := s.parseParams(r.URL.Query().Get)
	if errMsg != "" {
		jsonError(w, errMsg, http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		jsonError(w, "failed to read body: "+err.Error(), http.StatusRequestEntityTooLarge)
		return
	}

	if isMarkdown(r.Header.Get("Content-Type"), "") {
		body, err = render.MarkdownToHTML(body)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	root, err := dom.Parse(bytes.NewReader(body))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	n, err := repricer.Adjust(root, spec, opts)
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out, err := root.Render()
	if err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Nodes-Adjusted", strconv.Itoa(n))
	io.WriteString(w, out)
}

// handleBatchAdjust processes several documents from one multipart form.
// Each file is adjusted synchronously with the shared parameters; per-file
// failures are reported in the result list without failing the batch.
func (s *Server) handleBatchAdjust(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes*10)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	spec, opts, errMsg := s.parseParams(r.FormValue)
	if errMsg != "" {
		jsonError(w, errMsg, http.StatusBadRequest)
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return
	}

	var results []map[string]any
	for _, fh := range files {
		filename := filepath.Base(fh.Filename)

		f, err := fh.Open()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    "failed to open file",
			})
			continue
		}

		data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxBodyBytes+1))
		f.Close()
		if err != nil || int64(len(data)) > s.cfg.MaxBodyBytes {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    fmt.Sprintf("file too large or read error (max %d bytes)", s.cfg.MaxBodyBytes),
			})
			continue
		}

		if isMarkdown("", filename) {
			data, err = render.MarkdownToHTML(data)
			if err != nil {
				results = append(results, map[string]any{
					"filename": filename,
					"error":    err.Error(),
				})
				continue
			}
		}

		root, err := dom.Parse(bytes.NewReader(data))
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		n, err := repricer.Adjust(root, spec, opts)
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		out, err := root.Render()
		if err != nil {
			results = append(results, map[string]any{
				"filename": filename,
				"error":    err.Error(),
			})
			continue
		}

		results = append(results, map[string]any{
			"filename":       filename,
			"nodes_adjusted": n,
			"html":           out,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": results})
}

// parseParams reads the shared adjust/limit/marker parameters through the
// supplied getter (query values for the single-document endpoint, form
// values for the batch). The returned message is empty on success.
func (s *Server) parseParams(get func(string) string) (adjust.Adjustment, repricer.Options, string) {
	var opts repricer.Options

	raw := get("adjust")
	if raw == "" {
		return adjust.Adjustment{}, opts, "adjust parameter is required"
	}
	spec, err := adjust.Parse(raw)
	if err != nil {
		return adjust.Adjustment{}, opts, err.Error()
	}

	opts.Marker = amount.DefaultMarker
	if len(s.cfg.DefaultMarker) == 1 {
		opts.Marker = s.cfg.DefaultMarker[0]
	}
	if v := get("marker"); v != "" {
		if len(v) != 1 {
			return spec, opts, "marker must be a single character"
		}
		opts.Marker = v[0]
	}

	opts.Limit = s.cfg.DefaultLimit
	if v := get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return spec, opts, "limit must be a non-negative integer"
		}
		opts.Limit = n
	}

	return spec, opts, ""
}

func isMarkdown(contentType, filename string) bool {
	if strings.HasPrefix(contentType, "text/markdown") {
		return true
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

package server

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/matzehuels/echart/pkg/buildinfo"
	"github.com/matzehuels/echart/pkg/errors"
	chartio "github.com/matzehuels/echart/pkg/io"
	"github.com/matzehuels/echart/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts, err := queryOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Formats = []string{format}

	f, err := s.readChart(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), f, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(result.CacheInfo.RenderHit))
	w.Header().Set("ETag", strconv.Quote(result.LayoutHash))
	w.Header().Set("Server", buildinfo.UserAgent())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := queryOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	f, err := s.readChart(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), f, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	data, err := pipeline.MarshalLayout(l)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", cacheStatus(hit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// readChart decodes the request body as a chart file.
func (s *Server) readChart(w http.ResponseWriter, r *http.Request) (*chartio.File, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty request body")
	}
	return chartio.Read(bytes.NewReader(body), inputFormat(r, body))
}

// inputFormat picks "json" or "toml" for the request body.
func inputFormat(r *http.Request, body []byte) string {
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		switch mt {
		case "application/json":
			return "json"
		case "application/toml":
			return "toml"
		}
	}
	if in := r.URL.Query().Get("input"); in != "" {
		return in
	}
	if bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		return "json"
	}
	return "toml"
}

// queryOptions reads the layout switches and the PNG scale from the query.
func queryOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Kind: q.Get("kind")}

	flags := map[string]*bool{
		"area":         &opts.Area,
		"stacked":      &opts.Stacked,
		"shared_scale": &opts.SharedScale,
		"embed_font":   &opts.EmbedFont,
		"refresh":      &opts.Refresh,
	}
	for name, dst := range flags {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", name, v)
		}
		*dst = b
	}

	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 || scale > 8 {
			return opts, errors.New(errors.ErrCodeInvalidInput, "scale: %q must be a number in (0, 8]", v)
		}
		opts.Scale = scale
	}
	return opts, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps coded errors to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status >= 500 {
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: string(code), Message: msg}})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidKind,
		errors.ErrCodeInvalidColor, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidSize, errors.ErrCodeInvalidCount, errors.ErrCodeDatasetAttached,
		errors.ErrCodeAbscissaSet, errors.ErrCodeMissingAbscissa, errors.ErrCodeLengthMismatch,
		errors.ErrCodeTooManyItems, errors.ErrCodeItemOwned, errors.ErrCodeMissingDataset,
		errors.ErrCodeInsufficientSeries:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}


package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/dogmawang-bsc/fake-html2/internal/app"
	"github.com/dogmawang-bsc/fake-html2/internal/domain"
	"github.com/dogmawang-bsc/fake-html2/internal/storage/uploads"
)

type Handlers struct {
	Profile   *app.ProfileService
	Reviews   *app.ReviewService
	Files     *uploads.Store
	MaxBatch  int
	UploadRPS int
}

// envelope is the uniform response wrapper; the transport status mirrors
// Code.
type envelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func writeEnvelope(w http.ResponseWriter, code int, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(envelope{Code: code, Msg: msg, Data: data}); err != nil {
		log.Error().Err(err).Msg("write envelope failed")
	}
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/api/restaurant", h.getProfile)
	s.mux.Post("/api/restaurant", h.replaceProfile)

	s.mux.Get("/api/comments", h.listReviews)
	s.mux.Put("/api/comments", h.replaceReviews)
	s.mux.Post("/api/comments", h.appendReview)
	s.mux.Delete("/api/comments/{index}", h.deleteReview)

	s.mux.Group(func(r chi.Router) {
		r.Use(RateLimit(h.UploadRPS))
		r.Post("/api/upload/icon", h.upload("icon", true))
		r.Post("/api/upload/images", h.upload("images", false))
		r.Post("/api/upload/avatar", h.upload("userAvatar", true))
		r.Post("/api/upload/review-images", h.upload("reviewImages", false))
	})

	s.mux.Delete("/api/delete/file", h.deleteFile)

	// uploaded assets are public
	s.mux.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.Files.Root()))))
}

// ---- profile ----

func (h *Handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	p, ok := h.Profile.Get(r.Context())
	if !ok {
		writeEnvelope(w, http.StatusOK, "ok", map[string]any{})
		return
	}
	writeEnvelope(w, http.StatusOK, "ok", p)
}

func (h *Handlers) replaceProfile(w http.ResponseWriter, r *http.Request) {
	// Decoding over the default profile gives omitted fields their fixed
	// fallback values; deletedImages rides alongside and is never persisted.
	p := domain.DefaultProfile()
	body := struct {
		*domain.Profile
		DeletedImages []string `json:"deletedImages"`
	}{Profile: &p}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid profile body: "+err.Error(), nil)
		return
	}
	if err := h.Profile.Replace(r.Context(), p, body.DeletedImages); err != nil {
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	writeEnvelope(w, http.StatusOK, "ok", p)
}

// ---- reviews ----

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	rs := h.Reviews.List(r.Context(), r.URL.Query().Get("sort"))
	writeEnvelope(w, http.StatusOK, "ok", rs)
}

func (h *Handlers) replaceReviews(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		writeEnvelope(w, http.StatusBadRequest, "unreadable body", nil)
		return
	}
	if t := strings.TrimSpace(string(b)); !strings.HasPrefix(t, "[") {
		writeEnvelope(w, http.StatusBadRequest, "body must be an array of reviews", nil)
		return
	}
	var rs []domain.Review
	if err := json.Unmarshal(b, &rs); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid review array: "+err.Error(), nil)
		return
	}
	if err := h.Reviews.ReplaceAll(r.Context(), rs); err != nil {
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	writeEnvelope(w, http.StatusOK, "ok", rs)
}

func (h *Handlers) appendReview(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string   `json:"name"`
		Avatar      *string  `json:"avatar"`
		Label       string   `json:"label"`
		ReviewCount string   `json:"reviewCount"`
		PhotoCount  string   `json:"photoCount"`
		Rating      any      `json:"rating"`
		Time        string   `json:"time"`
		Content     string   `json:"content"`
		Images      []string `json:"images"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeEnvelope(w, http.StatusBadRequest, "invalid review body: "+err.Error(), nil)
		return
	}
	if strings.TrimSpace(body.Content) == "" || body.Rating == nil {
		writeEnvelope(w, http.StatusBadRequest, "content and rating are required", nil)
		return
	}
	stored, err := h.Reviews.Append(r.Context(), domain.Review{
		Name:        body.Name,
		Avatar:      body.Avatar,
		Label:       body.Label,
		ReviewCount: body.ReviewCount,
		PhotoCount:  body.PhotoCount,
		Rating:      coerceRating(body.Rating),
		Time:        body.Time,
		Content:     body.Content,
		Images:      body.Images,
	})
	if err != nil {
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	writeEnvelope(w, http.StatusOK, "ok", stored)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "index")
	var (
		removed domain.Review
		err     error
	)
	if idx, aerr := strconv.Atoi(param); aerr == nil {
		removed, err = h.Reviews.DeleteAt(r.Context(), idx)
	} else {
		// compatibility shim: a non-numeric segment is a stable review id
		removed, err = h.Reviews.DeleteByID(r.Context(), param)
	}
	switch {
	case errors.Is(err, app.ErrIndexOutOfRange):
		writeEnvelope(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, app.ErrNotFound):
		writeEnvelope(w, http.StatusNotFound, err.Error(), nil)
	case err != nil:
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
	default:
		writeEnvelope(w, http.StatusOK, "ok", removed)
	}
}

// coerceRating maps whatever JSON value the client sent to an int rating,
// falling back to 5 when it does not parse.
func coerceRating(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 5
}

// ---- uploads ----

func (h *Handlers) upload(field string, single bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(64 << 20); err != nil {
			writeEnvelope(w, http.StatusBadRequest, "invalid multipart form: "+err.Error(), nil)
			return
		}
		var fhs []*multipart.FileHeader
		if r.MultipartForm != nil {
			fhs = r.MultipartForm.File[field]
		}
		if len(fhs) == 0 {
			writeEnvelope(w, http.StatusBadRequest, "no file under field "+strconv.Quote(field), nil)
			return
		}
		if single {
			fhs = fhs[:1]
		} else if len(fhs) > h.MaxBatch {
			writeEnvelope(w, http.StatusBadRequest, "at most "+strconv.Itoa(h.MaxBatch)+" files per request", nil)
			return
		}

		// validate the whole batch before writing anything
		for _, fh := range fhs {
			if err := h.Files.Validate(field, fh); err != nil {
				writeEnvelope(w, http.StatusBadRequest, err.Error()+": "+fh.Filename, nil)
				return
			}
		}

		paths := make([]string, 0, len(fhs))
		for _, fh := range fhs {
			p, err := h.Files.Save(field, fh)
			if err != nil {
				writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
				return
			}
			paths = append(paths, p)
		}
		if single {
			writeEnvelope(w, http.StatusOK, "ok", map[string]string{"filePath": paths[0]})
			return
		}
		writeEnvelope(w, http.StatusOK, "ok", map[string][]string{"filePaths": paths})
	}
}

func (h *Handlers) deleteFile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FilePath string `json:"filePath"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.FilePath) == "" {
		writeEnvelope(w, http.StatusBadRequest, "filePath is required", nil)
		return
	}
	existed, err := h.Files.Delete(body.FilePath)
	switch {
	case errors.Is(err, uploads.ErrEscapesRoot):
		writeEnvelope(w, http.StatusBadRequest, err.Error(), nil)
	case err != nil:
		writeEnvelope(w, http.StatusInternalServerError, err.Error(), nil)
	case !existed:
		writeEnvelope(w, http.StatusNotFound, "file not found", nil)
	default:
		writeEnvelope(w, http.StatusOK, "ok", nil)
	}
}

package http

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	authmw "github.com/mind-engage/mindengage-quiz/internal/auth/middleware"
	"github.com/mind-engage/mindengage-quiz/internal/rbac"
	"github.com/mind-engage/mindengage-quiz/internal/storage"
)

const maxImageBytes = 5 << 20

var imageExt = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// MountAssets serves question images. Uploads return the URL to put into a
// question's imageUrl or a content item's imageUrl. Reads are public: keys
// are random.
//
//	POST /assets/images   multipart field "file" (quiz authors)
//	GET  /assets/*
func MountAssets(r chi.Router, bs storage.BlobStore, authSvc *authmw.AuthService, checker *rbac.Checker, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	r.With(authmw.JWTMiddleware(authSvc), checker.Require(rbac.PermQuizCreate)).Post("/images", func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImageBytes+1<<20)
		f, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxImageBytes+1))
		if err != nil {
			http.Error(w, "read upload", http.StatusBadRequest)
			return
		}
		if len(data) > maxImageBytes {
			http.Error(w, "image too large", http.StatusRequestEntityTooLarge)
			return
		}
		ct := http.DetectContentType(data)
		ct = strings.SplitN(ct, ";", 2)[0]
		ext, ok := imageExt[ct]
		if !ok {
			http.Error(w, "unsupported image type "+ct, http.StatusUnsupportedMediaType)
			return
		}

		key := "images/" + uuid.NewString() + ext
		if _, err := bs.Put(r.Context(), key, bytes.NewReader(data), int64(len(data)), ct); err != nil {
			serverError(w, log, "store image", err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"key": key, "url": "/assets/" + key})
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
		rc, err := bs.Get(r.Context(), key)
		switch {
		case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrBadKey):
			http.Error(w, "not found", http.StatusNotFound)
			return
		case err != nil:
			serverError(w, log, "read asset", err)
			return
		}
		defer rc.Close()
		ct := "application/octet-stream"
		for mime, ext := range imageExt {
			if path.Ext(key) == ext {
				ct = mime
			}
		}
		w.Header().Set("Content-Type", ct)
		w.Header().Set("X-Content-Type-Options", "nosniff")
		_, _ = io.Copy(w, rc)
	})
}

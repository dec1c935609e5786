package adapthttp

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"weightlog/internal/app"
)

// multipartMemory is how much of a multipart form is held in memory before
// spilling to temporary files.
const multipartMemory = 1 << 20

func (s *Server) handlePhotoList(w http.ResponseWriter, r *http.Request) {
	photos, err := s.svc.Photos.List(r.Context(), userFromContext(r).ID, r.URL.Query().Get("weightRecordId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": photos})
}

func (s *Server) handlePhotoUpload(w http.ResponseWriter, r *http.Request) {
	// Leave room for the multipart envelope and the text fields.
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{"error": "file too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid multipart form"})
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			s.log.Warn("remove multipart temp files", zap.Error(err))
		}
	}()

	up := app.PhotoUpload{
		WeightRecordID: r.FormValue("weightRecordId"),
		Description:    r.FormValue("description"),
	}
	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// Upload rejects the missing file.
	case err != nil:
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid file"})
		return
	default:
		defer file.Close()
		up.Content = file
		up.OriginalName = header.Filename
		up.Size = header.Size
	}

	photo, err := s.svc.Photos.Upload(r.Context(), userFromContext(r).ID, up)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, photo)
}

func (s *Server) handlePhotoDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Photos.Delete(r.Context(), userFromContext(r).ID, r.PathValue("id")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "photo deleted"})
}

func (s *Server) handlePhotoGallery(w http.ResponseWriter, r *http.Request) {
	g, err := s.svc.Photos.Gallery(r.Context(), userFromContext(r).ID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handlePhotoCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	c, err := s.svc.Photos.Compare(r.Context(), userFromContext(r).ID, q.Get("before"), q.Get("after"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	rc, photo, err := s.svc.Photos.Open(r.Context(), userFromContext(r).ID, r.PathValue("filename"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", photo.MimeType)
	if photo.FileSize > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(photo.FileSize, 10))
	}
	if _, err := io.Copy(w, rc); err != nil {
		s.log.Warn("stream photo", zap.String("filename", photo.Filename), zap.Error(err))
	}
}

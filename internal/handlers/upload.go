package handlers

import (
	"errors"
	"net/http"

	"github.com/crucial707/fintrack/internal/apperr"
	"github.com/crucial707/fintrack/internal/metrics"
	"github.com/crucial707/fintrack/internal/response"
	"github.com/crucial707/fintrack/internal/upload"
)

// UploadField is the multipart field that carries the image.
const UploadField = "image"

// multipartOverhead bounds the non-file bytes of an upload request.
const multipartOverhead = 1 << 20

var (
	errTooLarge  = apperr.New(apperr.InvalidInput, "File too large. Maximum size is 5MB.")
	errTooMany   = apperr.New(apperr.InvalidInput, "Too many files. Only 1 file allowed.")
	errNotImage  = apperr.New(apperr.InvalidInput, "Only image files are allowed!")
	errNoFile    = apperr.New(apperr.InvalidInput, "No file uploaded")
	errMultipart = apperr.New(apperr.InvalidInput, "invalid multipart form")
)

// ==========================
// Upload Handler
// ==========================
type UploadHandler struct {
	Store *upload.Store
}

// Upload stores a single image and returns its public URL.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, upload.MaxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			h.reject(w, r, errTooLarge)
			return
		}
		h.reject(w, r, errMultipart)
		return
	}
	defer r.MultipartForm.RemoveAll()

	count := 0
	for _, files := range r.MultipartForm.File {
		count += len(files)
	}
	if count > 1 {
		h.reject(w, r, errTooMany)
		return
	}
	files := r.MultipartForm.File[UploadField]
	if len(files) == 0 {
		h.reject(w, r, errNoFile)
		return
	}

	fh := files[0]
	if fh.Size > upload.MaxFileSize {
		h.reject(w, r, errTooLarge)
		return
	}
	if !upload.IsImage(fh.Header.Get("Content-Type")) {
		h.reject(w, r, errNotImage)
		return
	}

	src, err := fh.Open()
	if err != nil {
		metrics.IncUpload("error")
		response.Error(w, r, err)
		return
	}
	defer src.Close()

	name, err := h.Store.Save(fh.Filename, src)
	if err != nil {
		metrics.IncUpload("error")
		response.Error(w, r, err)
		return
	}

	// The declared type is client-controlled; the stored bytes must agree.
	sniffed, err := h.Store.ContentType(name)
	if err != nil {
		h.Store.Remove(name, nil)
		metrics.IncUpload("error")
		response.Error(w, r, err)
		return
	}
	if !upload.IsImage(sniffed) {
		h.Store.Remove(name, nil)
		h.reject(w, r, errNotImage)
		return
	}

	metrics.IncUpload("ok")
	response.OK(w, http.StatusCreated, map[string]string{
		"url":      upload.URL(name),
		"filename": name,
	}, "File uploaded successfully")
}

func (h *UploadHandler) reject(w http.ResponseWriter, r *http.Request, err error) {
	metrics.IncUpload("rejected")
	response.Error(w, r, err)
}

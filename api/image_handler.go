package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/acamacho/portfolio-backend/errs"
	"github.com/acamacho/portfolio-backend/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type imageHandler struct {
	responder Responder
	logger    zerolog.Logger
	blobs     *services.BlobStore
}

func newImageHandler(blobs *services.BlobStore) imageHandler {
	logger := log.With().Str("handlerName", "imageHandler").Logger()

	return imageHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blobs:     blobs,
	}
}

// requestUploadSlot returns a presigned URL the dashboard uploads the image
// file to directly, together with the storage id to persist on the project.
func (h imageHandler) requestUploadSlot() http.HandlerFunc {
	type uploadSlotRequest struct {
		ContentType string `json:"contentType"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req uploadSlotRequest
		// An empty body is fine; contentType defaults inside the blob store
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		slot, err := h.blobs.RequestUploadSlot(r.Context(), req.ContentType)
		if err != nil {
			h.responder.WriteError(w, errs.NewUploadFailureError("presign", err))
			return
		}

		h.responder.WriteJSON(w, slot)
	}
}

// storeImage confirms an upload completed and echoes the storage id back.
// The object must actually exist in the bucket before we acknowledge it.
func (h imageHandler) storeImage() http.HandlerFunc {
	type storeImageRequest struct {
		StorageID string `json:"storageId"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req storeImageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.StorageID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing storageId"))
			return
		}

		exists, err := h.blobs.Exists(r.Context(), req.StorageID)
		if err != nil {
			h.responder.WriteError(w, errs.NewUploadFailureError("verify", err))
			return
		}
		if !exists {
			h.responder.WriteError(w, errs.NewBlobNotFoundError(req.StorageID))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"storageId": req.StorageID})
	}
}

// resolveImageURL returns a fetchable URL for a stored blob
func (h imageHandler) resolveImageURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storageID := chi.URLParam(r, "storageID")
		if storageID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing storageID"))
			return
		}

		exists, err := h.blobs.Exists(r.Context(), storageID)
		if err != nil {
			h.responder.WriteError(w, errs.NewUploadFailureError("verify", err))
			return
		}
		if !exists {
			h.responder.WriteError(w, errs.NewBlobNotFoundError(storageID))
			return
		}

		url, expiresAt, err := h.blobs.ResolveURL(r.Context(), storageID)
		if err != nil {
			h.responder.WriteError(w, errs.NewUploadFailureError("presign", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"url":       url,
			"expiresAt": expiresAt,
		})
	}
}

// proxyImage streams a stored image through with its original content type and
// a long-lived immutable cache header, so the marketing pages can hotlink
// /images/{storageID} without knowing about the blob store.
func (h imageHandler) proxyImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storageID := chi.URLParam(r, "storageID")
		if storageID == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing storageID"))
			return
		}

		body, contentType, err := h.blobs.Fetch(r.Context(), storageID)
		if err != nil {
			if errors.Is(err, services.ErrBlobMissing) {
				h.responder.WriteError(w, errs.NewBlobNotFoundError(storageID))
				return
			}
			h.responder.WriteError(w, errs.NewUploadFailureError("fetch", err))
			return
		}
		defer body.Close()

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		if _, err := io.Copy(w, body); err != nil {
			h.logger.Error().Err(err).Str("storageID", storageID).Msg("Failed streaming image")
		}
	}
}

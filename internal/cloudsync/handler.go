package cloudsync

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=cloudsync_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrota/internal/telemetry/tracing"
	"github.com/2beens/gymrota/pkg"
)

type syncService interface {
	Upload(ctx context.Context) (string, error)
	Download(ctx context.Context, manualID string) (*RestoreReport, error)
	Status(ctx context.Context) (*Status, error)
	SetSyncID(ctx context.Context, id string) error
}

type SyncIDRequest struct {
	SyncID string `json:"syncId"`
}

type SyncIDResponse struct {
	SyncID string `json:"syncId"`
}

type Handler struct {
	service syncService
}

func NewHandler(service syncService) *Handler {
	return &Handler{
		service: service,
	}
}

// decodeSyncIDRequest accepts an empty body
func decodeSyncIDRequest(r *http.Request) (SyncIDRequest, error) {
	var req SyncIDRequest
	if r.Body == nil {
		return req, nil
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, 4096)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}

func (handler *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.upload")
	defer span.End()

	syncID, err := handler.service.Upload(ctx)
	if err != nil {
		log.Errorf("cloud upload failed: %s", err)
		http.Error(w, "upload failed", http.StatusBadGateway)
		return
	}

	pkg.WriteJSONResponseOK(w, SyncIDResponse{SyncID: syncID})
}

func (handler *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.download")
	defer span.End()

	req, err := decodeSyncIDRequest(r)
	if err != nil {
		log.Errorf("cloud download, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	report, err := handler.service.Download(ctx, req.SyncID)
	switch {
	case errors.Is(err, ErrNoSyncID):
		http.Error(w, "no sync id found", http.StatusBadRequest)
		return
	case errors.Is(err, ErrBlobNotFound), errors.Is(err, ErrEmptyBlob):
		http.Error(w, "cloud data not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("cloud download failed: %s", err)
		http.Error(w, "download failed", http.StatusBadGateway)
		return
	}

	pkg.WriteJSONResponseOK(w, report)
}

func (handler *Handler) HandleGetSyncID(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.getId")
	defer span.End()

	status, err := handler.service.Status(ctx)
	if err != nil {
		log.Errorf("get sync status: %s", err)
		http.Error(w, "failed to get sync id", http.StatusInternalServerError)
		return
	}
	if status.SyncID == "" {
		http.Error(w, "no sync id found", http.StatusNotFound)
		return
	}

	pkg.WriteJSONResponseOK(w, status)
}

func (handler *Handler) HandleSetSyncID(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sync.setId")
	defer span.End()

	req, err := decodeSyncIDRequest(r)
	if err != nil {
		log.Errorf("set sync id, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	syncID := strings.TrimSpace(req.SyncID)
	if err := handler.service.SetSyncID(ctx, syncID); err != nil {
		if errors.Is(err, ErrInvalidSyncID) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("set sync id: %s", err)
		http.Error(w, "failed to set sync id", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, SyncIDResponse{SyncID: syncID})
}

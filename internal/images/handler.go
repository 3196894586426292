package images

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=images_test

import (
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrota/internal/telemetry/tracing"
	"github.com/2beens/gymrota/pkg"
)

type imageLookup interface {
	Lookup(ctx context.Context, exerciseName string) *string
}

type imageRepairer interface {
	Repair(ctx context.Context) RepairReport
}

type fileOpener interface {
	Open(name string) (io.ReadCloser, error)
}

type LookupResponse struct {
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

type Handler struct {
	lookup   imageLookup
	repairer imageRepairer
	files    fileOpener
}

func NewHandler(lookup imageLookup, repairer imageRepairer, files fileOpener) *Handler {
	return &Handler{
		lookup:   lookup,
		repairer: repairer,
		files:    files,
	}
}

func (handler *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.images.lookup")
	defer span.End()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}

	pkg.WriteJSONResponseOK(w, LookupResponse{
		Name:  name,
		Image: handler.lookup.Lookup(ctx, name),
	})
}

func (handler *Handler) HandleRepair(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.images.repair")
	defer span.End()

	report := handler.repairer.Repair(ctx)
	pkg.WriteJSONResponseOK(w, report)
}

func (handler *Handler) HandleGetFile(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.images.file")
	defer span.End()

	name := mux.Vars(r)["name"]
	if name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}

	file, err := handler.files.Open(name)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}
		log.Errorf("get image file %s: %s", name, err)
		http.Error(w, "failed to get image", http.StatusInternalServerError)
		return
	}
	defer file.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "max-age=86400")

	if _, err := io.Copy(w, file); err != nil {
		log.Errorf("write image file %s: %s", name, err)
	}
}

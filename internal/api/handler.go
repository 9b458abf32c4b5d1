package api

import (
	"context"
	"io"
	"time"

	"github.com/astrelina/helia/internal/metrics"
	"github.com/astrelina/helia/internal/services"
	"github.com/astrelina/helia/internal/store"
)

// AnalysisFiles is the file surface of the records backend;
// *backend.Client satisfies it.
type AnalysisFiles interface {
	DownloadAnalysis(ctx context.Context, id string) (io.ReadCloser, error)
}

type Handler struct {
	store       *store.Store
	coordinator *services.MutationCoordinator
	kp          *services.KpService
	files       AnalysisFiles
	metrics     *metrics.Metrics
	location    *time.Location
	now         func() time.Time
}

func NewHandler(
	recordStore *store.Store,
	coordinator *services.MutationCoordinator,
	kp *services.KpService,
	files AnalysisFiles,
	collected *metrics.Metrics,
	location *time.Location,
) *Handler {
	return &Handler{
		store:       recordStore,
		coordinator: coordinator,
		kp:          kp,
		files:       files,
		metrics:     collected,
		location:    location,
		now:         time.Now,
	}
}

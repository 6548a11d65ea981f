package service

import (
	"context"
	"io"

	"github.com/ds124wfegd/iconify/internal/entity"
	"github.com/ds124wfegd/iconify/internal/pkg/processor"
	"github.com/ds124wfegd/iconify/internal/pkg/storage"
)

type ComposeService interface {
	// Run composites every icon of job onto the profile picture and writes one PNG per icon.
	// The first failure aborts the run; outputs already written stay on disk.
	Run(ctx context.Context, job entity.Job) ([]entity.Result, error)
	// ComposeStream composites a single icon and writes the PNG to w.
	ComposeStream(ctx context.Context, opts processor.Options, profile, icon io.Reader, w io.Writer) (entity.Rect, error)
	Options() processor.Options
}

type composeService struct {
	processor  processor.ImageProcessor
	naming     entity.Naming
	newStorage func(dir string) storage.FileStorage
}

func NewComposeService(processor processor.ImageProcessor, naming entity.Naming) ComposeService {
	return &composeService{
		processor:  processor,
		naming:     naming,
		newStorage: storage.NewFileStorage,
	}
}

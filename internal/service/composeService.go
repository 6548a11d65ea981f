package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/iconify/internal/entity"
	"github.com/ds124wfegd/iconify/internal/pkg/processor"
)

func (s *composeService) Options() processor.Options {
	return s.processor.Options()
}

func (s *composeService) Run(ctx context.Context, job entity.Job) ([]entity.Result, error) {
	outDir := job.OutDir
	if outDir == "" {
		outDir = entity.DefaultOutDir(job.ProfilePath)
	}

	log := logrus.WithFields(logrus.Fields{
		"run_id":  uuid.New().String(),
		"profile": job.ProfilePath,
		"out_dir": outDir,
	})

	profile, err := processor.Open(job.ProfilePath)
	if err != nil {
		return nil, err
	}

	template, err := s.processor.Normalize(profile)
	if err != nil {
		return nil, err
	}
	format, _ := processor.FormatOf(template)
	log.WithFields(logrus.Fields{
		"width":  template.Bounds().Dx(),
		"height": template.Bounds().Dy(),
		"format": format,
	}).Debug("profile picture normalized")

	store := s.newStorage(outDir)
	if err := store.Init(); err != nil {
		return nil, fmt.Errorf("%w %s: %v", entity.ErrOutputDir, outDir, err)
	}

	compression := s.processor.Options().Compression
	results := make([]entity.Result, 0, len(job.IconPaths))
	for _, iconPath := range job.IconPaths {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		icon, err := processor.Open(iconPath)
		if err != nil {
			return results, err
		}

		out, rect, err := s.processor.Compose(template, icon)
		if err != nil {
			return results, err
		}

		name := s.naming.OutputName(job.ProfilePath, iconPath)
		var buf bytes.Buffer
		if err := processor.EncodePNG(&buf, out, compression); err != nil {
			return results, fmt.Errorf("%w %s: %v", entity.ErrWrite, name, err)
		}
		if err := store.Save(name, &buf); err != nil {
			return results, fmt.Errorf("%w %s: %v", entity.ErrWrite, store.Path(name), err)
		}

		result := entity.Result{Icon: iconPath, Output: store.Path(name), Placed: rect}
		log.WithFields(logrus.Fields{
			"icon":   iconPath,
			"output": result.Output,
			"rect":   rect.String(),
		}).Info("icon composited")
		results = append(results, result)
	}

	log.WithField("count", len(results)).Debug("run finished")
	return results, nil
}

func (s *composeService) ComposeStream(ctx context.Context, opts processor.Options, profile, icon io.Reader, w io.Writer) (entity.Rect, error) {
	if err := ctx.Err(); err != nil {
		return entity.Rect{}, err
	}

	pfp, err := processor.Decode(profile)
	if err != nil {
		return entity.Rect{}, fmt.Errorf("profile: %w", err)
	}
	ico, err := processor.Decode(icon)
	if err != nil {
		return entity.Rect{}, fmt.Errorf("icon: %w", err)
	}

	p := processor.NewImageProcessor(opts)
	template, err := p.Normalize(pfp)
	if err != nil {
		return entity.Rect{}, err
	}
	out, rect, err := p.Compose(template, ico)
	if err != nil {
		return entity.Rect{}, err
	}

	if err := processor.EncodePNG(w, out, opts.Compression); err != nil {
		return rect, fmt.Errorf("%w: %v", entity.ErrWrite, err)
	}
	return rect, nil
}

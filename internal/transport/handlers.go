package transport

import (
	"github.com/ds124wfegd/iconify/internal/service"
)

type ComposeHandler struct {
	service        service.ComposeService
	maxUploadBytes int64
}

func NewComposeHandler(service service.ComposeService, maxUploadBytes int64) *ComposeHandler {
	return &ComposeHandler{service: service, maxUploadBytes: maxUploadBytes}
}

// launching the HTTP compositor
package appServer

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/iconify/config"
	"github.com/ds124wfegd/iconify/internal/pkg/processor"
	"github.com/ds124wfegd/iconify/internal/service"
	"github.com/ds124wfegd/iconify/internal/transport"
)

type Server struct {
	httpServer *http.Server
}

func (s *Server) Run(cfg *config.Config, handler http.Handler) error {
	s.httpServer = &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           handler,
		MaxHeaderBytes:    1 << 20,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       cfg.Server.Idle_timeout,
		ReadHeaderTimeout: 3 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ErrorLog:          log.New(logrus.StandardLogger().WriterLevel(logrus.ErrorLevel), "", 0),
	}
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// NewHandler wires processor, service and routes from cfg.
func NewHandler(cfg *config.Config) (http.Handler, error) {
	opts, err := cfg.Compose.ProcessorOptions()
	if err != nil {
		return nil, err
	}
	naming, err := cfg.Compose.NamingScheme()
	if err != nil {
		return nil, err
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	imgProcessor := processor.NewImageProcessor(opts)
	composeService := service.NewComposeService(imgProcessor, naming)
	composeHandler := transport.NewComposeHandler(composeService, cfg.Server.MaxUploadBytes)
	return transport.InitRoutes(composeHandler), nil
}

// NewServer serves until SIGINT or SIGTERM, then shuts down gracefully.
func NewServer(cfg *config.Config) error {
	handler, err := NewHandler(cfg)
	if err != nil {
		return err
	}

	srv := new(Server)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Run(cfg, handler); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	logrus.WithField("addr", cfg.Server.Address()).Info("App Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	logrus.Print("App Shutting Down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
		return err
	}
	return nil
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/techagentng/dutyreport/config"
	"github.com/techagentng/dutyreport/db"
	"github.com/techagentng/dutyreport/services"
)

const shutdownTimeout = 10 * time.Second

// Server holds the dependencies shared by every handler.
type Server struct {
	Config              *config.Config
	Logger              *logrus.Logger
	AuthRepository      db.AuthRepository
	Blacklist           db.TokenBlacklist
	AuthService         services.AuthService
	OrganizationService services.OrganizationService
	DutyService         services.DutyService
	OfficerService      services.OfficerService
	DeploymentService   services.DeploymentService
}

// Start serves the API until SIGINT or SIGTERM, then drains in-flight
// requests for up to shutdownTimeout.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.Config.Port),
		Handler:           s.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.Logger.WithField("addr", srv.Addr).Info("server started")
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listening")
		}
		return nil
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown")
	}
	s.Logger.Info("server exited")
	return nil
}

package main

import "github.com/daniacca/chemreg/internal/chemreg"

// chemregLoggerAdapter adapts the server's Logger to the chemreg.Logger interface
type chemregLoggerAdapter struct {
	logger *Logger
}

func (a *chemregLoggerAdapter) Debugf(format string, v ...any) {
	a.logger.Debugf(format, v...)
}

func (a *chemregLoggerAdapter) Infof(format string, v ...any) {
	a.logger.Infof(format, v...)
}

func (a *chemregLoggerAdapter) Warnf(format string, v ...any) {
	a.logger.Warnf(format, v...)
}

func (a *chemregLoggerAdapter) Errorf(format string, v ...any) {
	a.logger.Errorf(format, v...)
}

// Server represents the HTTP server for the chemreg registries
type Server struct {
	set          *chemreg.Set
	notifierMgr  *chemreg.NotificationManager
	snapshotFile string
	logger       *Logger
}

// NewServer creates a new server instance holding one set of registries
func NewServer(logger *Logger) *Server {
	// Convert server logger to chemreg.Logger interface
	chemLogger := &chemregLoggerAdapter{logger: logger}
	notifierMgr := chemreg.NewNotificationManagerWithLogger(chemLogger)
	set := chemreg.NewSetWithLogger(chemLogger)
	set.SetNotificationManager(notifierMgr)
	return &Server{
		set:         set,
		notifierMgr: notifierMgr,
		logger:      logger,
	}
}

// SetSnapshotFile sets the file path where snapshots are stored
func (s *Server) SetSnapshotFile(path string) {
	s.snapshotFile = path
}

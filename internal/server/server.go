package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	readTimeout       = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 30 * time.Second
)

type Server struct {
	*gin.Engine
	server *http.Server
}

// New prepares the server for addr. It is ready for Stop before Run starts.
func New(engine *gin.Engine, addr string) *Server {
	return &Server{
		Engine: engine,
		server: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
		},
	}
}

// Run serves until Stop is called. A clean shutdown returns nil.
func (srv *Server) Run() error {
	if err := srv.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (srv *Server) Stop(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.server.Shutdown(ctx)
}

package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/quantprep/internal/evaluation"
	"github.com/abhisek/quantprep/internal/llm"
	"github.com/abhisek/quantprep/internal/questiongen"
)

// Options wires the pipeline into the HTTP boundary.
type Options struct {
	Addr    string
	GinMode string

	Generator questiongen.Generator
	Evaluator *evaluation.Evaluator

	// Provider is the bare provider used by the free-text connectivity
	// endpoint, which bypasses schema validation entirely.
	Provider llm.Provider

	// TestTimeout bounds the connectivity check's upstream call.
	TestTimeout time.Duration
}

// Server is the HTTP boundary. It holds no per-request state; concurrent
// requests are independent and the pipeline needs no locking.
type Server struct {
	opts   Options
	engine *gin.Engine
}

// New builds the gin engine with all routes registered.
func New(opts Options) *Server {
	if opts.GinMode != "" {
		gin.SetMode(opts.GinMode)
	}

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), RequestID())

	s := &Server{opts: opts, engine: engine}

	engine.POST("/generate_question", s.generateQuestion)
	engine.POST("/evaluate_answer", s.evaluateAnswer)
	engine.POST("/test_llm", s.testLLM)
	engine.GET("/healthz", s.healthz)

	return s
}

// Handler exposes the engine for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until SIGINT/SIGTERM, then drains with a bounded timeout.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    s.opts.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("quantprep listening on %s", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Println("server exited gracefully")
	return nil
}

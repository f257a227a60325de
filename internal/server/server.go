// Package server exposes the invoicing pipeline over HTTP.
package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/dian-processor/internal/model"
	"github.com/rezonia/dian-processor/internal/processor"
	"github.com/rezonia/dian-processor/internal/validator"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
}

// NewServer creates a new API server around an already-wired pipeline
func NewServer(config *Config, pipeline *processor.Pipeline) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:   config,
		router:   router,
		pipeline: pipeline,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/invoices/validate", s.handleValidate)
		v1.POST("/invoices/process", s.handleProcess)
		v1.POST("/invoices/batch", s.handleBatch)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleValidate(c *gin.Context) {
	var inv model.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice payload", Details: err.Error()})
		return
	}
	inv.ApplyDefaults()

	valid, errs := validator.Validate(&inv)
	c.JSON(http.StatusOK, ValidationResponse{
		DocumentNumber: inv.DocumentNumber,
		Valid:          valid,
		Errors:         errs,
	})
}

func (s *Server) handleProcess(c *gin.Context) {
	var inv model.Invoice
	if err := c.ShouldBindJSON(&inv); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice payload", Details: err.Error()})
		return
	}
	inv.ApplyDefaults()

	result := s.pipeline.Process(c.Request.Context(), &inv)

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, toResultResponse(result))
}

func (s *Server) handleBatch(c *gin.Context) {
	var invoices []*model.Invoice
	if err := c.ShouldBindJSON(&invoices); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid batch payload", Details: err.Error()})
		return
	}
	if len(invoices) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "batch is empty"})
		return
	}
	for _, inv := range invoices {
		inv.ApplyDefaults()
	}

	workers := 0
	if raw := c.Query("workers"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "workers must be a positive integer"})
			return
		}
		workers = n
	}

	results := s.pipeline.ProcessBatch(c.Request.Context(), invoices, workers)
	report := processor.Summarize(results)

	resp := BatchResponse{
		Total:       report.Total,
		Succeeded:   report.Succeeded,
		Failed:      report.Failed,
		SuccessRate: report.SuccessRate,
		AverageTime: report.AverageTime.Seconds(),
		Results:     make([]ResultResponse, 0, len(results)),
	}
	for _, r := range results {
		resp.Results = append(resp.Results, toResultResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

func toResultResponse(r *model.ProcessingResult) ResultResponse {
	return ResultResponse{
		InvoiceNumber:   r.InvoiceNumber,
		Success:         r.Success,
		ResponseCode:    r.ResponseCode,
		ResponseMessage: r.ResponseMessage,
		DocumentUUID:    r.DocumentUUID,
		ProcessingTime:  r.ProcessingTime.Seconds(),
		ErrorDetails:    r.ErrorDetails,
	}
}

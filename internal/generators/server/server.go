package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/terrascribe/terrascribe/internal/build_info"
	"github.com/terrascribe/terrascribe/internal/services/github"
	"github.com/terrascribe/terrascribe/internal/services/intent"
	"github.com/terrascribe/terrascribe/internal/services/render"
	"github.com/terrascribe/terrascribe/internal/types"
)

// Publisher pushes a rendered bundle to version control. The GitHub implementation
// lives in services/github; tests substitute their own.
type Publisher interface {
	Publish(ctx context.Context, spec types.ResourceSpec, bundle types.TemplateBundle, branchName string) (*types.PublishResult, error)
}

type ServerOpts struct {
	Config    *types.Config
	Publisher Publisher
}

const defaultHeartbeatInterval = 30 * time.Second

type Server struct {
	config    *types.Config
	publisher Publisher

	intentService *intent.Service
	renderService *render.Service

	heartbeatInterval time.Duration
}

func NewServer(opts ServerOpts) *Server {
	cfg := opts.Config
	if cfg == nil {
		cfg = types.DefaultConfig()
	}

	return &Server{
		config:        cfg,
		publisher:     opts.Publisher,
		intentService: intent.NewService(),
		renderService: render.NewService(render.Opts{
			ProjectID:   cfg.ProjectID,
			Environment: cfg.Environment,
		}),
		heartbeatInterval: defaultHeartbeatInterval,
	}
}

func (s *Server) Run() error {
	e := s.NewEcho()

	serverAddr := fmt.Sprintf(":%s", s.config.Port)
	fullURL := fmt.Sprintf("http://localhost%s", serverAddr)
	fmt.Printf("\nterrascribe is available at %s\n", color.New(color.FgGreen).Sprint(fullURL))

	if err := e.Start(serverAddr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// NewEcho builds the configured router without starting it.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/", s.handleRoot)
	e.GET("/health", s.handleHealth)
	e.GET("/terraform/templates", s.handleListTemplates)
	e.GET("/mcp/events", s.handleMCPEvents)
	e.POST("/terraform/generate", s.handleGenerate)

	return e
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "terrascribe",
		"version": build_info.Version,
		"endpoints": map[string]string{
			"POST /terraform/generate": "generate a terraform bundle from a natural language instruction",
			"GET /terraform/templates": "list supported resource kinds",
			"GET /mcp/events":          "server-sent event heartbeat stream",
			"GET /health":              "health check",
		},
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":    "healthy",
		"service":   "terrascribe",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListTemplates(c echo.Context) error {
	kinds := []types.ResourceKind{types.KindComputeInstance, types.KindObjectStorage, types.KindVirtualNetwork}

	templates := make([]map[string]any, 0, len(kinds))
	for _, kind := range kinds {
		files, err := render.BundleFileNames(kind)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		templates = append(templates, map[string]any{
			"resource_kind": kind.String(),
			"files":         files,
			"parameters":    types.RequiredParams(kind),
		})
	}

	return c.JSON(http.StatusOK, map[string]any{"templates": templates})
}

// handleMCPEvents streams heartbeat events until the client disconnects.
func (s *Server) handleMCPEvents(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	ticker := time.NewTicker(s.heartbeatInterval)
	defer ticker.Stop()

	for {
		event := types.MCPEvent{
			Event: "heartbeat",
			Data: map[string]any{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
				"status":    "active",
			},
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal heartbeat event: %w", err)
		}
		if _, err := fmt.Fprintf(c.Response(), "data: %s\n\n", payload); err != nil {
			return nil
		}
		c.Response().Flush()

		select {
		case <-c.Request().Context().Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Server) handleGenerate(c echo.Context) error {
	var req types.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, types.GenerateResponse{
			Success: false,
			Message: "invalid request body",
		})
	}

	instruction := strings.TrimSpace(req.Instruction)
	if err := s.config.ValidateInstruction(instruction); err != nil {
		return c.JSON(http.StatusBadRequest, types.GenerateResponse{
			Success: false,
			Message: err.Error(),
		})
	}

	spec := s.intentService.Extract(instruction)
	if spec.Kind == types.KindUnrecognized {
		return c.JSON(http.StatusUnprocessableEntity, types.GenerateResponse{
			Success: false,
			Message: "could not recognize a resource kind in the instruction; supported kinds are compute-instance, object-storage and virtual-network",
		})
	}

	bundle, err := s.renderService.Render(spec)
	if err != nil {
		slog.Error("failed to render bundle", "instruction", instruction, "error", err)
		return c.JSON(http.StatusInternalServerError, types.GenerateResponse{
			Success: false,
			Message: "failed to render terraform configuration",
		})
	}

	response := types.GenerateResponse{
		Success:      true,
		Message:      fmt.Sprintf("generated terraform configuration for %s", spec.Kind),
		ResourceKind: spec.Kind.String(),
		Files:        bundle.AsMap(),
	}

	if s.publisher != nil {
		branchName := github.BranchName(spec.Kind, req.BranchName, time.Now())
		result, err := s.publisher.Publish(c.Request().Context(), spec, bundle, branchName)
		if err != nil {
			slog.Error("failed to publish bundle", "branch", branchName, "error", err)
			response.Message = fmt.Sprintf("generated terraform configuration for %s, but publishing failed: %v", spec.Kind, err)
			return c.JSON(http.StatusOK, response)
		}
		response.BranchName = result.BranchName
		response.PRURL = result.PRURL
		response.Message = fmt.Sprintf("generated terraform configuration for %s and opened a pull request", spec.Kind)
	}

	return c.JSON(http.StatusOK, response)
}

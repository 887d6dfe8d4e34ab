// Package web serves the dashboard JSON API: project lifecycle CRUD plus
// an endpoint to launch crew pipeline runs.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sdlcpilot/internal/store"
	"sdlcpilot/pkg/models"
)

// Store is the persistence surface the API consumes. The SQLite store
// implements it.
type Store interface {
	CreateProjectWithPhases(name, description string) (int64, error)
	GetProject(id int64) (*models.Project, error)
	ListProjects() ([]*models.Project, error)
	UpdateProject(id int64, u store.ProjectUpdate) error

	GetPhases(projectID int64) ([]*models.Phase, error)
	UpdatePhase(id int64, u store.PhaseUpdate) error

	CreateTask(phaseID int64, name, description, assignedTo string, dueDate *time.Time) (int64, error)
	GetTasks(phaseID int64) ([]*models.Task, error)
	UpdateTask(id int64, u store.TaskUpdate) error

	CreateDocument(projectID int64, name, content string, docType models.DocType) (int64, error)
	GetDocument(id int64) (*models.Document, error)
	GetDocuments(projectID int64) ([]*models.Document, error)

	CreateTestCase(projectID int64, name, description, expectedResult string) (int64, error)
	GetTestCases(projectID int64) ([]*models.TestCase, error)
	UpdateTestCase(id int64, u store.TestCaseUpdate) error
}

// Runner launches a crew pipeline run. The crew manager implements it.
type Runner interface {
	Run(ctx context.Context, phase models.PhaseType, projectID int64) (string, error)
}

// Server hosts the dashboard API.
type Server struct {
	store  Store
	runner Runner
	engine *gin.Engine
}

// NewServer builds the API server with all routes registered. A nil
// runner disables the pipeline run endpoint with 503 responses.
func NewServer(st Store, runner Runner) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		store:  st,
		runner: runner,
		engine: gin.New(),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(metricsMiddleware())

	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.engine.Group("/api")
	{
		api.GET("/projects", s.listProjects)
		api.POST("/projects", s.createProject)
		api.GET("/projects/:id", s.getProject)
		api.PATCH("/projects/:id", s.updateProject)

		api.GET("/projects/:id/phases", s.listPhases)
		api.PATCH("/phases/:id", s.updatePhase)

		api.GET("/phases/:id/tasks", s.listTasks)
		api.POST("/phases/:id/tasks", s.createTask)
		api.PATCH("/tasks/:id", s.updateTask)

		api.GET("/projects/:id/documents", s.listDocuments)
		api.POST("/projects/:id/documents", s.createDocument)
		api.GET("/documents/:id", s.getDocument)

		api.GET("/projects/:id/testcases", s.listTestCases)
		api.POST("/projects/:id/testcases", s.createTestCase)
		api.PATCH("/testcases/:id", s.updateTestCase)

		api.POST("/projects/:id/run/:phase", s.runPipeline)
	}

	return s
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the API until the listener fails or the process exits.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

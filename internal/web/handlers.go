package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sdlcpilot/internal/crew"
	"sdlcpilot/internal/store"
	"sdlcpilot/pkg/models"
)

// pathID parses a numeric path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func (s *Server) listProjects(c *gin.Context) {
	projects, err := s.store.ListProjects()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) createProject(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, err := s.store.CreateProjectWithPhases(req.Name, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (s *Server) getProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := s.store.GetProject(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch project"})
		return
	}
	if project == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	phases, err := s.store.GetPhases(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch phases"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project, "phases": phases})
}

func (s *Server) updateProject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u := store.ProjectUpdate{Name: req.Name, Description: req.Description}
	if req.Status != nil {
		status := models.Status(*req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		u.Status = &status
	}

	if err := s.store.UpdateProject(id, u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (s *Server) listPhases(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	phases, err := s.store.GetPhases(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch phases"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"phases": phases})
}

func (s *Server) updatePhase(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u := store.PhaseUpdate{
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Status != nil {
		status := models.Status(*req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		u.Status = &status
	}

	if err := s.store.UpdatePhase(id, u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update phase"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (s *Server) listTasks(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tasks, err := s.store.GetTasks(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch tasks"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (s *Server) createTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name        string     `json:"name" binding:"required"`
		Description string     `json:"description"`
		AssignedTo  string     `json:"assigned_to"`
		DueDate     *time.Time `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	taskID, err := s.store.CreateTask(id, req.Name, req.Description, req.AssignedTo, req.DueDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": taskID})
}

func (s *Server) updateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name        *string    `json:"name"`
		Description *string    `json:"description"`
		Status      *string    `json:"status"`
		AssignedTo  *string    `json:"assigned_to"`
		DueDate     *time.Time `json:"due_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u := store.TaskUpdate{
		Name:        req.Name,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := models.Status(*req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		u.Status = &status
	}

	if err := s.store.UpdateTask(id, u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (s *Server) listDocuments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	docs, err := s.store.GetDocuments(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch documents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"documents": docs})
}

func (s *Server) createDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name    string `json:"name" binding:"required"`
		Content string `json:"content"`
		Type    string `json:"doc_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	docType := models.DocType(req.Type)
	if !docType.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid doc_type"})
		return
	}

	docID, err := s.store.CreateDocument(id, req.Name, req.Content, docType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create document"})
		return
	}
	documentsCreatedTotal.WithLabelValues(string(docType)).Inc()

	c.JSON(http.StatusCreated, gin.H{"id": docID})
}

func (s *Server) getDocument(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	doc, err := s.store.GetDocument(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch document"})
		return
	}
	if doc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

func (s *Server) listTestCases(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	cases, err := s.store.GetTestCases(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch test cases"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"test_cases": cases})
}

func (s *Server) createTestCase(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Name           string `json:"name" binding:"required"`
		Description    string `json:"description"`
		ExpectedResult string `json:"expected_result"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	caseID, err := s.store.CreateTestCase(id, req.Name, req.Description, req.ExpectedResult)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create test case"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": caseID})
}

func (s *Server) updateTestCase(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		ActualResult *string `json:"actual_result"`
		Status       *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u := store.TestCaseUpdate{ActualResult: req.ActualResult}
	if req.Status != nil {
		status := models.TestStatus(*req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		u.Status = &status
	}

	if err := s.store.UpdateTestCase(id, u); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update test case"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// runPipeline launches a crew pipeline for a phase type. The run is
// synchronous; the response carries the generated document content.
func (s *Server) runPipeline(c *gin.Context) {
	if s.runner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "pipeline runner not configured"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	phase, err := models.ParsePhaseType(c.Param("phase"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start := time.Now()
	content, err := s.runner.Run(c.Request.Context(), phase, id)
	recordPipelineRun(string(phase), err, time.Since(start))
	if err != nil {
		var nf *crew.NotFoundError
		var ge *crew.GenerationError
		switch {
		case errors.As(err, &nf):
			c.JSON(http.StatusNotFound, gin.H{"error": nf.Error()})
		case errors.As(err, &ge):
			c.JSON(http.StatusBadGateway, gin.H{"error": ge.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"phase":   phase,
		"content": content,
	})
}

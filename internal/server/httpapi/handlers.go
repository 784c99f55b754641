package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

// Tasks

func (s *Server) handleListTasks(c *gin.Context) {
	list, err := s.tasks.List(c.Request.Context(), c.Query("ownerId"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]taskResponse, 0, len(list))
	for i := range list {
		out = append(out, toTaskResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetTask(c *gin.Context) {
	task, err := s.tasks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var in services.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Location", "/api/tasks/"+task.ID)
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var in services.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.tasks.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleReorderTasks(c *gin.Context) {
	var items []reorderItem
	if err := c.ShouldBindJSON(&items); err != nil {
		badBody(c)
		return
	}

	pairs := make([]models.TaskOrder, 0, len(items))
	for _, it := range items {
		pairs = append(pairs, models.TaskOrder{ID: it.ID, Order: it.Order})
	}

	if err := s.tasks.Reorder(c.Request.Context(), pairs); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleToggleTask takes a bare JSON boolean as its body.
func (s *Server) handleToggleTask(c *gin.Context) {
	var completed bool
	if err := c.ShouldBindJSON(&completed); err != nil {
		badBody(c)
		return
	}

	task, err := s.tasks.Toggle(c.Request.Context(), c.Param("id"), completed)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Users

func (s *Server) handleListUsers(c *gin.Context) {
	list, err := s.users.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]userResponse, 0, len(list))
	for i := range list {
		out = append(out, toUserResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetUser(c *gin.Context) {
	u, err := s.users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	u, err := s.users.Create(c.Request.Context(), in)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Location", "/api/users/"+u.ID)
	c.JSON(http.StatusCreated, toUserResponse(u))
}

func (s *Server) handleUpdateUser(c *gin.Context) {
	var in services.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badBody(c)
		return
	}

	if err := s.users.Update(c.Request.Context(), c.Param("id"), in); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	if err := s.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techagentng/dutyreport/models"
	"github.com/techagentng/dutyreport/server/response"
)

func (s *Server) handleCreateDutyType() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DutyTypeRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		dutyType, err := s.DutyService.CreateDutyType(c.Request.Context(), &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusCreated, dutyType, nil)
	}
}

func (s *Server) handleGetDutyTypes() gin.HandlerFunc {
	return func(c *gin.Context) {
		dutyTypes, err := s.DutyService.GetDutyTypes(c.Request.Context())
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, dutyTypes, nil)
	}
}

func (s *Server) handleGetDutyType() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		dutyType, err := s.DutyService.GetDutyType(c.Request.Context(), id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, dutyType, nil)
	}
}

func (s *Server) handleUpdateDutyType() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var req models.DutyTypeRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		dutyType, err := s.DutyService.UpdateDutyType(c.Request.Context(), id, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, dutyType, nil)
	}
}

func (s *Server) handleDeleteDutyType() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.DutyService.DeleteDutyType(c.Request.Context(), id); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "duty type deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleCreateArrangement() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ArrangementRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		arrangement, err := s.DutyService.CreateArrangement(c.Request.Context(), &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusCreated, arrangement, nil)
	}
}

func (s *Server) handleGetArrangements() gin.HandlerFunc {
	return func(c *gin.Context) {
		arrangements, err := s.DutyService.GetArrangements(c.Request.Context())
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, arrangements, nil)
	}
}

func (s *Server) handleGetArrangement() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		arrangement, err := s.DutyService.GetArrangement(c.Request.Context(), id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, arrangement, nil)
	}
}

func (s *Server) handleUpdateArrangement() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var req models.ArrangementRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		arrangement, err := s.DutyService.UpdateArrangement(c.Request.Context(), id, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, arrangement, nil)
	}
}

func (s *Server) handleDeleteArrangement() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.DutyService.DeleteArrangement(c.Request.Context(), id); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "arrangement deleted", http.StatusOK, nil, nil)
	}
}

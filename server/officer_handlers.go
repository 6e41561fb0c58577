package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/techagentng/dutyreport/errors"
	"github.com/techagentng/dutyreport/models"
	"github.com/techagentng/dutyreport/server/response"
)

func (s *Server) handleCreateOfficer() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.OfficerRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		officer, err := s.OfficerService.CreateOfficer(c.Request.Context(), &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusCreated, officer, nil)
	}
}

// handleGetOfficers lists active officers unless includeInactive=true.
func (s *Server) handleGetOfficers() gin.HandlerFunc {
	return func(c *gin.Context) {
		includeInactive, err := strconv.ParseBool(c.DefaultQuery("includeInactive", "false"))
		if err != nil {
			response.HandleErrors(c, errs.Validation("includeInactive must be true or false"))
			return
		}
		officers, err := s.OfficerService.GetOfficers(c.Request.Context(), includeInactive)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, officers, nil)
	}
}

func (s *Server) handleGetOfficer() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		officer, err := s.OfficerService.GetOfficer(c.Request.Context(), id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, officer, nil)
	}
}

func (s *Server) handleUpdateOfficer() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var req models.OfficerRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		officer, err := s.OfficerService.UpdateOfficer(c.Request.Context(), id, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, officer, nil)
	}
}

func (s *Server) handleUploadOfficerPhoto() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		photo, err := c.FormFile("photo")
		if err != nil {
			response.HandleErrors(c, errs.Validation("photo file is required"))
			return
		}
		officer, err := s.OfficerService.UploadPhoto(c.Request.Context(), id, photo)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, officer, nil)
	}
}

// handleDeleteOfficer deactivates the officer. Records keep referencing it.
func (s *Server) handleDeleteOfficer() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.OfficerService.DeleteOfficer(c.Request.Context(), id); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "officer deactivated", http.StatusOK, nil, nil)
	}
}

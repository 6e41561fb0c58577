package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techagentng/dutyreport/models"
	"github.com/techagentng/dutyreport/server/response"
)

func (s *Server) handleCreateZone() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ZoneRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		zone, err := s.OrganizationService.CreateZone(c.Request.Context(), &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusCreated, zone, nil)
	}
}

func (s *Server) handleGetZones() gin.HandlerFunc {
	return func(c *gin.Context) {
		zones, err := s.OrganizationService.GetZones(c.Request.Context())
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, zones, nil)
	}
}

func (s *Server) handleGetZone() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		zone, err := s.OrganizationService.GetZone(c.Request.Context(), id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, zone, nil)
	}
}

func (s *Server) handleUpdateZone() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var req models.ZoneRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		zone, err := s.OrganizationService.UpdateZone(c.Request.Context(), id, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, zone, nil)
	}
}

// handleDeleteZone also removes the zone's units and their stations.
func (s *Server) handleDeleteZone() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.OrganizationService.DeleteZone(c.Request.Context(), id); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "zone deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleCreateUnit() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UnitRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		unit, err := s.OrganizationService.CreateUnit(c.Request.Context(), &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusCreated, unit, nil)
	}
}

func (s *Server) handleGetUnits() gin.HandlerFunc {
	return func(c *gin.Context) {
		zoneID, err := queryID(c, "zoneId")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		units, err := s.OrganizationService.GetUnits(c.Request.Context(), zoneID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, units, nil)
	}
}

func (s *Server) handleGetUnit() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		unit, err := s.OrganizationService.GetUnit(c.Request.Context(), id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, unit, nil)
	}
}

func (s *Server) handleUpdateUnit() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var req models.UnitRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		unit, err := s.OrganizationService.UpdateUnit(c.Request.Context(), id, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, unit, nil)
	}
}

// handleDeleteUnit also removes the unit's stations.
func (s *Server) handleDeleteUnit() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.OrganizationService.DeleteUnit(c.Request.Context(), id); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "unit deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleCreateStation() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.PoliceStationRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		station, err := s.OrganizationService.CreateStation(c.Request.Context(), &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusCreated, station, nil)
	}
}

func (s *Server) handleGetStations() gin.HandlerFunc {
	return func(c *gin.Context) {
		unitID, err := queryID(c, "unitId")
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		stations, err := s.OrganizationService.GetStations(c.Request.Context(), unitID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, stations, nil)
	}
}

func (s *Server) handleGetStation() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		station, err := s.OrganizationService.GetStation(c.Request.Context(), id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, station, nil)
	}
}

func (s *Server) handleUpdateStation() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var req models.PoliceStationRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		station, err := s.OrganizationService.UpdateStation(c.Request.Context(), id, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, station, nil)
	}
}

func (s *Server) handleDeleteStation() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.OrganizationService.DeleteStation(c.Request.Context(), id); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "police station deleted", http.StatusOK, nil, nil)
	}
}

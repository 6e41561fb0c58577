package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techagentng/dutyreport/models"
	"github.com/techagentng/dutyreport/server/response"
)

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.HandleErrors(c, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(c.Request.Context(), &loginRequest)
		if err != nil {
			response.JSON(c, "", err.Status, nil, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

// handleLogout revokes the caller's access token.
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken, apiErr := GetTokenFromContext(c)
		if apiErr != nil {
			respondAndAbort(c, "", apiErr.Status, nil, apiErr)
			return
		}
		if err := s.AuthService.Logout(c.Request.Context(), accessToken); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, apiErr := GetUserFromContext(c)
		if apiErr != nil {
			respondAndAbort(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "", http.StatusOK, user, nil)
	}
}

func (s *Server) handleCreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.UserRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		user, err := s.AuthService.CreateUser(c.Request.Context(), &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusCreated, user, nil)
	}
}

func (s *Server) handleGetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := s.AuthService.GetAllUsers(c.Request.Context())
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, users, nil)
	}
}

func (s *Server) handleGetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		user, err := s.AuthService.GetUserProfile(c.Request.Context(), id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, user, nil)
	}
}

func (s *Server) handleUpdateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		var req models.UpdateUserRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}
		user, err := s.AuthService.UpdateUser(c.Request.Context(), id, &req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, user, nil)
	}
}

func (s *Server) handleDeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		actor, apiErr := GetUserFromContext(c)
		if apiErr != nil {
			respondAndAbort(c, "", apiErr.Status, nil, apiErr)
			return
		}
		if err := s.AuthService.DeleteUser(c.Request.Context(), actor, id); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "user deleted", http.StatusOK, nil, nil)
	}
}

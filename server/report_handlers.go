package server

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/techagentng/dutyreport/models"
	"github.com/techagentng/dutyreport/server/response"
	"github.com/techagentng/dutyreport/services/export"
)

// handleCreateReport accepts JSON, or a multipart form whose "images"
// files are uploaded and appended to the record's image URLs.
func (s *Server) handleCreateReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.DeploymentRequest
		if err := decode(c, &req); err != nil {
			response.HandleErrors(c, err)
			return
		}

		var images []*multipart.FileHeader
		if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
			form, err := c.MultipartForm()
			if err != nil {
				response.JSON(c, "", http.StatusBadRequest, nil, err)
				return
			}
			images = form.File["images"]
		}

		record, err := s.DeploymentService.CreateRecord(c.Request.Context(), &req, images)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusCreated, record, nil)
	}
}

// scope limits non-admin readers to their zone or unit.
func scope(c *gin.Context) models.Scope {
	user, err := GetUserFromContext(c)
	if err != nil {
		return models.Scope{}
	}
	return user.Scope()
}

func (s *Server) handleGetReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := s.DeploymentService.GetRecords(c.Request.Context(), c.Query("date"), scope(c))
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, records, nil)
	}
}

func (s *Server) handleGetReportSummary() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := s.DeploymentService.GetSummary(c.Request.Context(), c.Query("date"), scope(c))
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, summary, nil)
	}
}

func (s *Server) handleDeleteReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := paramID(c)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		if err := s.DeploymentService.DeleteRecord(c.Request.Context(), id); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "deployment record deleted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleExportExcel() gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		records, err := s.DeploymentService.GetRecords(c.Request.Context(), date, scope(c))
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		f, err := export.Workbook(date, records)
		if err != nil {
			s.Logger.WithError(err).WithField("date", date).Error("building excel export")
			response.HandleErrors(c, err)
			return
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			s.Logger.WithError(err).WithField("date", date).Error("writing excel export")
			response.HandleErrors(c, err)
			return
		}
		attachment(c, fmt.Sprintf("deployment-report-%s.xlsx", date))
		c.Data(http.StatusOK, export.ExcelContentType, buf.Bytes())
	}
}

func (s *Server) handleExportPDF() gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		records, err := s.DeploymentService.GetRecords(c.Request.Context(), date, scope(c))
		if err != nil {
			response.HandleErrors(c, err)
			return
		}

		var buf bytes.Buffer
		if err := export.WritePDF(&buf, date, records); err != nil {
			s.Logger.WithError(err).WithField("date", date).Error("writing pdf export")
			response.HandleErrors(c, err)
			return
		}
		attachment(c, fmt.Sprintf("deployment-report-%s.pdf", date))
		c.Data(http.StatusOK, export.PDFContentType, buf.Bytes())
	}
}

func attachment(c *gin.Context, filename string) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}

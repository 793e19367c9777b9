package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/service"
)

// @Summary Dashboard
// @Description KPIs and recent activity. A failed source degrades to an empty list.
// @Tags Dashboard
// @Produce json
// @Param page query int false "Recent activity page" default(1)
// @Success 200 {object} models.Dashboard
// @Security ApiKeyAuth
// @Router /dashboard [get]
func (h *Handler) getDashboard(c *gin.Context) {
	log := h.logger.WithField("method", "getDashboard")
	dash, err := h.Dashboard.Get(c.Request.Context(), intQuery(c, "page", 1))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Cameras

// @Summary List cameras
// @Tags Cameras
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(5)
// @Success 200 {object} service.CameraList
// @Failure 502 {object} map[string]string "Backend unavailable"
// @Security ApiKeyAuth
// @Router /cameras [get]
func (h *Handler) listCameras(c *gin.Context) {
	log := h.logger.WithField("method", "listCameras")
	list, err := h.Cameras.List(c.Request.Context(), intQuery(c, "page", 1), intQuery(c, "page_size", service.CameraPageSize))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create a camera
// @Tags Cameras
// @Accept json
// @Produce json
// @Param camera body CameraRequest true "Camera"
// @Success 201 {object} models.Camera
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 403 {object} map[string]string "Admin role required"
// @Security ApiKeyAuth
// @Router /cameras [post]
func (h *Handler) createCamera(c *gin.Context) {
	log := h.logger.WithField("method", "createCamera")
	var input CameraRequest
	if !h.bind(c, log, &input) {
		return
	}
	cam, err := h.Cameras.Create(c.Request.Context(), actor(c), DTOToCameraInput(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, cam)
}

// @Summary Update a camera
// @Tags Cameras
// @Accept json
// @Produce json
// @Param id path string true "Camera ID"
// @Param camera body CameraRequest true "Camera"
// @Success 200 {object} models.Camera
// @Failure 403 {object} map[string]string "Admin role required"
// @Security ApiKeyAuth
// @Router /cameras/{id} [put]
func (h *Handler) updateCamera(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "updateCamera").WithField("id", id)
	var input CameraRequest
	if !h.bind(c, log, &input) {
		return
	}
	cam, err := h.Cameras.Update(c.Request.Context(), actor(c), id, DTOToCameraInput(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, cam)
}

// @Summary Delete a camera
// @Tags Cameras
// @Param id path string true "Camera ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Admin role required"
// @Security ApiKeyAuth
// @Router /cameras/{id} [delete]
func (h *Handler) deleteCamera(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "deleteCamera").WithField("id", id)
	if err := h.Cameras.Delete(c.Request.Context(), actor(c), id); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// setCameraRunning - общий обработчик /start и /stop
func (h *Handler) setCameraRunning(running bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		log := h.logger.WithField("method", "setCameraRunning").WithField("id", id)
		if err := h.Cameras.SetRunning(c.Request.Context(), actor(c), id, running); err != nil {
			h.respondError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary Start a camera pipeline
// @Tags Cameras
// @Param id path string true "Camera ID"
// @Success 204 "No Content"
// @Security ApiKeyAuth
// @Router /cameras/{id}/start [post]
func (h *Handler) startCamera(c *gin.Context) { h.setCameraRunning(true)(c) }

// @Summary Stop a camera pipeline
// @Tags Cameras
// @Param id path string true "Camera ID"
// @Success 204 "No Content"
// @Security ApiKeyAuth
// @Router /cameras/{id}/stop [post]
func (h *Handler) stopCamera(c *gin.Context) { h.setCameraRunning(false)(c) }

// @Summary MJPEG stream URL of a camera
// @Description The session token travels in the query string because image tags cannot send headers.
// @Tags Cameras
// @Produce json
// @Param id path string true "Camera ID"
// @Success 200 {object} StreamResponse
// @Security ApiKeyAuth
// @Router /cameras/{id}/stream [get]
func (h *Handler) cameraStream(c *gin.Context) {
	c.JSON(http.StatusOK, StreamResponse{URL: h.Cameras.StreamURL(c.Param("id"), h.Session.Token())})
}

// Incidents

// @Summary List incidents
// @Tags Incidents
// @Produce json
// @Param search query string false "Matches id or weapon type"
// @Param camera query string false "Camera id or all"
// @Param severity query string false "critical | high | medium | low | all"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(5)
// @Param limit query int false "Incidents fetched from the backend" default(50)
// @Success 200 {object} service.IncidentList
// @Security ApiKeyAuth
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")
	list, err := h.Incidents.ListIncidents(c.Request.Context(), service.IncidentQuery{
		Search:   c.Query("search"),
		Camera:   c.Query("camera"),
		Severity: c.Query("severity"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", service.IncidentPageSize),
		Limit:    intQuery(c, "limit", service.IncidentDefaultLimit),
	})
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Delete an incident
// @Tags Incidents
// @Param id path string true "Incident ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Admin role required"
// @Security ApiKeyAuth
// @Router /incidents/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)
	if err := h.Incidents.DeleteIncident(c.Request.Context(), actor(c), id); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Evidence

// @Summary List evidence snapshots
// @Tags Evidence
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} service.EvidenceList
// @Security ApiKeyAuth
// @Router /evidence [get]
func (h *Handler) listEvidence(c *gin.Context) {
	log := h.logger.WithField("method", "listEvidence")
	list, err := h.Evidence.List(c.Request.Context(), intQuery(c, "page", 1), intQuery(c, "page_size", service.EvidencePageSize))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Download an evidence snapshot
// @Tags Evidence
// @Produce octet-stream
// @Param id path string true "Incident ID"
// @Success 200 {file} binary
// @Failure 404 {object} map[string]string "No evidence for this incident"
// @Security ApiKeyAuth
// @Router /evidence/{id}/download [get]
func (h *Handler) downloadEvidence(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "downloadEvidence").WithField("id", id)
	file, err := h.Evidence.Download(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+strconv.Quote(file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// @Summary Copy an evidence snapshot to the archive
// @Tags Evidence
// @Produce json
// @Param id path string true "Incident ID"
// @Success 201 {object} service.ArchivedEvidence
// @Failure 503 {object} map[string]string "Archive disabled"
// @Security ApiKeyAuth
// @Router /evidence/{id}/archive [post]
func (h *Handler) archiveEvidence(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "archiveEvidence").WithField("id", id)
	res, err := h.Evidence.Archive(c.Request.Context(), actor(c), id)
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Users

// @Summary List users
// @Tags Users
// @Produce json
// @Param search query string false "Matches email, name, role or id"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} service.UserList
// @Failure 403 {object} map[string]string "Admin role required"
// @Security ApiKeyAuth
// @Router /users [get]
func (h *Handler) listUsers(c *gin.Context) {
	log := h.logger.WithField("method", "listUsers")
	list, err := h.Users.List(c.Request.Context(), actor(c), service.UserQuery{
		Search:   c.Query("search"),
		Page:     intQuery(c, "page", 1),
		PageSize: intQuery(c, "page_size", service.UserPageSize),
	})
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string "Validation error"
// @Security ApiKeyAuth
// @Router /users [post]
func (h *Handler) createUser(c *gin.Context) {
	log := h.logger.WithField("method", "createUser")
	var input CreateUserRequest
	if !h.bind(c, log, &input) {
		return
	}
	u, err := h.Users.Create(c.Request.Context(), actor(c), DTOToUserInput(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// @Summary Update a user
// @Description Sends name and email; a changed role is applied with a separate request.
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body UpdateUserRequest true "User"
// @Success 200 {object} models.User
// @Security ApiKeyAuth
// @Router /users/{id} [put]
func (h *Handler) updateUser(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "updateUser").WithField("id", id)
	var input UpdateUserRequest
	if !h.bind(c, log, &input) {
		return
	}
	u, err := h.Users.Update(c.Request.Context(), actor(c), id, DTOToUserUpdate(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary Change a user's role
// @Tags Users
// @Accept json
// @Param id path string true "User ID"
// @Param role body SetRoleRequest true "Role"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Cannot demote yourself"
// @Security ApiKeyAuth
// @Router /users/{id}/role [patch]
func (h *Handler) setUserRole(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "setUserRole").WithField("id", id)
	var input SetRoleRequest
	if !h.bind(c, log, &input) {
		return
	}
	if err := h.Users.SetRole(c.Request.Context(), actor(c), id, models.Role(input.Role)); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Activate or deactivate a user
// @Tags Users
// @Accept json
// @Param id path string true "User ID"
// @Param estado body SetEstadoRequest true "Active flag"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Cannot deactivate yourself"
// @Security ApiKeyAuth
// @Router /users/{id}/estado [patch]
func (h *Handler) setUserEstado(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "setUserEstado").WithField("id", id)
	var input SetEstadoRequest
	if !h.bind(c, log, &input) {
		return
	}
	if err := h.Users.SetActive(c.Request.Context(), actor(c), id, *input.Active); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete a user
// @Tags Users
// @Param id path string true "User ID (24 hex characters)"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid id or own account"
// @Security ApiKeyAuth
// @Router /users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id := c.Param("id")
	log := h.logger.WithField("method", "deleteUser").WithField("id", id)
	if err := h.Users.Delete(c.Request.Context(), actor(c), id); err != nil {
		h.respondError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Settings

// @Summary Get detection settings
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Settings
// @Security ApiKeyAuth
// @Router /settings [get]
func (h *Handler) getSettings(c *gin.Context) {
	log := h.logger.WithField("method", "getSettings")
	s, err := h.Settings.Get(c.Request.Context(), actor(c))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary Update detection settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param settings body SettingsRequest true "Fields to change"
// @Success 200 {object} models.Settings
// @Security ApiKeyAuth
// @Router /settings [patch]
func (h *Handler) updateSettings(c *gin.Context) {
	log := h.logger.WithField("method", "updateSettings")
	var input SettingsRequest
	if !h.bind(c, log, &input) {
		return
	}
	s, err := h.Settings.Update(c.Request.Context(), actor(c), DTOToSettingsPatch(input))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// @Summary Reset detection settings to defaults
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Settings
// @Security ApiKeyAuth
// @Router /settings/reset [post]
func (h *Handler) resetSettings(c *gin.Context) {
	log := h.logger.WithField("method", "resetSettings")
	s, err := h.Settings.Reset(c.Request.Context(), actor(c))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Audit

// @Summary List audit entries
// @Tags Audit
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(20)
// @Success 200 {object} models.Page[models.AuditEntry]
// @Failure 503 {object} map[string]string "Audit disabled"
// @Security ApiKeyAuth
// @Router /audit [get]
func (h *Handler) listAudit(c *gin.Context) {
	log := h.logger.WithField("method", "listAudit")
	page, err := h.Audit.List(c.Request.Context(), actor(c), intQuery(c, "page", 1), intQuery(c, "page_size", 20))
	if err != nil {
		h.respondError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"tillbook/internal/domain/activity"
	"tillbook/internal/infrastructure/backup"
	"tillbook/internal/infrastructure/http/v1/dto"
)

// BackupHandler serves the backup and restore endpoints.
type BackupHandler struct {
	*BaseHandler
	service  *backup.Service
	activity *activity.Service
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(base *BaseHandler, service *backup.Service, act *activity.Service) *BackupHandler {
	return &BackupHandler{BaseHandler: base, service: service, activity: act}
}

// Create handles POST /backups.
func (h *BackupHandler) Create(c *gin.Context) {
	var req dto.CreateBackupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	info, err := h.service.Create(c.Request.Context(), req.DestinationPath, req.Compress)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionBackup, "backup", 0, info.Name)
	h.OK(c, info)
}

// Restore handles POST /backups/restore. The staged file is applied on the
// next startup.
func (h *BackupHandler) Restore(c *gin.Context) {
	var req dto.RestoreBackupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Restore(c.Request.Context(), req.SourcePath); err != nil {
		h.Error(c, err)
		return
	}

	h.Record(c, h.activity, activity.ActionBackup, "restore", 0, req.SourcePath)
	h.OK(c, gin.H{"staged": true, "note": "restore applies on next startup"})
}

// List handles GET /backups?directory=.
func (h *BackupHandler) List(c *gin.Context) {
	backups, err := h.service.List(c.Request.Context(), c.Query("directory"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, backups)
}

// Prune handles POST /backups/prune.
func (h *BackupHandler) Prune(c *gin.Context) {
	var req dto.PruneBackupsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Prune(c.Request.Context(), req.Directory, req.Keep); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

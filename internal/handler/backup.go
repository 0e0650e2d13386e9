package handler

import (
	"errors"
	"net/http"
	"os"

	"localtrack/internal/backup"
	"localtrack/internal/fuelsync"
	"localtrack/internal/util"

	"github.com/gin-gonic/gin"
)

type BackupHandler struct {
	Backup *backup.Service
	Sync   *fuelsync.Synchronizer
}

func NewBackupHandler(svc *backup.Service, sync *fuelsync.Synchronizer) *BackupHandler {
	return &BackupHandler{Backup: svc, Sync: sync}
}

func (h *BackupHandler) CreateBackup(c *gin.Context) {
	info, err := h.Backup.Create(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"backup": info})
}

func (h *BackupHandler) ListBackups(c *gin.Context) {
	items, err := h.Backup.List()
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"items": items})
}

// RestoreBackup replaces the ledger with the named backup, then drops any
// fuel log whose expense did not come back with it.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	path, err := h.Backup.Path(c.Param("name"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "backup not found")
		return
	}

	counts, err := h.Backup.Restore(c.Request.Context(), path)
	if err != nil {
		respondError(c, err)
		return
	}
	healed, err := h.Sync.Heal(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	util.Success(c, util.Response{"restored": counts, "healed": len(healed)})
}

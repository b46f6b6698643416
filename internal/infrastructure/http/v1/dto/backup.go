package dto

// CreateBackupRequest snapshots the store to a destination path.
type CreateBackupRequest struct {
	DestinationPath string `json:"destinationPath" binding:"required"`
	Compress        bool   `json:"compress"`
}

// RestoreBackupRequest stages a backup file for restore on next startup.
type RestoreBackupRequest struct {
	SourcePath string `json:"sourcePath" binding:"required"`
}

// PruneBackupsRequest deletes all but the newest keep backups.
type PruneBackupsRequest struct {
	Directory string `json:"directory" binding:"required"`
	Keep      int    `json:"keep" binding:"required"`
}

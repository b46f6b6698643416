package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Defaults(t *testing.T) {
	s := Resolve(map[string]string{})

	assert.False(t, s.AutoBackupEnabled)
	assert.Equal(t, ScheduleDaily, s.BackupSchedule)
	assert.Equal(t, 5, s.KeepBackupCount)
	assert.Empty(t, s.BackupDir)
}

func TestResolve_IgnoresMalformedValues(t *testing.T) {
	s := Resolve(map[string]string{
		KeyAutoBackupEnabled: "yes", // only "true" enables
		KeyKeepBackupCount:   "not-a-number",
		KeyBackupSchedule:    "",
		"unknown_key":        "whatever",
	})

	assert.False(t, s.AutoBackupEnabled)
	assert.Equal(t, 5, s.KeepBackupCount)
	assert.Equal(t, ScheduleDaily, s.BackupSchedule)
}

func TestResolveFlattenRoundTrip(t *testing.T) {
	original := Settings{
		ShopName:           "Corner Shop",
		CurrencySymbol:     "$",
		AutoBackupEnabled:  true,
		BackupDir:          "/var/backups",
		BackupSchedule:     ScheduleWeekly,
		KeepBackupCount:    9,
		LastAutoBackupDate: "2025-04-01",
	}

	assert.Equal(t, original, Resolve(original.Flatten()))
}

func TestValidate(t *testing.T) {
	valid := Settings{BackupSchedule: ScheduleDaily, KeepBackupCount: 3}
	assert.NoError(t, valid.Validate())

	badSchedule := valid
	badSchedule.BackupSchedule = "hourly"
	assert.Error(t, badSchedule.Validate())

	badKeep := valid
	badKeep.KeepBackupCount = 0
	assert.Error(t, badKeep.Validate())
}

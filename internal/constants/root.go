package constants

const (
	AppName           = "tendril"
	DefaultConfigPath = "~/.config/tendril/tendril.db"
	Version           = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tendril-"
	BackupFileSuffix = ".json"
)

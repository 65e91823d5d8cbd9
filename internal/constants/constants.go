package constants

import "os"

const (
	Version     = "0.1.0"
	ServiceName = "faunad"

	DefaultHost         = "0.0.0.0"
	DefaultPort         = "8000"
	DefaultServerURL    = "http://localhost:8000"
	DefaultSpeciesFile  = "data/species_db.json"
	DefaultMonitorRows  = 20
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultMonitorQueue = 1024

	// Environment variables
	EnvVarConfigDir  = "FAUNA_CONFIG_DIR"
	EnvVarConfigFile = "FAUNA_CONFIG"
	EnvVarHost       = "FAUNA_HOST"
	EnvVarPort       = "FAUNA_PORT"
	EnvVarLogLevel   = "FAUNA_LOG_LEVEL"
	EnvVarLogFormat  = "FAUNA_LOG_FORMAT"
	EnvVarDataFile   = "FAUNA_DATA_FILE"
	EnvVarQueueLimit = "FAUNA_QUEUE_LIMIT"
	EnvVarServerURL  = "FAUNA_SERVER"

	// File names
	ServerConfigFileName = "faunad.yaml"
	ConfigEnvFileName    = ".env"
)

// File and directory permissions
const (
	ModeFileSecret  os.FileMode = 0o600 // .env files
	ModeFileDefault os.FileMode = 0o644 // non-secret configs
	ModeDirPrivate  os.FileMode = 0o700 // private dirs
)

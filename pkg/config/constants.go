package config

// EnvPrefix is passed to envconfig.Process; individual fields carry fully
// qualified env tags so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "MYPARTSRUNNER_DB_DSN"
	EnvDBHost = "MYPARTSRUNNER_DB_HOST"
	EnvDBUser = "MYPARTSRUNNER_DB_USER"
	EnvDBName = "MYPARTSRUNNER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

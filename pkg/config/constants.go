package config

const EnvPrefix = "ATELIER"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

const (
	EnvDBDSN  = "ATELIER_DB_DSN"
	EnvDBHost = "ATELIER_DB_HOST"
	EnvDBUser = "ATELIER_DB_USER"
	EnvDBName = "ATELIER_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	ServerConfig struct {
		Host            string
		Address         string
		DebugHost       string
		ShutdownTimeout time.Duration
		DisableReqLogs  bool
	}

	DatabaseConfig struct {
		Engine        string // postgres | sqlite
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		Path          string // sqlite file (":memory:" in tests)
	}

	AuthConfig struct {
		// JWTSecret verifies bearer tokens issued by the hosted auth provider.
		// History endpoints are public when empty.
		JWTSecret string
		Audience  string
	}

	ExportConfig struct {
		Sink      string // dir | gcs | s3
		Dir       string
		Bucket    string
		Prefix    string
		Region    string
		BatchSize int
		Timezone  *time.Location
	}

	Config struct {
		AppName          string
		Env              string
		Build            string
		Debug            bool
		TestMode         bool
		WorkDir          string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		RollbarToken     string
		SendgridAPIKey   string
		CatalogPath      string // optional YAML override of the built-in catalog
		HistoryEnabled   bool

		Server   ServerConfig
		Database DatabaseConfig
		Auth     AuthConfig
		Export   ExportConfig
	}
)

func (dbConf DatabaseConfig) Address() string {
	return dbConf.Host + ":" + dbConf.Port
}

// NewConfig reads the configuration of the current environment.
// ENV selects the environment (DEV by default) and the env var prefix; config/.env.<env> is loaded when present.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("appName", "Elimu")
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("frontendBaseUrl", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("catalogPath", "")
	v.SetDefault("historyEnabled", true)

	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("serverDebugHost", ":4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("serverDisableReqLogs", false)

	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", "5432")
	v.SetDefault("databaseName", "elimu")
	v.SetDefault("databaseUser", "elimu")
	v.SetDefault("databasePassword", "")
	v.SetDefault("databaseAdminUser", "")
	v.SetDefault("databaseAdminPassword", "")
	v.SetDefault("databaseDisableTls", true)
	v.SetDefault("databasePath", "elimu.db")

	v.SetDefault("authJwtSecret", "")
	v.SetDefault("authAudience", "authenticated")

	v.SetDefault("exportSink", "dir")
	v.SetDefault("exportDir", "exports")
	v.SetDefault("exportBucket", "")
	v.SetDefault("exportPrefix", "transcripts/")
	v.SetDefault("exportRegion", "us-east-1")
	v.SetDefault("exportBatchSize", 100)
	v.SetDefault("exportTimezone", "UTC")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("databaseEngine", "sqlite")
		v.SetDefault("databasePath", ":memory:")
	}
	v.SetEnvPrefix(env)

	workDir := ProjectRoot()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(workDir, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	loc, err := time.LoadLocation(v.GetString("exportTimezone"))
	if err != nil {
		log.Printf("config: invalid exportTimezone %q, falling back to UTC", v.GetString("exportTimezone"))
		loc = time.UTC
	}

	return &Config{
		AppName:          v.GetString("appName"),
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		WorkDir:          workDir,
		FrontendBaseURL:  v.GetString("frontendBaseUrl"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridAPIKey:   v.GetString("sendgridApiKey"),
		CatalogPath:      v.GetString("catalogPath"),
		HistoryEnabled:   v.GetBool("historyEnabled"),
		Server: ServerConfig{
			Host:            v.GetString("serverHost"),
			Address:         v.GetString("serverAddress"),
			DebugHost:       v.GetString("serverDebugHost"),
			ShutdownTimeout: v.GetDuration("serverShutdownTimeout"),
			DisableReqLogs:  v.GetBool("serverDisableReqLogs"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("databaseEngine"),
			Host:          v.GetString("databaseHost"),
			Port:          v.GetString("databasePort"),
			Name:          v.GetString("databaseName"),
			User:          v.GetString("databaseUser"),
			Password:      v.GetString("databasePassword"),
			AdminUser:     v.GetString("databaseAdminUser"),
			AdminPassword: v.GetString("databaseAdminPassword"),
			DisableTLS:    v.GetBool("databaseDisableTls"),
			Path:          v.GetString("databasePath"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("authJwtSecret"),
			Audience:  v.GetString("authAudience"),
		},
		Export: ExportConfig{
			Sink:      v.GetString("exportSink"),
			Dir:       v.GetString("exportDir"),
			Bucket:    v.GetString("exportBucket"),
			Prefix:    v.GetString("exportPrefix"),
			Region:    v.GetString("exportRegion"),
			BatchSize: v.GetInt("exportBatchSize"),
			Timezone:  loc,
		},
	}
}

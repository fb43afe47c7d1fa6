package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port           string
		GinMode        string
		UploadDir      string
		AllowedOrigins []string
	}
	Database struct {
		Host         string
		Port         string
		User         string
		Password     string
		Name         string
		SSLMode      string
		TimeZone     string
		MaxOpenConns int
		MaxIdleConns int
	}
	Redis struct {
		Addr       string
		Password   string
		DB         int
		SessionTTL time.Duration
	}
	JWT struct {
		Secret string
		TTL    time.Duration
	}
	SMTP struct {
		Host          string
		Port          int
		Username      string
		Password      string
		From          string
		SubjectPrefix string
	}
	AMQP struct {
		URL      string
		Exchange string
	}
	Log struct {
		File  string
		Level string
	}
	Security struct {
		BcryptCost int
		LegacySalt string
	}
	Planning struct {
		EnforceTruckConflicts bool
	}
	UTCOffsetHours int
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found – relying on env vars")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{}
	cfg.Server.Port = v.GetString("PORT")
	cfg.Server.GinMode = v.GetString("GIN_MODE")
	cfg.Server.UploadDir = v.GetString("UPLOAD_DIR")
	cfg.Server.AllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.Database.Host = v.GetString("DB_HOST")
	cfg.Database.Port = v.GetString("DB_PORT")
	cfg.Database.User = v.GetString("DB_USER")
	cfg.Database.Password = v.GetString("DB_PASSWORD")
	cfg.Database.Name = v.GetString("DB_NAME")
	cfg.Database.SSLMode = v.GetString("DB_SSLMODE")
	cfg.Database.TimeZone = v.GetString("DB_TIMEZONE")
	cfg.Database.MaxOpenConns = v.GetInt("DB_MAX_OPEN_CONNS")
	cfg.Database.MaxIdleConns = v.GetInt("DB_MAX_IDLE_CONNS")

	cfg.Redis.Addr = v.GetString("REDIS_ADDR")
	cfg.Redis.Password = v.GetString("REDIS_PASSWORD")
	cfg.Redis.DB = v.GetInt("REDIS_DB")
	cfg.Redis.SessionTTL = v.GetDuration("SESSION_TTL")

	cfg.JWT.Secret = v.GetString("JWT_SECRET")
	cfg.JWT.TTL = v.GetDuration("JWT_TTL")

	cfg.SMTP.Host = v.GetString("SMTP_HOST")
	cfg.SMTP.Port = v.GetInt("SMTP_PORT")
	cfg.SMTP.Username = v.GetString("SMTP_USERNAME")
	cfg.SMTP.Password = v.GetString("SMTP_PASSWORD")
	cfg.SMTP.From = v.GetString("SMTP_FROM")
	cfg.SMTP.SubjectPrefix = v.GetString("NOTIFY_SUBJECT_PREFIX")

	cfg.AMQP.URL = v.GetString("AMQP_URL")
	cfg.AMQP.Exchange = v.GetString("AMQP_EXCHANGE")

	cfg.Log.File = v.GetString("LOG_FILE")
	cfg.Log.Level = v.GetString("LOG_LEVEL")

	cfg.Security.BcryptCost = v.GetInt("BCRYPT_COST")
	cfg.Security.LegacySalt = v.GetString("LEGACY_PASSWORD_SALT")

	cfg.Planning.EnforceTruckConflicts = v.GetBool("PLANNING_ENFORCE_TRUCK_CONFLICTS")
	cfg.UTCOffsetHours = v.GetInt("APP_UTC_OFFSET_HOURS")

	if cfg.JWT.Secret == "" {
		logrus.Warn("JWT_SECRET is not set; using an insecure development secret")
		cfg.JWT.Secret = "supersecret"
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "glnc")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Pacific/Noumea")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_TTL", "12h")

	v.SetDefault("JWT_TTL", "72h")

	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("NOTIFY_SUBJECT_PREFIX", "Message non défini")

	v.SetDefault("AMQP_EXCHANGE", "glnc.deliveries")

	v.SetDefault("LOG_FILE", "./logs/app.log")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("LEGACY_PASSWORD_SALT", "GLNC_Delivery_Management_2024")

	v.SetDefault("PLANNING_ENFORCE_TRUCK_CONFLICTS", false)
	v.SetDefault("APP_UTC_OFFSET_HOURS", 11)
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Location is the fixed business time zone every "now" and wire timestamp uses.
func (c *Config) Location() *time.Location {
	return time.FixedZone("UTC+11", c.UTCOffsetHours*3600)
}

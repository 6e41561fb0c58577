package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type Config struct {
	Debug                    bool   `envconfig:"debug"`
	Port                     int    `envconfig:"port" default:"8080"`
	Env                      string `envconfig:"env" default:"dev"`
	LogLevel                 string `envconfig:"log_level" default:"info"`
	PostgresHost             string `envconfig:"postgres_host" default:"localhost"`
	PostgresUser             string `envconfig:"postgres_user"`
	PostgresDB               string `envconfig:"postgres_db"`
	PostgresPort             int    `envconfig:"postgres_port" default:"5432"`
	PostgresPassword         string `envconfig:"postgres_password"`
	PostgresSSLMode          string `envconfig:"postgres_sslmode" default:"disable"`
	DBMaxOpenConns           int    `envconfig:"db_max_open_conns" default:"50"`
	DBMaxIdleConns           int    `envconfig:"db_max_idle_conns" default:"25"`
	DBConnMaxLifetimeSeconds int    `envconfig:"db_conn_max_lifetime_seconds" default:"300"`
	JWTSecret                string `envconfig:"jwt_secret" required:"true"`
	AccessTokenTTLHours      int    `envconfig:"access_token_ttl_hours" default:"12"`
	AWSRegion                string `envconfig:"aws_region"`
	AWSBucket                string `envconfig:"aws_bucket"`
	AWSAccessKeyID           string `envconfig:"aws_access_key_id"`
	AWSSecretAccessKey       string `envconfig:"aws_secret_access_key"`
	AWSEndpoint              string `envconfig:"aws_endpoint"`
	RedisAddr                string `envconfig:"redis_addr"`
	LoginRateLimit           uint   `envconfig:"login_rate_limit" default:"5"`
	LoginRateWindowSeconds   int    `envconfig:"login_rate_window_seconds" default:"60"`
	StaffOfficers            int    `envconfig:"staff_officers"`
	MalePersonnel            int    `envconfig:"male_personnel"`
	FemalePersonnel          int    `envconfig:"female_personnel"`
	AdminEmail               string `envconfig:"admin_email"`
	AdminPassword            string `envconfig:"admin_password"`
	AdminName                string `envconfig:"admin_name" default:"Administrator"`
	AccessControlAllowOrigin string `envconfig:"access_control_allow_origin" default:"*"`
}

func Load() (*Config, error) {
	env := os.Getenv("GIN_MODE")
	if env != "release" {
		if err := godotenv.Load("./.env"); err != nil {
			log.Printf("couldn't load env vars: %v", err)
		}
	}

	c := &Config{}
	err := envconfig.Process("dutyreport", c)
	if err != nil {
		return nil, err
	}
	if c.JWTSecret == "" {
		return nil, errors.New("DUTYREPORT_JWT_SECRET must not be empty")
	}
	return c, nil
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenTTLHours) * time.Hour
}

func (c *Config) LoginRateWindow() time.Duration {
	return time.Duration(c.LoginRateWindowSeconds) * time.Second
}

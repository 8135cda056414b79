package config

import (
	"fmt"
	"time"

	"github.com/nasalinha/backend/pkg/storage"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer APIServerConfigs
	Auth      AuthConfigs
	Storage   storage.S3Configs
	File      FileConfigs
	Email     EmailConfigs
	Redis     RedisConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type APIServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	AllowCORS    []string
	DefaultLimit int
	MaxLimit     int
}

func (c APIServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type AuthConfigs struct {
	TokenSecret   string
	AccessToken   TokenConfigs
	RefreshToken  TokenConfigs
	PasswordReset TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type FileConfigs struct {
	MaxSize       int64
	CheckInBucket string
}

type EmailConfigs struct {
	Host        string
	Port        int
	User        string
	Password    string
	From        string
	FrontendURL string
}

type RedisConfigs struct {
	Addr string
}

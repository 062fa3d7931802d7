package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"time"

	"github.com/missionMeteora/mandrill"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
)

func New(loc string) (*Config, error) {
	var c Config

	f, err := os.Open(loc)
	if err != nil {
		log.Println("Config error", err)
		return nil, err
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&c); err != nil {
		log.Println("Config error", err)
		return nil, err
	}

	if c.NotifyInterval == 0 {
		c.NotifyInterval = 1
	}

	return &c, nil
}

type Config struct {
	Host string `json:"host"`
	Port string `json:"port"`

	Sandbox bool `json:"sandbox"` // no outbound email, deterministic gateway off

	DBPath string `json:"dbPath"`
	DBName string `json:"dbName"`

	NotifyInterval time.Duration `json:"notifyInterval"` // worker idle sleep, in seconds

	Mandrill struct {
		APIKey    string `json:"apiKey"`
		SubUser   string `json:"subUser"`
		FromEmail string `json:"fromEmail"`
		FromName  string `json:"fromName"`
	} `json:"mandrill"`

	Bucket struct {
		User     string `json:"user"`
		Login    string `json:"login"`
		Campaign string `json:"campaign"`
		Contract string `json:"contract"`
		Payment  string `json:"payment"`
	} `json:"bucket"`
}

// AllBuckets is used by the server to initialize the db.
func (c *Config) AllBuckets() []string {
	return []string{
		c.Bucket.User,
		c.Bucket.Login,
		c.Bucket.Campaign,
		c.Bucket.Contract,
		c.Bucket.Payment,
	}
}

func (c *Config) MailClient() *mandrill.Client {
	if c.Mandrill.APIKey == "" {
		return nil
	}
	return mandrill.New(c.Mandrill.APIKey, c.Mandrill.SubUser, c.Mandrill.FromEmail, c.Mandrill.FromName)
}

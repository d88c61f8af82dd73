package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type AppConfig struct {
	k *koanf.Koanf
}

func NewAppConfig() *AppConfig {
	c := &AppConfig{k: koanf.New(".")}

	setDefaults(c.k)

	return c
}

func (c *AppConfig) Load(filename ...string) bool {
	loaded := false

	for _, name := range filename {
		if err := c.k.Load(file.Provider(name), yaml.Parser()); err != nil {
			slog.Info(fmt.Sprintf("error loading config: %s", err.Error()))
		} else {
			loaded = true
		}
	}

	return loaded
}

func (c *AppConfig) LoadEnv(prefix string) error {
	return c.k.Load(env.Provider(prefix, ".", func(s string) string {
		s1 := strings.ToLower(strings.TrimPrefix(s, prefix))
		for _, pr := range []string{"db_"} {
			if strings.HasPrefix(s1, pr) {
				slog.Info("ENV param: " + strings.Replace(s1, "_", ".", 1))
				return strings.Replace(s1, "_", ".", 1)
			}
		}
		slog.Info("ENV param: " + s1)

		return s1
	}), nil)
}

func (c *AppConfig) Bool(key string) bool {
	return c.k.Bool(key)
}

func (c *AppConfig) String(key string) string {
	return c.k.String(key)
}

func (c *AppConfig) Int(key string) int {
	return c.k.Int(key)
}

func (c *AppConfig) Set(key string, v any) error {
	return c.k.Set(key, v)
}

func (c *AppConfig) ApiAddr() string {
	return c.k.String("api_addr")
}

func (c *AppConfig) DBFile() string {
	return c.k.String("db.file")
}

func (c *AppConfig) Debug() bool {
	return c.k.Bool("debug")
}

func setDefaults(k *koanf.Koanf) {
	k.Set("api_addr", ":8080")
	k.Set("db.file", "resbook.db")
	k.Set("debug", false)
}

package config

import (
	"fmt"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	C "github.com/portside/httpmeta/constant"
	L "github.com/portside/httpmeta/log"
)

// General config
type General struct {
	LogLevel           L.LogLevel `json:"log-level"`
	ExternalController string     `json:"-"`
	Secret             string     `json:"-"`
}

// Config is httpmeta's configuration after validation.
type Config struct {
	General   *General
	Listeners []C.Inbound
}

type RawConfig struct {
	LogLevel           L.LogLevel  `yaml:"log-level" json:"log-level"`
	ExternalController string      `yaml:"external-controller" json:"external-controller"`
	Secret             string      `yaml:"secret" json:"secret"`
	Listeners          []C.Inbound `yaml:"listeners" json:"listeners"`
}

// Parse config
func Parse(buf []byte) (*Config, error) {
	rawCfg, err := UnmarshalRawConfig(buf)
	if err != nil {
		return nil, err
	}
	return ParseRawConfig(rawCfg)
}

func UnmarshalRawConfig(buf []byte) (*RawConfig, error) {
	rawCfg := &RawConfig{
		LogLevel: L.INFO,
	}
	if err := yaml.Unmarshal(buf, rawCfg); err != nil {
		return nil, err
	}
	return rawCfg, nil
}

func ParseRawConfig(rawCfg *RawConfig) (*Config, error) {
	duplicated := lo.FindDuplicatesBy(rawCfg.Listeners, func(in C.Inbound) string {
		return in.Key()
	})
	if len(duplicated) != 0 {
		return nil, fmt.Errorf("duplicate listener: %s", duplicated[0].ToAlias())
	}

	return &Config{
		General: &General{
			LogLevel:           rawCfg.LogLevel,
			ExternalController: rawCfg.ExternalController,
			Secret:             rawCfg.Secret,
		},
		Listeners: rawCfg.Listeners,
	}, nil
}

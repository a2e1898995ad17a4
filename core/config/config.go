package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
	EventLogName      = "events.log"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	Prompt    string `json:"prompt"`
	Color     string `json:"color" validate:"oneof=auto always never"`
	ShellName string `json:"shell_name" validate:"required"`

	HistoryFile  string `json:"history_file"`
	HistoryLimit int    `json:"history_limit" validate:"gte=0,lte=100000"`

	HeredocDir        string `json:"heredoc_dir"`
	ContinuationLimit int    `json:"continuation_limit" validate:"gte=1,lte=100"`

	EventLog bool `json:"event_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		return afero.NewMemMapFs()
	}
	return c.configFs
}

// Fs returns the filesystem rooted at the configuration directory.
func (c *Configuration) Fs() afero.Fs {
	return c.fs()
}

// HistoryPath is the history file inside the configuration directory, or
// empty when history is disabled.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" {
		return ""
	}
	return filepath.Clean(c.HistoryFile)
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(EventLogName, os.O_RDONLY, 0600)
}

// Default returns the built in configuration, backed by an in-memory
// filesystem.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

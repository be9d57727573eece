package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/go-playground/validator/v10"
	"github.com/muesli/reflow/indent"
	"gopkg.in/yaml.v2"

	"github.com/babarot/drash/internal/env"
)

type Config struct {
	Core    Core    `yaml:"core"`
	Logging Logging `yaml:"logging"`
	List    List    `yaml:"list"`
	Cat     Cat     `yaml:"cat"`
}

type Core struct {
	TrashDir   string  `yaml:"trash_dir" validate:"omitempty,dirpath"`
	RegionSize string  `yaml:"region_size" validate:"omitempty,validSize"`
	Restore    Restore `yaml:"restore"`
	Empty      Empty   `yaml:"empty"`
	Put        Put     `yaml:"put"`
}

type Restore struct {
	Verbose bool `yaml:"verbose"`
	Confirm bool `yaml:"confirm"`
}

type Empty struct {
	Confirm bool `yaml:"confirm"`
}

type Put struct {
	Verbose bool `yaml:"verbose"`
}

type Logging struct {
	Enabled  bool     `yaml:"enabled"`
	Level    string   `yaml:"level" validate:"loglevel"`
	Rotation Rotation `yaml:"rotation"`
}

type Rotation struct {
	MaxSize  string `yaml:"max_size" validate:"validSize"`
	MaxFiles int    `yaml:"max_files" validate:"gte=0"`
}

type List struct {
	Exclude ExcludeConfig `yaml:"exclude"`
}

type ExcludeConfig struct {
	Files    []string   `yaml:"files"`
	Patterns []string   `yaml:"patterns" validate:"dive,validRegexp"`
	Globs    []string   `yaml:"globs" validate:"dive,validGlob"`
	Size     SizeConfig `yaml:"size"`
}

type SizeConfig struct {
	Min string `yaml:"min" validate:"omitempty,validSize"`
	Max string `yaml:"max" validate:"omitempty,validSize"`
}

type Cat struct {
	SyntaxHighlight bool   `yaml:"syntax_highlight"`
	Colorscheme     string `yaml:"colorscheme"`
}

type configError struct {
	configPath string
	err        error
}

func (e configError) Error() string {
	return heredoc.Docf(`
		Couldn't load the "%s" config file.
		Please try again after fixing it or specifying a valid config path.
		Example YAML file contents:
		---
		%s
		---
		Original error:
		%s
		`,
		e.configPath,
		DefaultContents(),
		indent.String(e.err.Error(), 2),
	)
}

func (e configError) Unwrap() error {
	return e.err
}

type parsingError struct {
	err error
}

func (e parsingError) Error() string {
	return fmt.Sprintf("failed to parse config: %v", e.err)
}

func (e parsingError) Unwrap() error {
	return e.err
}

type parser struct {
	validate *validator.Validate
}

func newParser() parser {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.Split(fld.Tag.Get("yaml"), ",")[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("validSize", validateSize)
	_ = v.RegisterValidation("dirpath", validateDirPath)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("validRegexp", validateRegexp)
	_ = v.RegisterValidation("validGlob", validateGlob)

	return parser{validate: v}
}

func (p parser) ensureConfigFile(path string) error {
	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Warn("creating directory as it does not exist", "dir", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Warn("creating config file as it does not exist", "config-file", path)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := f.WriteString(DefaultContents()); err != nil {
			return err
		}
	}
	return nil
}

func (p parser) readConfigFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, configError{configPath: path, err: err}
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, configError{configPath: path, err: err}
	}

	if err := p.validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, err := range verrs {
				return cfg, fmt.Errorf("validation error: field %s, %q is invalid", err.Namespace(), err.Value())
			}
		}
		return cfg, err
	}

	if cfg.Core.TrashDir != "" {
		dir, err := env.ExpandPath(cfg.Core.TrashDir)
		if err != nil {
			return cfg, err
		}
		cfg.Core.TrashDir = dir
	}
	return cfg, nil
}

// Parse loads the config at path. An empty path means the default location,
// which is created with default contents when missing.
func Parse(path string) (Config, error) {
	p := newParser()

	if path == "" {
		def, err := env.ConfigPath()
		if err != nil {
			return Config{}, parsingError{err: err}
		}
		if err := p.ensureConfigFile(def); err != nil {
			return Config{}, parsingError{err: configError{configPath: def, err: err}}
		}
		path = def
	}
	slog.Debug("config file found", "config-file", path)

	cfg, err := p.readConfigFile(path)
	if err != nil {
		return cfg, parsingError{err: err}
	}
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"time"

	"github.com/aretw0/semaforo/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "semaforo.yaml"

// File represents the structure of semaforo.yaml.
// Every field is optional; missing values fall back to domain.DefaultConfig.
type File struct {
	State      string `mapstructure:"state"`
	RedGreen   int    `mapstructure:"red_green"`
	Yellow     int    `mapstructure:"yellow"`
	Start      *Clock `mapstructure:"start"`
	End        *Clock `mapstructure:"end"`
	TimeLayout string `mapstructure:"time_layout"`
	Serve      Serve  `mapstructure:"serve"`
}

// Serve configures the HTTP adapter.
type Serve struct {
	Addr string `mapstructure:"addr"`
}

// Load reads a YAML config file. A missing file yields an empty File so the
// defaults apply; any other read or parse failure is returned.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML bytes into a File.
func Parse(data []byte) (*File, error) {
	raw := map[string]any{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return Decode(raw)
}

// Decode binds a generic map (from YAML, JSON or flags) to a File.
// Clock fields accept "HH:MM" strings.
func Decode(raw map[string]any) (*File, error) {
	var f File
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       clockHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &f,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &f, nil
}

func clockHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(Clock{}) {
		return data, nil
	}
	return ParseClock(data.(string))
}

// Resolve merges the file over the defaults: all red, 300s, 30s and the
// 09:00 to 09:30 window. Clock times are anchored to the date of now. A start
// without an end gets the default window length.
func (f *File) Resolve(now time.Time) (domain.Config, error) {
	cfg := domain.DefaultConfig(now)
	cfg.Start, cfg.End = DefaultWindow(now)

	if f.State != "" {
		signals, err := domain.ParseSignals(f.State)
		if err != nil {
			return cfg, err
		}
		cfg.Signals = signals
	}
	if f.RedGreen != 0 {
		cfg.RedGreen = f.RedGreen
	}
	if f.Yellow != 0 {
		cfg.Yellow = f.Yellow
	}
	if f.Start != nil {
		cfg.Start = f.Start.On(now)
		cfg.End = cfg.Start.Add(domain.DefaultWindow)
	}
	if f.End != nil {
		cfg.End = f.End.On(now)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

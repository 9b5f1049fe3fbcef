package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/core"
	"github.com/taylor-j-murray/Regression-in-Housing-Data/pkg/dataprep"
)

// Config is the YAML description of a pipeline:
//
//	steps:
//	  - name: choose
//	    type: select
//	    columns: [price, sqfeet, beds, type]
//	  - name: price_log
//	    type: log
//	    columns: [price]
//	    base: 10
type Config struct {
	Steps []StepConfig `yaml:"steps"`
}

// StepConfig is one step: its name, stage type and stage parameters.
type StepConfig struct {
	Name   string         `yaml:"name"`
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:",inline"`
}

// Stage type names accepted in configuration.
const (
	TypeSelect      = "select"
	TypeFillNA      = "fillna"
	TypeStandardize = "standardize"
	TypeLog         = "log"
	TypeArithmetic  = "arithmetic"
	TypeScale       = "scale"
	TypeOneHot      = "onehot"
)

// LoadConfig parses a YAML pipeline configuration.
func LoadConfig(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("parse pipeline config: %w", err)
	}
	return &c, nil
}

// Build constructs the pipeline. Stages with verbose: true log their notices
// to the logger given via WithLogger.
func (c *Config) Build(opts ...Option) (*Pipeline, error) {
	var probe Pipeline
	for _, opt := range opts {
		opt(&probe)
	}
	steps := make([]Step, 0, len(c.Steps))
	for _, sc := range c.Steps {
		stage, err := buildStage(sc, probe.logger)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", sc.Name, err)
		}
		steps = append(steps, Step{Name: sc.Name, Stage: stage})
	}
	return New(steps, opts...)
}

type selectParams struct {
	Columns []string `mapstructure:"columns"`
}

type fillParams struct {
	Replacements map[string]any `mapstructure:"replacements"`
}

type standardizeParams struct {
	Columns []string `mapstructure:"columns"`
	Verbose bool     `mapstructure:"verbose"`
}

type logParams struct {
	Columns []string `mapstructure:"columns"`
	Replace bool     `mapstructure:"replace"`
	Base    float64  `mapstructure:"base"`
	Offset  float64  `mapstructure:"offset"`
	Verbose bool     `mapstructure:"verbose"`
}

type arithmeticParams struct {
	Op        string   `mapstructure:"op"`
	NewColumn string   `mapstructure:"new_column"`
	Columns   []string `mapstructure:"columns"`
}

type scaleParams struct {
	Column string  `mapstructure:"column"`
	Factor float64 `mapstructure:"factor"`
}

type onehotParams struct {
	Column string `mapstructure:"column"`
	Drop   bool   `mapstructure:"drop"`
}

func buildStage(sc StepConfig, logger *slog.Logger) (Stage, error) {
	verboseLogger := func(v bool) *slog.Logger {
		if v {
			return logger
		}
		return nil
	}

	switch sc.Type {
	case TypeSelect:
		var p selectParams
		if err := decodeParams(sc.Params, &p); err != nil {
			return nil, err
		}
		return dataprep.NewColumnSelector(p.Columns...), nil

	case TypeFillNA:
		var p fillParams
		if err := decodeParams(sc.Params, &p); err != nil {
			return nil, err
		}
		return dataprep.NewMissingValueFiller(p.Replacements), nil

	case TypeStandardize:
		var p standardizeParams
		if err := decodeParams(sc.Params, &p); err != nil {
			return nil, err
		}
		s := dataprep.NewStandardizer(p.Columns...)
		s.Logger = verboseLogger(p.Verbose)
		return s, nil

	case TypeLog:
		p := logParams{Replace: true, Offset: 1}
		if err := decodeParams(sc.Params, &p); err != nil {
			return nil, err
		}
		opts := []dataprep.LogOption{
			dataprep.WithBase(p.Base),
			dataprep.WithOffset(p.Offset),
			dataprep.WithLogLogger(verboseLogger(p.Verbose)),
		}
		if !p.Replace {
			opts = append(opts, dataprep.WithNewColumn())
		}
		return dataprep.NewLogTransform(p.Columns, opts...)

	case TypeArithmetic:
		var p arithmeticParams
		if err := decodeParams(sc.Params, &p); err != nil {
			return nil, err
		}
		return dataprep.NewArithmeticCombiner(dataprep.Operator(p.Op), p.NewColumn, p.Columns)

	case TypeScale:
		p := scaleParams{Factor: 1}
		if err := decodeParams(sc.Params, &p); err != nil {
			return nil, err
		}
		return dataprep.NewScalarScaler(p.Column, p.Factor), nil

	case TypeOneHot:
		var p onehotParams
		if err := decodeParams(sc.Params, &p); err != nil {
			return nil, err
		}
		return dataprep.NewOneHotEncoder(p.Column, p.Drop), nil

	default:
		return nil, fmt.Errorf("%w: unknown stage type %q", ErrInvalidStep, sc.Type)
	}
}

func decodeParams(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(in); err != nil {
		return fmt.Errorf("%w: %v", core.ErrType, err)
	}
	return nil
}

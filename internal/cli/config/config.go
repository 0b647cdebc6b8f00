package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/conduit-lang/paramgen/pkg/params"
)

// Supported report formats
var formats = []string{"table", "json", "yaml"}

// Config represents the paramgen configuration
type Config struct {
	// ContextType is the identity of the injected context type, e.g.
	// "example.com/app.ExecutionContext"
	ContextType   string        `mapstructure:"context_type"`
	AbstractTypes []string      `mapstructure:"abstract_types"`
	Descriptions  []Description `mapstructure:"descriptions"`
	Output        OutputConfig  `mapstructure:"output"`
	ExportedOnly  bool          `mapstructure:"exported_only"`
}

// Description attaches text to one parameter. Entries are a list rather than a
// map because viper lowercases map keys and splits them on dots.
type Description struct {
	Function  string `mapstructure:"function"`
	Parameter string `mapstructure:"parameter"`
	Text      string `mapstructure:"text"`
}

// OutputConfig represents report output configuration
type OutputConfig struct {
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// Load loads the configuration from paramgen.yml or paramgen.yaml in the
// working directory, or from configFile when it is not empty
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("context_type", "")
	v.SetDefault("output.format", "table")
	v.SetDefault("output.no_color", false)
	v.SetDefault("exported_only", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("paramgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("PARAMGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ContextClass returns the configured context type, if any
func (c *Config) ContextClass() (params.Class, bool) {
	if c.ContextType == "" {
		return params.Class{}, false
	}
	return params.ParseClass(c.ContextType), true
}

// Resolver builds a parameter resolver from the configuration
func (c *Config) Resolver() *params.Resolver {
	var opts []params.Option
	if class, ok := c.ContextClass(); ok {
		opts = append(opts, params.WithContextType(class))
	}
	return params.NewResolver(opts...)
}

// DescriptionMap returns descriptions keyed by "Func.param" or "Recv.Method.param"
func (c *Config) DescriptionMap() map[string]string {
	if len(c.Descriptions) == 0 {
		return nil
	}
	m := make(map[string]string, len(c.Descriptions))
	for _, d := range c.Descriptions {
		m[d.Function+"."+d.Parameter] = d.Text
	}
	return m
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)
	if !validFormat(cfg.Output.Format) {
		return fmt.Errorf("output.format must be one of %s, got: %s",
			strings.Join(formats, ", "), cfg.Output.Format)
	}

	if cfg.ContextType != "" && !strings.Contains(cfg.ContextType, ".") {
		return fmt.Errorf("context_type must be a qualified type such as example.com/app.Context, got: %s", cfg.ContextType)
	}

	for i, d := range cfg.Descriptions {
		if d.Function == "" || d.Parameter == "" {
			return fmt.Errorf("descriptions[%d] needs both function and parameter", i)
		}
	}

	for _, id := range cfg.AbstractTypes {
		if !strings.Contains(id, ".") {
			return fmt.Errorf("abstract_types entries must be qualified types, got: %s", id)
		}
	}
	return nil
}

// ValidFormat reports whether format is a supported report format
func ValidFormat(format string) bool {
	return validFormat(strings.ToLower(format))
}

func validFormat(format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

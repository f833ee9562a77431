package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

const (
	keyPort                 = "port"
	keyRoundRobinQuantum    = "scheduler.round_robin.time_quantum"
	keyMultilevelQuantumSet = "scheduler.multilevel_feedback_queue.levels_time_quantum"
	keyMaxProcesses         = "api.max_processes"
	keyMaxTimeHorizon       = "api.max_time_horizon"
)

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"port":    keyPort,
	"quantum": keyRoundRobinQuantum,
}

type SchedulerConfig struct {
	Port                                     int
	RoundRobinTimeQuantum                    int
	MultilevelFeedbackQueueLevelsTimeQuantum []int
	// MaxProcesses and MaxTimeHorizon bound a single api request. The engine
	// emits up to one gantt interval per time unit, so the horizon also bounds
	// the size of a response.
	MaxProcesses   int
	MaxTimeHorizon int
}

// Load reads the configuration from path, or from ./config.yaml when path is
// empty and such a file exists. Environment variables prefixed with SCHEDSIM_
// and any flags in flags that were set take precedence over the file.
func Load(path string, flags *pflag.FlagSet) (*SchedulerConfig, error) {
	v := viper.New()
	v.SetDefault(keyPort, 9095)
	v.SetDefault(keyRoundRobinQuantum, 2)
	v.SetDefault(keyMultilevelQuantumSet, []int{2, 4, 6, 8})
	v.SetDefault(keyMaxProcesses, 100)
	v.SetDefault(keyMaxTimeHorizon, 100000)

	v.SetEnvPrefix("schedsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		klog.V(2).InfoS("no config file found, using defaults")
	} else {
		klog.V(2).InfoS("loaded config", "file", v.ConfigFileUsed())
	}

	config := &SchedulerConfig{
		Port:                                     v.GetInt(keyPort),
		RoundRobinTimeQuantum:                    v.GetInt(keyRoundRobinQuantum),
		MultilevelFeedbackQueueLevelsTimeQuantum: v.GetIntSlice(keyMultilevelQuantumSet),
		MaxProcesses:                             v.GetInt(keyMaxProcesses),
		MaxTimeHorizon:                           v.GetInt(keyMaxTimeHorizon),
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *SchedulerConfig) validate() error {
	if c.RoundRobinTimeQuantum <= 0 {
		return fmt.Errorf("%s must be positive, got %d", keyRoundRobinQuantum, c.RoundRobinTimeQuantum)
	}
	if len(c.MultilevelFeedbackQueueLevelsTimeQuantum) != 4 {
		return fmt.Errorf("%s needs 4 values, got %v", keyMultilevelQuantumSet, c.MultilevelFeedbackQueueLevelsTimeQuantum)
	}
	for _, q := range c.MultilevelFeedbackQueueLevelsTimeQuantum {
		if q <= 0 {
			return fmt.Errorf("%s must be positive, got %v", keyMultilevelQuantumSet, c.MultilevelFeedbackQueueLevelsTimeQuantum)
		}
	}
	if c.MaxProcesses <= 0 {
		return fmt.Errorf("%s must be positive, got %d", keyMaxProcesses, c.MaxProcesses)
	}
	if c.MaxTimeHorizon <= 0 {
		return fmt.Errorf("%s must be positive, got %d", keyMaxTimeHorizon, c.MaxTimeHorizon)
	}
	return nil
}

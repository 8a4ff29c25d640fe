package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Directories are paths to downloaded and organized content
type Directories struct {
	// Downloads is where in-flight chapter downloads land
	Downloads string

	// Content is the path to the organized library
	Content string
}

// Watcher controls the release polling jobs
type Watcher struct {
	// SubscriptionIntervalMin is the pause between subscription watcher runs
	SubscriptionIntervalMin int `json:"subscription-interval-min"`

	// SeriesIntervalMin is the pause between monitored-series watcher runs
	SeriesIntervalMin int `json:"series-interval-min"`

	// MaxConcurrentDownloads caps items in the Downloading state
	MaxConcurrentDownloads int `json:"max-concurrent-downloads"`
}

// Configuration represents entire service configuration
type Configuration struct {
	// MongoDB connection string
	Database string

	// Directories are paths to media content
	Directories Directories

	// Watcher is release polling settings
	Watcher Watcher
}

func (w Watcher) SubscriptionInterval() time.Duration {
	return time.Duration(w.SubscriptionIntervalMin) * time.Minute
}

func (w Watcher) SeriesInterval() time.Duration {
	return time.Duration(w.SeriesIntervalMin) * time.Minute
}

var config = Configuration{
	Watcher: Watcher{
		SubscriptionIntervalMin: 15,
		SeriesIntervalMin:       15,
		MaxConcurrentDownloads:  2,
	},
}

// Load opens and parses the configuration file
func Load(configFilePath string) error {
	content, err := os.ReadFile(configFilePath)
	if err != nil {
		return fmt.Errorf("read config file failed: %w", err)
	}
	if err = json.Unmarshal(content, &config); err != nil {
		return fmt.Errorf("parse config file failed: %w", err)
	}
	return nil
}

// Config returns loaded configuration
func Config() Configuration {
	return config
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TopicsFile represents the structure of a topic table YAML document.
// Topic order in the document is the match order.
type TopicsFile struct {
	Topics []TopicConfig `yaml:"topics"`
}

// TopicConfig defines one canned answer in the YAML document.
type TopicConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`
}

// LoadTopicsFile loads a topic table from path.
// Returns nil without error if path is empty or the file doesn't exist.
func LoadTopicsFile(path string) (*TopicsFile, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Override file is optional
			return nil, nil
		}
		return nil, err
	}

	return ParseTopics(data)
}

// ParseTopics decodes a topic table YAML document.
func ParseTopics(data []byte) (*TopicsFile, error) {
	var tf TopicsFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	return &tf, nil
}

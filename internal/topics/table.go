// Package topics holds the static table of canned answers and the keyword
// matcher that selects one of them for a question.
package topics

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"lawdesk/internal/config"
	"lawdesk/internal/models"
	"lawdesk/internal/validation"
)

//go:embed default_topics.yaml
var defaultTopics []byte

var (
	ErrEmptyTable     = errors.New("topic table is empty")
	ErrDuplicateTopic = errors.New("duplicate topic name")
	ErrInvalidTopic   = errors.New("invalid topic")
)

// Table is an immutable, ordered set of topics. The zero value matches nothing.
type Table struct {
	topics []models.Topic
}

// Default returns the embedded topic table.
func Default() (*Table, error) {
	tf, err := config.ParseTopics(defaultTopics)
	if err != nil {
		return nil, err
	}
	return FromConfig(tf)
}

// Load returns the table from path, or the embedded table when path is empty
// or the file does not exist.
func Load(path string) (*Table, error) {
	tf, err := config.LoadTopicsFile(path)
	if err != nil {
		return nil, fmt.Errorf("load topics file: %w", err)
	}
	if tf == nil {
		return Default()
	}
	return FromConfig(tf)
}

// FromConfig builds a table from a decoded topics document, keeping document order.
func FromConfig(tf *config.TopicsFile) (*Table, error) {
	if tf == nil || len(tf.Topics) == 0 {
		return nil, ErrEmptyTable
	}

	topics := make([]models.Topic, 0, len(tf.Topics))
	for _, tc := range tf.Topics {
		topics = append(topics, models.Topic{
			Name:     tc.Name,
			Keywords: tc.Keywords,
			Response: tc.Response,
		})
	}
	return New(topics...)
}

// New builds a table from topics in the given order. Keywords are stored
// lowercased; entries are copied so later changes by the caller have no effect.
func New(topics ...models.Topic) (*Table, error) {
	if len(topics) == 0 {
		return nil, ErrEmptyTable
	}

	seen := make(map[string]bool, len(topics))
	out := make([]models.Topic, 0, len(topics))
	for i, t := range topics {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: topic %d has no name", ErrInvalidTopic, i)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTopic, name)
		}
		seen[name] = true

		if strings.TrimSpace(t.Response) == "" {
			return nil, fmt.Errorf("%w: %q has no response", ErrInvalidTopic, name)
		}

		keywords := make([]string, 0, len(t.Keywords))
		for _, k := range t.Keywords {
			// An empty keyword would match every question.
			if strings.TrimSpace(k) == "" {
				return nil, fmt.Errorf("%w: %q has an empty keyword", ErrInvalidTopic, name)
			}
			keywords = append(keywords, validation.NormalizeQuery(k))
		}
		if len(keywords) == 0 {
			return nil, fmt.Errorf("%w: %q has no keywords", ErrInvalidTopic, name)
		}

		out = append(out, models.Topic{Name: name, Keywords: keywords, Response: t.Response})
	}

	return &Table{topics: out}, nil
}

// Match returns the first topic, in table order, with a keyword contained in
// the query. Keywords within a topic are tried in list order.
func (t *Table) Match(query string) (models.Topic, bool) {
	if t == nil {
		return models.Topic{}, false
	}

	normalized := validation.NormalizeQuery(query)
	for _, topic := range t.topics {
		for _, keyword := range topic.Keywords {
			if strings.Contains(normalized, keyword) {
				return topic.Clone(), true
			}
		}
	}
	return models.Topic{}, false
}

// Names returns the topic names in table order.
func (t *Table) Names() []string {
	if t == nil {
		return []string{}
	}
	names := make([]string, len(t.topics))
	for i, topic := range t.topics {
		names[i] = topic.Name
	}
	return names
}

// Len returns the number of topics.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.topics)
}

package models

// Topic is one canned answer category: an ordered keyword list and a static HTML body.
type Topic struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
	Response string   `json:"-" yaml:"response"`
}

// Clone returns a copy that shares no slices with t.
func (t Topic) Clone() Topic {
	t.Keywords = append([]string(nil), t.Keywords...)
	return t
}

package record

import "gopkg.in/yaml.v3"

// Categories returns the category list. A single scalar is treated as a
// one-element list; a missing or null value as an empty one.
func (r *Record) Categories() []string {
	_, v := r.lookup(KeyCategory)
	if v == nil {
		return nil
	}
	switch v.Kind {
	case yaml.SequenceNode:
		out := make([]string, 0, len(v.Content))
		for _, item := range v.Content {
			if item.Kind == yaml.ScalarNode {
				out = append(out, item.Value)
			}
		}
		return out
	case yaml.ScalarNode:
		if v.ShortTag() == "!!null" {
			return nil
		}
		return []string{v.Value}
	}
	return nil
}

// HasCategory reports whether name is in the category list.
func (r *Record) HasCategory(name string) bool {
	for _, c := range r.Categories() {
		if c == name {
			return true
		}
	}
	return false
}

// AddCategory appends name to the category list unless it is already there,
// creating the list when needed. Existing entries keep their order.
func (r *Record) AddCategory(name string) bool {
	if r.HasCategory(name) {
		return false
	}
	seq := r.categorySeq()
	item := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
	if n := len(seq.Content); n > 0 {
		item.Style = seq.Content[n-1].Style
	}
	seq.Content = append(seq.Content, item)
	return true
}

// RemoveCategory removes every occurrence of name and reports whether any
// was removed. Removing the last entry leaves an empty list.
func (r *Record) RemoveCategory(name string) bool {
	if !r.HasCategory(name) {
		return false
	}
	seq := r.categorySeq()
	kept := seq.Content[:0]
	for _, item := range seq.Content {
		if item.Kind == yaml.ScalarNode && item.Value == name {
			continue
		}
		kept = append(kept, item)
	}
	seq.Content = kept
	return true
}

// categorySeq returns the category value as a sequence node, converting a
// scalar or null value, or adding the key, as needed.
func (r *Record) categorySeq() *yaml.Node {
	i, v := r.lookup(KeyCategory)
	if v != nil && v.Kind == yaml.SequenceNode {
		return v
	}

	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	if i < 0 {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: KeyCategory}
		r.root.Content = append(r.root.Content, key, seq)
		return seq
	}

	if v.Kind == yaml.ScalarNode && v.ShortTag() != "!!null" {
		seq.Content = []*yaml.Node{{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.Value, Style: v.Style}}
	}
	seq.HeadComment = v.HeadComment
	seq.LineComment = v.LineComment
	seq.FootComment = v.FootComment
	r.root.Content[i+1] = seq
	return seq
}

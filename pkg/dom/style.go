package dom

import (
	"strconv"
	"strings"
)

// Style holds inline CSS declarations in insertion order.
type Style struct {
	props []styleProp
}

type styleProp struct {
	name      string
	value     string
	important bool
}

// Get returns the value of a property, or "".
func (s *Style) Get(name string) string {
	for _, p := range s.props {
		if p.name == name {
			return p.value
		}
	}
	return ""
}

// Set sets a property. An empty value removes it.
func (s *Style) Set(name, value string, important bool) {
	if value == "" {
		s.Remove(name)
		return
	}
	for i := range s.props {
		if s.props[i].name == name {
			s.props[i].value = value
			s.props[i].important = important
			return
		}
	}
	s.props = append(s.props, styleProp{name: name, value: value, important: important})
}

// Remove deletes a property.
func (s *Style) Remove(name string) {
	for i := range s.props {
		if s.props[i].name == name {
			s.props = append(s.props[:i], s.props[i+1:]...)
			return
		}
	}
}

// Len returns the number of declarations.
func (s *Style) Len() int { return len(s.props) }

// String serializes the declarations as a style attribute value.
func (s *Style) String() string {
	parts := make([]string, 0, len(s.props))
	for _, p := range s.props {
		decl := p.name + ": " + p.value
		if p.important {
			decl += " !important"
		}
		parts = append(parts, decl+";")
	}
	return strings.Join(parts, " ")
}

// Float returns a numeric property value, or def when unset or invalid.
func (s *Style) Float(name string, def float64) float64 {
	v := strings.TrimSpace(s.Get(name))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func (s *Style) parse(text string) {
	s.props = s.props[:0]
	for _, decl := range strings.Split(text, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(strings.ToLower(name))
		value = strings.TrimSpace(value)
		important := false
		if v, found := strings.CutSuffix(value, "!important"); found {
			value = strings.TrimSpace(v)
			important = true
		}
		if name != "" && value != "" {
			s.Set(name, value, important)
		}
	}
}

// StyleSheet is the rule list of a <style> element.
type StyleSheet struct {
	owner *Node
	rules []string
}

// OwnerNode returns the <style> element the sheet belongs to.
func (s *StyleSheet) OwnerNode() *Node { return s.owner }

// InsertRule inserts rule at index and returns the index. An index past
// the end appends.
func (s *StyleSheet) InsertRule(rule string, index int) int {
	if index < 0 || index > len(s.rules) {
		index = len(s.rules)
	}
	s.rules = append(s.rules, "")
	copy(s.rules[index+1:], s.rules[index:])
	s.rules[index] = rule
	return index
}

// DeleteRule removes the rule at index.
func (s *StyleSheet) DeleteRule(index int) {
	if index < 0 || index >= len(s.rules) {
		return
	}
	s.rules = append(s.rules[:index], s.rules[index+1:]...)
}

// Rules returns a copy of the rule texts.
func (s *StyleSheet) Rules() []string {
	return append([]string(nil), s.rules...)
}

// Len returns the number of rules.
func (s *StyleSheet) Len() int { return len(s.rules) }

package model

import "sort"

// ClassPool resolves a fully-qualified class name to its metadata.
// Implementations return nil when the class cannot be loaded.
type ClassPool interface {
	GetCachedClass(name string) *ClassInfo
}

// ClassSet is an in-memory ClassPool keyed by class name
type ClassSet struct {
	classes map[string]*ClassInfo
	order   []string
}

// NewClassSet indexes classes by name; later duplicates are ignored
func NewClassSet(classes []*ClassInfo) *ClassSet {
	cs := &ClassSet{classes: make(map[string]*ClassInfo, len(classes))}
	for _, c := range classes {
		cs.Add(c)
	}
	return cs
}

func (cs *ClassSet) Add(c *ClassInfo) bool {
	if c == nil || c.Name == "" {
		return false
	}
	if _, exists := cs.classes[c.Name]; exists {
		return false
	}
	cs.classes[c.Name] = c
	cs.order = append(cs.order, c.Name)
	return true
}

func (cs *ClassSet) GetCachedClass(name string) *ClassInfo {
	return cs.classes[name]
}

func (cs *ClassSet) Len() int {
	return len(cs.classes)
}

// Classes returns the classes sorted by name
func (cs *ClassSet) Classes() []*ClassInfo {
	names := make([]string, len(cs.order))
	copy(names, cs.order)
	sort.Strings(names)

	out := make([]*ClassInfo, 0, len(names))
	for _, n := range names {
		out = append(out, cs.classes[n])
	}
	return out
}

// JarContent is the snapshot of one archive for the duration of one analysis run
type JarContent struct {
	Source    string
	Classes   []*ClassInfo
	Libraries []string
	Pool      ClassPool
}

// NewJarContent builds a snapshot whose pool is the classes themselves
func NewJarContent(source string, classes []*ClassInfo) *JarContent {
	return &JarContent{
		Source:  source,
		Classes: classes,
		Pool:    NewClassSet(classes),
	}
}

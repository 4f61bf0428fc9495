package document

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Store owns the single document of an editing session. Every mutation runs to
// completion under the lock and is applied to a copy first, so a failed
// mutation leaves the stored document unchanged.
type Store struct {
	mu        sync.Mutex
	doc       Resume
	ids       IDGenerator
	listeners []func(Resume)
}

// NewStore returns a store seeded with doc.
func NewStore(doc Resume, ids IDGenerator) *Store {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &Store{doc: doc.Clone(), ids: ids}
}

// Subscribe registers fn to run after every committed mutation.
func (s *Store) Subscribe(fn func(Resume)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Snapshot returns a copy of the current document.
func (s *Store) Snapshot() Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Update applies fn to a copy of the document and commits it if fn succeeds.
func (s *Store) Update(fn func(doc *Resume) error) error {
	s.mu.Lock()
	next := s.doc.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.doc = next
	listeners := append([]func(Resume){}, s.listeners...)
	snapshot := next.Clone()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
	return nil
}

// Replace swaps in a whole new document.
func (s *Store) Replace(doc Resume) {
	_ = s.Update(func(cur *Resume) error {
		*cur = doc.Clone()
		return nil
	})
}

// SetField writes a scalar by dotted path.
func (s *Store) SetField(path string, value any) error {
	return s.Update(func(doc *Resume) error { return doc.SetField(path, value) })
}

// EditItem updates one field of a list item.
func (s *Store) EditItem(path, value string) error {
	return s.Update(func(doc *Resume) error { return doc.EditItem(path, value) })
}

// SetTemplate replaces the template settings.
func (s *Store) SetTemplate(settings TemplateSettings) {
	_ = s.Update(func(doc *Resume) error {
		doc.TemplateSettings = settings
		return nil
	})
}

// AddExperience appends an empty experience and returns its id.
func (s *Store) AddExperience() string {
	var id string
	_ = s.Update(func(doc *Resume) error {
		id = doc.AddExperience(s.ids)
		return nil
	})
	return id
}

// AddEducation appends an empty education entry and returns its id.
func (s *Store) AddEducation() string {
	var id string
	_ = s.Update(func(doc *Resume) error {
		id = doc.AddEducation(s.ids)
		return nil
	})
	return id
}

// DeleteExperience removes an experience by id.
func (s *Store) DeleteExperience(id string) bool {
	var removed bool
	_ = s.Update(func(doc *Resume) error {
		removed = doc.DeleteExperience(id)
		return nil
	})
	return removed
}

// DeleteEducation removes an education entry by id.
func (s *Store) DeleteEducation(id string) bool {
	var removed bool
	_ = s.Update(func(doc *Resume) error {
		removed = doc.DeleteEducation(id)
		return nil
	})
	return removed
}

// AddSkill adds a skill tag unless it is empty or already present.
func (s *Store) AddSkill(category SkillCategory, value string) bool {
	var added bool
	_ = s.Update(func(doc *Resume) error {
		added = doc.AddSkill(category, value)
		return nil
	})
	return added
}

// RemoveSkill removes a skill tag by exact match.
func (s *Store) RemoveSkill(category SkillCategory, value string) bool {
	var removed bool
	_ = s.Update(func(doc *Resume) error {
		removed = doc.RemoveSkill(category, value)
		return nil
	})
	return removed
}

// ReconcileJSON folds edits made through the raw JSON view into the document.
// Identical content is a no-op; malformed JSON returns an error and changes nothing.
func (s *Store) ReconcileJSON(text string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var edited map[string]any
	if err := json.Unmarshal([]byte(text), &edited); err != nil {
		return fmt.Errorf("parse debug json: %w", err)
	}
	return s.Update(func(doc *Resume) error {
		current := doc.ToMap()
		if reflect.DeepEqual(current, edited) {
			return nil
		}
		merged, err := FromMap(DeepMerge(current, edited))
		if err != nil {
			return err
		}
		AssignIDs(&merged, s.ids)
		*doc = merged
		return nil
	})
}

// JSON returns the indented form shown in the raw JSON view.
func (s *Store) JSON() string {
	doc := s.Snapshot()
	data, err := json.MarshalIndent(doc.normalized(), "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// PrepareForSave drops the raw text fallback once structured content exists.
func (r *Resume) PrepareForSave() {
	if strings.TrimSpace(r.Summary) != "" || len(r.Experiences) > 0 {
		r.RawText = ""
	}
}

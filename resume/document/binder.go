package document

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPath is returned for malformed field paths.
	ErrInvalidPath = errors.New("invalid field path")
	// ErrIndexOutOfRange is returned when a list path points past the end of the list.
	ErrIndexOutOfRange = errors.New("list index out of range")
)

var segmentPattern = regexp.MustCompile(`^(\w+)(?:\[(\d+)\])?$`)

type segment struct {
	key   string
	index int
	list  bool
}

func parsePath(path string) ([]segment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrInvalidPath
	}
	parts := strings.Split(path, ".")
	segs := make([]segment, 0, len(parts))
	for _, part := range parts {
		m := segmentPattern.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
		}
		seg := segment{key: m[1]}
		if m[2] != "" {
			idx, err := strconv.Atoi(m[2])
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidPath, path)
			}
			seg.index = idx
			seg.list = true
		}
		segs = append(segs, seg)
	}
	return segs, nil
}

// GetPath reads the value at a dotted path. The second result is false when any
// level along the path is missing.
func GetPath(tree map[string]any, path string) (any, bool) {
	segs, err := parsePath(path)
	if err != nil {
		return nil, false
	}
	var cur any = tree
	for _, seg := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[seg.key]
		if !ok {
			return nil, false
		}
		if seg.list {
			list, ok := cur.([]any)
			if !ok || seg.index >= len(list) {
				return nil, false
			}
			cur = list[seg.index]
		}
	}
	return cur, true
}

// SetPath writes value at a dotted path, creating intermediate mappings that do
// not exist yet. List items are never created implicitly.
func SetPath(tree map[string]any, path string, value any) error {
	segs, err := parsePath(path)
	if err != nil {
		return err
	}
	cur := tree
	for i, seg := range segs {
		last := i == len(segs)-1
		if seg.list {
			list, ok := cur[seg.key].([]any)
			if !ok || seg.index >= len(list) {
				return fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
			}
			if last {
				list[seg.index] = value
				return nil
			}
			next, ok := list[seg.index].(map[string]any)
			if !ok {
				next = map[string]any{}
				list[seg.index] = next
			}
			cur = next
			continue
		}
		if last {
			cur[seg.key] = value
			return nil
		}
		next, ok := cur[seg.key].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg.key] = next
		}
		cur = next
	}
	return nil
}

// GetField reads a value from the resume by dotted path.
func (r Resume) GetField(path string) (any, bool) {
	return GetPath(r.ToMap(), path)
}

// SetField writes a value into the resume by dotted path. The resume is only
// replaced when the whole write succeeds.
func (r *Resume) SetField(path string, value any) error {
	tree := r.ToMap()
	if err := SetPath(tree, path, value); err != nil {
		return err
	}
	updated, err := FromMap(tree)
	if err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	*r = updated
	return nil
}

// Binder maps form input names to document paths.
type Binder struct {
	paths map[string]string
}

// NewBinder returns a binder for the given input name to path bindings.
func NewBinder(bindings map[string]string) *Binder {
	paths := make(map[string]string, len(bindings))
	for input, path := range bindings {
		paths[input] = path
	}
	return &Binder{paths: paths}
}

// DefaultBindings covers the scalar fields of the editor form.
func DefaultBindings() map[string]string {
	return map[string]string{
		"fullName":     "personal.full_name",
		"jobTitle":     "personal.job_title",
		"email":        "personal.email",
		"phone":        "personal.phone",
		"location":     "personal.location",
		"linkedin":     "personal.linkedin",
		"portfolio":    "personal.portfolio",
		"summary":      "summary",
		"projects":     "additional.projects",
		"languages":    "additional.languages",
		"volunteer":    "additional.volunteer",
		"templateName": "template_settings.name",
		"colorScheme":  "template_settings.color_scheme",
		"fontFamily":   "template_settings.font_family",
	}
}

// Path returns the document path bound to an input.
func (b *Binder) Path(input string) (string, bool) {
	path, ok := b.paths[input]
	return path, ok
}

// OnChange writes an input value into the document.
func (b *Binder) OnChange(doc *Resume, input string, value any) error {
	path, ok := b.paths[input]
	if !ok {
		return fmt.Errorf("%w: unbound input %q", ErrInvalidPath, input)
	}
	return doc.SetField(path, value)
}

// Populate copies document values into inputs. Inputs whose path cannot be
// resolved keep their current value.
func (b *Binder) Populate(doc Resume, inputs map[string]string) {
	tree := doc.ToMap()
	for input, path := range b.paths {
		val, ok := GetPath(tree, path)
		if !ok || val == nil {
			continue
		}
		switch v := val.(type) {
		case string:
			inputs[input] = v
		case bool:
			inputs[input] = strconv.FormatBool(v)
		default:
			inputs[input] = fmt.Sprint(v)
		}
	}
}

package document

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DeepMerge copies source into target. Nested mappings are merged recursively,
// lists replace the target value wholesale and scalars overwrite. The target is
// modified in place and returned.
func DeepMerge(target, source map[string]any) map[string]any {
	if target == nil {
		target = map[string]any{}
	}
	for key, srcVal := range source {
		srcMap, srcIsMap := srcVal.(map[string]any)
		if !srcIsMap {
			if list, ok := srcVal.([]any); ok {
				target[key] = append([]any{}, list...)
				continue
			}
			target[key] = srcVal
			continue
		}
		dstMap, dstIsMap := target[key].(map[string]any)
		if !dstIsMap {
			dstMap = map[string]any{}
		}
		target[key] = DeepMerge(dstMap, srcMap)
	}
	return target
}

// ToMap converts the resume into its generic JSON tree.
func (r Resume) ToMap() map[string]any {
	data, err := json.Marshal(r)
	if err != nil {
		return map[string]any{}
	}
	out := map[string]any{}
	_ = json.Unmarshal(data, &out)
	return out
}

// FromMap decodes a generic JSON tree into a resume.
func FromMap(tree map[string]any) (Resume, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return Resume{}, fmt.Errorf("encode tree: %w", err)
	}
	var out Resume
	if err := json.Unmarshal(data, &out); err != nil {
		return Resume{}, fmt.Errorf("decode resume: %w", err)
	}
	return out.normalized(), nil
}

// Serialize encodes the whole resume as JSON.
func Serialize(r Resume) (string, error) {
	data, err := json.Marshal(r.normalized())
	if err != nil {
		return "", fmt.Errorf("serialize resume: %w", err)
	}
	return string(data), nil
}

// Load builds a resume from stored or uploaded content. JSON content is merged
// onto the defaults; anything else is kept verbatim in RawText. Items without
// a unique id receive one from ids.
func Load(content string, ids IDGenerator) Resume {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return Default()
	}

	var source map[string]any
	// Unmarshal rejects trailing text after the object.
	if err := json.Unmarshal([]byte(trimmed), &source); err != nil || source == nil {
		return rawFallback(content)
	}

	merged := DeepMerge(Default().ToMap(), source)
	for _, key := range []string{"experiences", "education"} {
		if _, ok := merged[key].([]any); !ok {
			merged[key] = []any{}
		}
	}

	doc, err := FromMap(merged)
	if err != nil {
		return rawFallback(content)
	}
	AssignIDs(&doc, ids)
	return doc
}

// AssignIDs gives every list item without an id, or with an id already used
// earlier in the same list, a fresh one.
func AssignIDs(doc *Resume, ids IDGenerator) {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	seen := make(map[string]struct{}, len(doc.Experiences))
	for i := range doc.Experiences {
		doc.Experiences[i].ID = uniqueID(doc.Experiences[i].ID, seen, ids)
	}
	seen = make(map[string]struct{}, len(doc.Education))
	for i := range doc.Education {
		doc.Education[i].ID = uniqueID(doc.Education[i].ID, seen, ids)
	}
}

func uniqueID(id string, seen map[string]struct{}, ids IDGenerator) string {
	_, dup := seen[id]
	for strings.TrimSpace(id) == "" || dup {
		id = ids.NewID()
		_, dup = seen[id]
	}
	seen[id] = struct{}{}
	return id
}

func rawFallback(content string) Resume {
	doc := Default()
	doc.RawText = content
	return doc
}

// normalized replaces nil lists with empty ones so the JSON form is stable.
func (r Resume) normalized() Resume {
	if r.Experiences == nil {
		r.Experiences = []Experience{}
	}
	for i := range r.Experiences {
		if r.Experiences[i].Achievements == nil {
			r.Experiences[i].Achievements = []string{}
		}
	}
	if r.Education == nil {
		r.Education = []Education{}
	}
	if r.Skills.Technical == nil {
		r.Skills.Technical = []string{}
	}
	if r.Skills.Soft == nil {
		r.Skills.Soft = []string{}
	}
	if r.Skills.Certifications == nil {
		r.Skills.Certifications = []string{}
	}
	return r
}

// Package assemble normalizes upstream research payloads into a model.ResearchRecord.
//
// Upstream generators disagree on shape: some return flat camelCase keys, some
// snake_case, and some nest the analysis under "framework". Assemble accepts all
// of them and never fails.
package assemble

import (
	"encoding/json"
	"fmt"
	"strings"

	"research-backend/research/model"
)

var (
	businessModelKeys = []string{"businessModel", "business_model"}
	risksKeys         = []string{"risks"}
	growthKeys        = []string{"growthDrivers", "growth_drivers"}
)

// Assemble builds a record from an arbitrary decoded payload.
func Assemble(raw any) model.ResearchRecord {
	top := asMap(raw)
	framework := asMap(top["framework"])

	return model.ResearchRecord{
		Questions:     listOnly(top["questions"]),
		BusinessModel: stringField(lookup(top, framework, businessModelKeys)),
		Risks:         listOrLines(lookup(top, framework, risksKeys)),
		GrowthDrivers: listOrLines(lookup(top, framework, growthKeys)),
	}
}

// AssembleJSON decodes data and assembles it. Invalid JSON yields the empty record.
func AssembleJSON(data []byte) model.ResearchRecord {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Assemble(nil)
	}
	return Assemble(raw)
}

// ToSections converts a record back into the snake_case map stored with notes.
func ToSections(r model.ResearchRecord) map[string]any {
	return map[string]any{
		"questions":      nonNil(r.Questions),
		"business_model": r.BusinessModel,
		"risks":          nonNil(r.Risks),
		"growth_drivers": nonNil(r.GrowthDrivers),
	}
}

func lookup(top, framework map[string]any, keys []string) any {
	for _, src := range []map[string]any{top, framework} {
		for _, k := range keys {
			if v, ok := src[k]; ok && v != nil {
				return v
			}
		}
	}
	return nil
}

func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out
	default:
		return nil
	}
}

func stringField(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func listOnly(v any) []string {
	switch items := v.(type) {
	case []string:
		return append([]string{}, items...)
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := scalarString(item); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

func listOrLines(v any) []string {
	if s, ok := v.(string); ok {
		return splitLines(s)
	}
	return listOnly(v)
}

func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64, float32, int, int64, int32, json.Number, bool:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

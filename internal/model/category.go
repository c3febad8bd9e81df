package model

import "sort"

// categoryMapping 类别名 → Eventbrite 类别 ID，与上游约定的固定表
var categoryMapping = map[string]string{
	"Business & Professional": "101",
	"Technology":              "102",
	"Music":                   "103",
	"Arts & Culture":          "105",
	"Health & Wellness":       "107",
	"Sports & Fitness":        "108",
	"Food & Drink":            "110",
}

// CategoryID 查不到返回 false，调用方直接丢弃该条件
func CategoryID(name string) (string, bool) {
	id, ok := categoryMapping[name]
	return id, ok
}

// CategoryEntry 类别表单项
type CategoryEntry struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// Categories 按 ID 排序返回类别表副本
func Categories() []CategoryEntry {
	out := make([]CategoryEntry, 0, len(categoryMapping))
	for name, id := range categoryMapping {
		out = append(out, CategoryEntry{Name: name, ID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

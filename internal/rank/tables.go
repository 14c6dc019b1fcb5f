// Package rank хранит кураторские списки признанных управляющих компаний
// и застройщиков. Таблицы грузятся один раз на старте процесса, после
// чего используются только на чтение — конкурентный доступ безопасен.
package rank

import (
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed property_ranks.json developer_ranks.json
var rankFiles embed.FS

type tierList struct {
	Top10 []string `json:"top10"`
	Top50 []string `json:"top50"`
}

// Tables — неизменяемые справочники рангов. Передаются в движок оценки
// при создании, а не читаются им из глобального состояния: это позволяет
// подменять таблицы синтетическими в тестах.
type Tables struct {
	propertyTop     map[string]struct{}
	propertySecond  map[string]struct{}
	developerTop    map[string]struct{}
	developerSecond map[string]struct{}
}

// Load читает встроенные справочники.
func Load() (*Tables, error) {
	property, err := loadTierList("property_ranks.json")
	if err != nil {
		return nil, err
	}

	developer, err := loadTierList("developer_ranks.json")
	if err != nil {
		return nil, err
	}

	return NewTables(property.Top10, property.Top50, developer.Top10, developer.Top50), nil
}

// NewTables собирает таблицы из произвольных списков имён.
func NewTables(propertyTop, propertySecond, developerTop, developerSecond []string) *Tables {
	return &Tables{
		propertyTop:     toSet(propertyTop),
		propertySecond:  toSet(propertySecond),
		developerTop:    toSet(developerTop),
		developerSecond: toSet(developerSecond),
	}
}

func (t *Tables) PropertyTopTier(name string) bool {
	_, ok := t.propertyTop[name]
	return ok
}

func (t *Tables) PropertySecondTier(name string) bool {
	_, ok := t.propertySecond[name]
	return ok
}

func (t *Tables) DeveloperTopTier(name string) bool {
	_, ok := t.developerTop[name]
	return ok
}

func (t *Tables) DeveloperSecondTier(name string) bool {
	_, ok := t.developerSecond[name]
	return ok
}

func loadTierList(name string) (tierList, error) {
	raw, err := rankFiles.ReadFile(name)
	if err != nil {
		return tierList{}, fmt.Errorf("rankFiles.ReadFile: %w", err)
	}

	var list tierList
	if err := json.Unmarshal(raw, &list); err != nil {
		return tierList{}, fmt.Errorf("json.Unmarshal %s: %w", name, err)
	}

	return list, nil
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}

	return set
}

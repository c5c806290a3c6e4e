package entity

import "rp_market/internal/domain/value"

type Country struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Continent  string          `json:"continent,omitempty"`
	Population float64         `json:"population,omitempty"`
	Resources  value.Resources `json:"resources"`
	Borders    []string        `json:"borders,omitempty"`
}

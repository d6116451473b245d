package models

import (
	_ "embed"
	"strings"

	"gopkg.in/yaml.v3"
)

type Club struct {
	Name        string   `yaml:"name"`
	Slug        string   `yaml:"slug"`
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
	Color       string   `yaml:"color"`
	Members     string   `yaml:"members"`
	Activities  []string `yaml:"activities"`

	// Markdown.
	About string `yaml:"about"`
}

//go:embed clubs.yaml
var clubsYaml []byte

// The department's clubs, in display order.
var Clubs []Club

var clubsBySlug map[string]*Club

func init() {
	if err := yaml.Unmarshal(clubsYaml, &Clubs); err != nil {
		panic(err)
	}
	clubsBySlug = make(map[string]*Club, len(Clubs))
	for i := range Clubs {
		clubsBySlug[Clubs[i].Slug] = &Clubs[i]
	}
}

func ClubBySlug(slug string) *Club {
	return clubsBySlug[slug]
}

// ClubDisplayName is the club's proper name when we know it, otherwise the
// slug with hyphens turned into spaces.
func ClubDisplayName(slug string) string {
	if club := ClubBySlug(slug); club != nil {
		return club.Name
	}
	return strings.ReplaceAll(slug, "-", " ")
}

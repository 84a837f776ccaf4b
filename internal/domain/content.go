package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the requested content does not exist.
var ErrNotFound = errors.New("resource not found")

// Content sections served individually by the API.
const (
	SectionExperience = "experience"
	SectionProjects   = "projects"
	SectionSkills     = "skills"
)

type SkillCategory string

const (
	SkillFrontend      SkillCategory = "frontend"
	SkillBackend       SkillCategory = "backend"
	SkillTools         SkillCategory = "tools"
	SkillMethodologies SkillCategory = "methodologies"
)

// SkillCategories is the display order of skill groups.
var SkillCategories = []SkillCategory{SkillFrontend, SkillBackend, SkillTools, SkillMethodologies}

type ProjectCategory string

const (
	ProjectWeb       ProjectCategory = "web"
	ProjectMobile    ProjectCategory = "mobile"
	ProjectFullstack ProjectCategory = "fullstack"
	ProjectOther     ProjectCategory = "other"
)

type PersonalInfo struct {
	Name                 string `json:"name" yaml:"name"`
	Role                 string `json:"role" yaml:"role"`
	Email                string `json:"email" yaml:"email"`
	Phone                string `json:"phone" yaml:"phone"`
	Location             string `json:"location" yaml:"location"`
	YearsOfExperience    int    `json:"yearsOfExperience" yaml:"yearsOfExperience"`
	ProjectsCompleted    int    `json:"projectsCompleted" yaml:"projectsCompleted"`
	CompaniesWorked      int    `json:"companiesWorked" yaml:"companiesWorked"`
	TechnologiesMastered int    `json:"technologiesMastered" yaml:"technologiesMastered"`
}

type ContactInfo struct {
	Email    string `json:"email" yaml:"email"`
	Phone    string `json:"phone" yaml:"phone"`
	Location string `json:"location" yaml:"location"`
}

type SocialLink struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
	Icon string `json:"icon" yaml:"icon"`
}

type Skill struct {
	Name     string        `json:"name" yaml:"name"`
	Level    int           `json:"level" yaml:"level"`
	Category SkillCategory `json:"category" yaml:"category"`
	Icon     string        `json:"icon,omitempty" yaml:"icon"`
	Color    string        `json:"color,omitempty" yaml:"color"`
}

type Experience struct {
	ID           string   `json:"id" yaml:"id"`
	Company      string   `json:"company" yaml:"company"`
	Position     string   `json:"position" yaml:"position"`
	Location     string   `json:"location" yaml:"location"`
	StartDate    string   `json:"startDate" yaml:"startDate"`
	EndDate      *string  `json:"endDate" yaml:"endDate"`
	Current      bool     `json:"current" yaml:"current"`
	Description  string   `json:"description" yaml:"description"`
	Achievements []string `json:"achievements" yaml:"achievements"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Logo         string   `json:"logo,omitempty" yaml:"logo"`
}

type Project struct {
	ID              string          `json:"id" yaml:"id"`
	Title           string          `json:"title" yaml:"title"`
	Description     string          `json:"description" yaml:"description"`
	LongDescription string          `json:"longDescription,omitempty" yaml:"longDescription"`
	Image           string          `json:"image" yaml:"image"`
	Tags            []string        `json:"tags" yaml:"tags"`
	LiveURL         string          `json:"liveUrl,omitempty" yaml:"liveUrl"`
	GithubURL       string          `json:"githubUrl,omitempty" yaml:"githubUrl"`
	Featured        bool            `json:"featured" yaml:"featured"`
	Category        ProjectCategory `json:"category" yaml:"category"`
}

type Education struct {
	Degree      string `json:"degree" yaml:"degree"`
	Field       string `json:"field" yaml:"field"`
	Institution string `json:"institution" yaml:"institution"`
	Year        string `json:"year" yaml:"year"`
	Location    string `json:"location,omitempty" yaml:"location"`
}

type NavigationItem struct {
	Href     string `json:"href" yaml:"href"`
	LabelKey string `json:"labelKey" yaml:"labelKey"`
}

// Stat is one headline number in the about section.
type Stat struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Portfolio is the full localized content of the site.
type Portfolio struct {
	Locale      Locale            `json:"locale" yaml:"-"`
	Personal    PersonalInfo      `json:"personal" yaml:"personal"`
	Contact     ContactInfo       `json:"contact" yaml:"contact"`
	Social      []SocialLink      `json:"social" yaml:"social"`
	Bio         []string          `json:"bio" yaml:"bio"`
	Stats       []Stat            `json:"stats" yaml:"stats"`
	Education   Education         `json:"education" yaml:"education"`
	Languages   map[string]string `json:"languages" yaml:"languages"`
	Learning    []string          `json:"learning" yaml:"learning"`
	Experiences []Experience      `json:"experiences" yaml:"experiences"`
	Projects    []Project         `json:"projects" yaml:"projects"`
	Skills      []Skill           `json:"skills" yaml:"skills"`
	Navigation  []NavigationItem  `json:"navigation" yaml:"navigation"`
	CVFile      string            `json:"cvFile" yaml:"cvFile"`
	Messages    map[string]string `json:"messages" yaml:"messages"`
}

// T returns the UI string for key, or the key itself when missing.
func (p *Portfolio) T(key string) string {
	if msg, ok := p.Messages[key]; ok {
		return msg
	}
	return key
}

// FeaturedProjects returns projects flagged as featured, in content order.
func (p *Portfolio) FeaturedProjects() []Project {
	var out []Project
	for _, pr := range p.Projects {
		if pr.Featured {
			out = append(out, pr)
		}
	}
	return out
}

// SkillGroup is one category of skills for display.
type SkillGroup struct {
	Category SkillCategory `json:"category"`
	Title    string        `json:"title"`
	Skills   []Skill       `json:"skills"`
}

// SkillGroups groups skills by category in SkillCategories order, skipping empty groups.
func (p *Portfolio) SkillGroups() []SkillGroup {
	var groups []SkillGroup
	for _, cat := range SkillCategories {
		g := SkillGroup{Category: cat, Title: p.T("skills.categories." + string(cat))}
		for _, s := range p.Skills {
			if s.Category == cat {
				g.Skills = append(g.Skills, s)
			}
		}
		if len(g.Skills) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

// ContentRepository loads portfolio content for a locale
type ContentRepository interface {
	Get(ctx context.Context, locale Locale) (*Portfolio, error)
}

// ContentUsecase exposes localized portfolio content
type ContentUsecase interface {
	GetPortfolio(ctx context.Context, locale Locale) (*Portfolio, error)
	GetSection(ctx context.Context, locale Locale, section string) (interface{}, error)
}

// ResumeUsecase resolves where the CV for a locale can be downloaded
type ResumeUsecase interface {
	// DownloadURL returns an absolute or site-relative URL of the CV
	DownloadURL(ctx context.Context, locale Locale) (string, error)
}

package content

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"go-portfolio-site/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var embedded embed.FS

type yamlRepo struct {
	byLocale map[domain.Locale]*domain.Portfolio
}

// NewContentRepository parses the bundled content files once at startup.
func NewContentRepository() (domain.ContentRepository, error) {
	return NewContentRepositoryFS(embedded, "data")
}

// NewContentRepositoryFS loads <dir>/<locale>.yaml for every supported locale.
// Every locale must be present and every message key of the default locale
// must exist in the others.
func NewContentRepositoryFS(fsys fs.FS, dir string) (domain.ContentRepository, error) {
	repo := &yamlRepo{byLocale: make(map[domain.Locale]*domain.Portfolio, len(domain.SupportedLocales))}

	for _, loc := range domain.SupportedLocales {
		raw, err := fs.ReadFile(fsys, dir+"/"+loc.String()+".yaml")
		if err != nil {
			return nil, fmt.Errorf("failed to read %s content: %w", loc, err)
		}

		var p domain.Portfolio
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("failed to parse %s content: %w", loc, err)
		}
		p.Locale = loc
		repo.byLocale[loc] = &p
	}

	base := repo.byLocale[domain.DefaultLocale]
	for loc, p := range repo.byLocale {
		for key := range base.Messages {
			if _, ok := p.Messages[key]; !ok {
				return nil, fmt.Errorf("%s content is missing message %q", loc, key)
			}
		}
	}

	return repo, nil
}

// Get returns the shared, read-only content for locale.
func (r *yamlRepo) Get(ctx context.Context, locale domain.Locale) (*domain.Portfolio, error) {
	p, ok := r.byLocale[locale]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

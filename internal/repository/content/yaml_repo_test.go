package content

import (
	"context"
	"testing"
	"testing/fstest"

	"go-portfolio-site/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundledContent(t *testing.T) {
	repo, err := NewContentRepository()
	require.NoError(t, err)

	for _, loc := range domain.SupportedLocales {
		t.Run(loc.String(), func(t *testing.T) {
			p, err := repo.Get(context.Background(), loc)
			require.NoError(t, err)

			assert.Equal(t, loc, p.Locale)
			assert.NotEmpty(t, p.Personal.Name)
			assert.NotEmpty(t, p.Experiences)
			assert.NotEmpty(t, p.Projects)
			assert.NotEmpty(t, p.CVFile)
			assert.Len(t, p.SkillGroups(), len(domain.SkillCategories))

			for _, nav := range p.Navigation {
				assert.NotEqual(t, nav.LabelKey, p.T(nav.LabelKey), "missing label %s", nav.LabelKey)
			}
			for _, s := range p.Skills {
				assert.Contains(t, domain.SkillCategories, s.Category, s.Name)
				assert.True(t, s.Level > 0 && s.Level <= 100, s.Name)
			}
		})
	}
}

func TestCurrentExperienceHasNoEndDate(t *testing.T) {
	repo, err := NewContentRepository()
	require.NoError(t, err)

	p, err := repo.Get(context.Background(), domain.LocaleEN)
	require.NoError(t, err)
	for _, e := range p.Experiences {
		if e.Current {
			assert.Nil(t, e.EndDate, e.ID)
		} else {
			assert.NotNil(t, e.EndDate, e.ID)
		}
	}
}

func TestGetUnknownLocale(t *testing.T) {
	repo, err := NewContentRepository()
	require.NoError(t, err)

	_, err = repo.Get(context.Background(), domain.Locale("de"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNewContentRepositoryFSErrors(t *testing.T) {
	t.Run("missing locale file", func(t *testing.T) {
		fsys := fstest.MapFS{
			"data/en.yaml": {Data: []byte("messages:\n  a: b\n")},
		}
		_, err := NewContentRepositoryFS(fsys, "data")
		assert.ErrorContains(t, err, "fr")
	})

	t.Run("missing translation", func(t *testing.T) {
		fsys := fstest.MapFS{
			"data/en.yaml": {Data: []byte("messages:\n  nav.home: Home\n  nav.about: About\n")},
			"data/fr.yaml": {Data: []byte("messages:\n  nav.home: Accueil\n")},
		}
		_, err := NewContentRepositoryFS(fsys, "data")
		assert.ErrorContains(t, err, "nav.about")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		fsys := fstest.MapFS{
			"data/en.yaml": {Data: []byte("messages: [unclosed\n")},
			"data/fr.yaml": {Data: []byte("messages: {}\n")},
		}
		_, err := NewContentRepositoryFS(fsys, "data")
		assert.Error(t, err)
	})
}

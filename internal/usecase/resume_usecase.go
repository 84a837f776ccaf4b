package usecase

import (
	"context"
	"net/url"
	"path"

	"go-portfolio-site/internal/domain"
	"go-portfolio-site/pkg/logger"
)

// CVPresigner issues time-limited download links for stored objects
type CVPresigner interface {
	PresignGet(ctx context.Context, key, filename string) (string, error)
}

type resumeUsecase struct {
	content   domain.ContentUsecase
	presigner CVPresigner
}

// NewResumeUsecase serves CVs from object storage when presigner is set,
// otherwise from /public/cv on the local disk.
func NewResumeUsecase(content domain.ContentUsecase, presigner CVPresigner) domain.ResumeUsecase {
	return &resumeUsecase{content: content, presigner: presigner}
}

func (uc *resumeUsecase) DownloadURL(ctx context.Context, locale domain.Locale) (string, error) {
	p, err := uc.content.GetPortfolio(ctx, locale)
	if err != nil {
		return "", err
	}

	file := path.Base(p.CVFile)
	localURL := "/public/cv/" + url.PathEscape(file)

	if uc.presigner == nil {
		return localURL, nil
	}

	signed, err := uc.presigner.PresignGet(ctx, "cv/"+file, file)
	if err != nil {
		logger.Log.Warn("cv presign failed, serving local copy",
			"locale", locale.String(),
			"error", err,
		)
		return localURL, nil
	}
	return signed, nil
}

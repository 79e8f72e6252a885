package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Badsnus/cu-events/internal/domain/common/errorz"
	"github.com/Badsnus/cu-events/internal/domain/dto"
	"github.com/Badsnus/cu-events/pkg/imaging"
	"github.com/Badsnus/cu-events/pkg/logger/types"
)

const MaxPosterSize = 5 << 20

type posterBucket interface {
	Put(ctx context.Context, objectPath string, data []byte) (string, error)
}

type PosterService struct {
	logger *types.Logger

	bucket   posterBucket
	maxWidth uint
	now      func() time.Time
}

func NewPosterService(logger *types.Logger, bucket posterBucket, maxWidth uint, now func() time.Time) *PosterService {
	if now == nil {
		now = time.Now
	}
	return &PosterService{
		logger:   logger,
		bucket:   bucket,
		maxWidth: maxWidth,
		now:      now,
	}
}

// Upload stores a JPEG or PNG poster under the caller's folder and returns its public URL.
func (s *PosterService) Upload(ctx context.Context, session *dto.Session, data []byte) (string, error) {
	if !session.IsAuthenticated() {
		return "", errorz.ErrUnauthenticated
	}
	if len(data) > MaxPosterSize {
		return "", errorz.ErrFileTooLarge
	}

	contentType, err := imaging.Detect(data)
	if errors.Is(err, imaging.ErrUnsupportedFormat) {
		return "", errorz.ErrUnsupportedMedia
	}
	if err != nil {
		return "", err
	}

	scaled, err := imaging.Downscale(data, contentType, s.maxWidth)
	if err != nil {
		s.logger.Warnf("poster downscale failed, storing original (user_id=%s): %v", session.UserID(), err)
		scaled = data
	}

	objectPath := fmt.Sprintf("%s/%d.%s", session.UserID(), s.now().UnixMilli(), imaging.Extensions[contentType])
	url, err := s.bucket.Put(ctx, objectPath, scaled)
	if err != nil {
		return "", err
	}
	s.logger.Infof("poster uploaded (user_id=%s, path=%s, bytes=%d)", session.UserID(), objectPath, len(scaled))
	return url, nil
}

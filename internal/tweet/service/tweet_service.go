package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/AlibekovAA/microblog/internal/common/clock"
	"github.com/AlibekovAA/microblog/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/microblog/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/microblog/internal/common/errors"
	"github.com/AlibekovAA/microblog/internal/common/jwtverify"
	"github.com/AlibekovAA/microblog/internal/common/logger"
	"github.com/AlibekovAA/microblog/internal/observability/metrics"
	"github.com/AlibekovAA/microblog/internal/tweet/domain"
	"github.com/AlibekovAA/microblog/internal/tweet/policy"
	tweetrepo "github.com/AlibekovAA/microblog/internal/tweet/repository"
	"github.com/AlibekovAA/microblog/internal/tweet/storage"
)

type TweetServiceDeps struct {
	Repo        tweetrepo.Repository
	Images      storage.ImageStore
	IDGenerator commoncrypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

type TweetService struct {
	repo        tweetrepo.Repository
	images      storage.ImageStore
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

// NewTweetService accepts a nil Images store; attachments are then dropped.
func NewTweetService(deps TweetServiceDeps) *TweetService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &TweetService{
		repo:        deps.Repo,
		images:      deps.Images,
		idGenerator: deps.IDGenerator,
		clock:       clk,
		log:         deps.Log,
	}
}

type Image struct {
	Filename string
	Body     io.Reader
	Size     int64
}

type CreateInput struct {
	Content string
	Image   *Image
}

func ValidateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "", ErrContentRequired
	}
	if utf8.RuneCountInString(trimmed) > constants.TweetMaxLength {
		return "", ErrContentTooLong
	}
	return trimmed, nil
}

func (s *TweetService) Create(ctx context.Context, actor jwtverify.Claims, input CreateInput) (domain.Tweet, error) {
	if actor.UserID == "" {
		return domain.Tweet{}, commonerrors.ErrUnauthorized
	}

	content, err := ValidateContent(input.Content)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": actor.UserID,
			"action":  "tweet_create_validation_failed",
		}).Debugf("create tweet rejected: %v", err)
		return domain.Tweet{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": actor.UserID,
			"action":  "tweet_id_generation_failed",
		}).Errorf("create tweet failed: id generation error: %v", err)
		return domain.Tweet{}, commonerrors.ErrInternalError.WithCause(err)
	}

	imageURL, err := s.uploadImage(ctx, actor, id, input.Image)
	if err != nil {
		return domain.Tweet{}, err
	}

	tweet := domain.Tweet{
		ID:        id,
		Content:   content,
		UserID:    actor.UserID,
		Username:  actor.Username,
		Likes:     []string{},
		ImageURL:  imageURL,
		CreatedAt: s.clock.Now().UTC(),
	}

	if err := s.repo.Create(ctx, tweet); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id":  actor.UserID,
			"tweet_id": id,
			"action":   "tweet_create_failed",
		}).Errorf("create tweet failed: %v", err)
		return domain.Tweet{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.TweetsCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":   actor.UserID,
		"tweet_id":  id,
		"has_image": imageURL != "",
		"action":    "tweet_created",
	}).Info("tweet created")

	return tweet, nil
}

func (s *TweetService) uploadImage(ctx context.Context, actor jwtverify.Claims, tweetID string, image *Image) (string, error) {
	if image == nil {
		return "", nil
	}

	fields := logger.Fields{
		"user_id":  actor.UserID,
		"tweet_id": tweetID,
		"filename": image.Filename,
	}

	if s.images == nil {
		fields["action"] = "tweet_image_ignored"
		s.log.WithFields(ctx, fields).Warn("image attachment ignored: no image store configured")
		return "", nil
	}

	contentType, body, err := storage.Sniff(image.Filename, image.Body)
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("rejected").Inc()
		fields["action"] = "tweet_image_rejected"
		s.log.WithFields(ctx, fields).Warnf("image rejected: %v", err)
		if errors.Is(err, storage.ErrUnsupportedFormat) {
			return "", ErrUnsupportedImage.WithCause(err)
		}
		return "", ErrUploadFailed.WithCause(err)
	}

	start := time.Now()
	url, err := s.images.Put(ctx, storage.Key(constants.ImageKeyPrefix, tweetID, contentType), contentType, body, image.Size)
	metrics.ImageUploadDurationSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("failed").Inc()
		fields["action"] = "tweet_image_upload_failed"
		s.log.WithFields(ctx, fields).Errorf("image upload failed: %v", err)
		return "", ErrUploadFailed.WithCause(err)
	}

	metrics.ImageUploadsTotal.WithLabelValues("stored").Inc()
	return url, nil
}

// List returns store failures unwrapped; the HTTP layer reports them verbatim.
func (s *TweetService) List(ctx context.Context) ([]domain.Tweet, error) {
	tweets, err := s.repo.List(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "tweet_list_failed",
		}).Errorf("list tweets failed: %v", err)
		return nil, err
	}
	return tweets, nil
}

func (s *TweetService) ToggleLike(ctx context.Context, actor jwtverify.Claims, tweetID string) (domain.Tweet, error) {
	if err := policy.AuthorizeLike(actor); err != nil {
		metrics.TweetAuthorizationDenied.WithLabelValues("like").Inc()
		return domain.Tweet{}, err
	}

	if !commoncrypto.IsValidID(tweetID) {
		return domain.Tweet{}, ErrTweetNotFound
	}

	tweet, liked, err := s.repo.ToggleLike(ctx, tweetID, actor.UserID)
	if err != nil {
		if errors.Is(err, tweetrepo.ErrTweetNotFound) {
			return domain.Tweet{}, ErrTweetNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id":  actor.UserID,
			"tweet_id": tweetID,
			"action":   "tweet_like_failed",
		}).Errorf("toggle like failed: %v", err)
		return domain.Tweet{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	action := "unliked"
	if liked {
		action = "liked"
	}
	metrics.TweetLikesToggled.WithLabelValues(action).Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":  actor.UserID,
		"tweet_id": tweetID,
		"action":   "tweet_" + action,
	}).Debug("like toggled")

	return tweet, nil
}

// Delete looks the tweet up before consulting the ownership policy, so an
// unknown id is 404 for every caller.
func (s *TweetService) Delete(ctx context.Context, actor jwtverify.Claims, tweetID string) error {
	if !commoncrypto.IsValidID(tweetID) {
		return ErrTweetNotFound
	}

	tweet, err := s.repo.FindByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, tweetrepo.ErrTweetNotFound) {
			return ErrTweetNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"tweet_id": tweetID,
			"action":   "tweet_lookup_failed",
		}).Errorf("delete tweet failed: %v", err)
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := policy.AuthorizeDelete(actor, tweet); err != nil {
		metrics.TweetAuthorizationDenied.WithLabelValues("delete").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"user_id":  actor.UserID,
			"tweet_id": tweetID,
			"action":   "tweet_delete_denied",
		}).Warn("delete denied: not the owner")
		return err
	}

	if err := s.repo.Delete(ctx, tweetID); err != nil {
		if errors.Is(err, tweetrepo.ErrTweetNotFound) {
			return ErrTweetNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id":  actor.UserID,
			"tweet_id": tweetID,
			"action":   "tweet_delete_failed",
		}).Errorf("delete tweet failed: %v", err)
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.TweetsDeleted.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id":  actor.UserID,
		"tweet_id": tweetID,
		"action":   "tweet_deleted",
	}).Info("tweet deleted")

	return nil
}

package http

import (
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlibekovAA/microblog/internal/common/constants"
	commonerrors "github.com/AlibekovAA/microblog/internal/common/errors"
	commonhttp "github.com/AlibekovAA/microblog/internal/common/http"
	"github.com/AlibekovAA/microblog/internal/common/jwtverify"
	"github.com/AlibekovAA/microblog/internal/common/logger"
	"github.com/AlibekovAA/microblog/internal/tweet/service"
	"github.com/AlibekovAA/microblog/internal/tweet/service/mapper"
)

const imageField = "image"

type createTweetRequest struct {
	Content string `json:"content"`
}

type Handler struct {
	tweets       *service.TweetService
	errorHandler *commonhttp.ErrorHandler
	log          *logger.Logger
}

func NewHandler(tweets *service.TweetService, log *logger.Logger) *Handler {
	return &Handler{
		tweets:       tweets,
		errorHandler: commonhttp.NewErrorHandler(log),
		log:          log,
	}
}

// RegisterRoutes mounts the public listing and the gated write routes.
func (h *Handler) RegisterRoutes(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Get("/", h.list)

	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Post("/", h.create)
		r.Post("/{id}/like", h.toggleLike)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errorHandler.HandleError(w, r, commonerrors.ErrUnauthorized)
		return
	}

	input, cleanup, err := h.parseCreate(r)
	if err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"user_id":   claims.UserID,
			"client_ip": commonhttp.GetClientIP(r),
			"action":    "tweet_create_invalid_body",
		}).Warnf("create tweet failed: invalid body: %v", err)
		h.errorHandler.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}
	defer cleanup()

	ctx := r.Context()

	tweet, err := h.tweets.Create(ctx, claims, input)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, mapper.TweetToDTO(tweet))
}

// parseCreate accepts either a JSON body or a multipart form with an optional image part.
func (h *Handler) parseCreate(r *http.Request) (service.CreateInput, func(), error) {
	noop := func() {}

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req createTweetRequest
		if err := commonhttp.DecodeJSON(r, &req); err != nil {
			return service.CreateInput{}, noop, err
		}
		return service.CreateInput{Content: req.Content}, noop, nil
	}

	if err := r.ParseMultipartForm(constants.MaxImageUploadSize); err != nil {
		return service.CreateInput{}, noop, err
	}
	cleanup := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	input := service.CreateInput{Content: r.FormValue("content")}

	file, header, err := r.FormFile(imageField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return input, cleanup, nil
		}
		cleanup()
		return service.CreateInput{}, noop, err
	}

	input.Image = &service.Image{
		Filename: header.Filename,
		Body:     file,
		Size:     header.Size,
	}
	return input, func() {
		_ = file.Close()
		cleanup()
	}, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tweets, err := h.tweets.List(ctx)
	if err != nil {
		h.errorHandler.HandleRawError(w, r, http.StatusInternalServerError, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, mapper.TweetsToDTO(tweets))
}

func (h *Handler) toggleLike(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errorHandler.HandleError(w, r, commonerrors.ErrUnauthorized)
		return
	}

	ctx := r.Context()

	tweet, err := h.tweets.ToggleLike(ctx, claims, chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, mapper.TweetToDTO(tweet))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		h.errorHandler.HandleError(w, r, commonerrors.ErrUnauthorized)
		return
	}

	ctx := r.Context()

	if err := h.tweets.Delete(ctx, claims, chi.URLParam(r, "id")); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, commonhttp.MessageResponse{Message: "Tweet deleted successfully"})
}

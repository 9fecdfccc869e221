package service

import (
	"context"
	"fmt"
	"innstay/config"
	"innstay/infras/otel"
	"innstay/internal/domains/user/model"
	"innstay/internal/domains/user/model/dto"
	"innstay/internal/domains/user/repository"
	"innstay/shared"
	"innstay/shared/cache"
	"innstay/shared/constant"
	gDto "innstay/shared/dto"
	"innstay/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser = "user:get"
)

type User interface {
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, userID string) error
}

type serviceImpl struct {
	repo        repository.User
	profileRepo repository.Profile
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.User, profileRepo repository.Profile, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:        repo,
		profileRepo: profileRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == "" {
		return res, failure.NotFound("user not found")
	}

	profile, err := s.profileRepo.Get(ctx, shared.FilterByID(id, model.ProfileFieldUserID, model.ProfileTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get profile")

		return res, fmt.Errorf("failed to get profile: %w", err)
	}

	res.FromModel(user, profile)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateProfileRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	userFilter := shared.FilterByID(userID, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, userFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found")
	}

	if req.FullName != nil {
		fields := shared.TransformFields(dto.UpdateFullNameRequest{FullName: *req.FullName}, userID)
		if err := s.repo.Update(ctx, fields, userFilter); err != nil {
			log.Error().Err(err).Msg("failed to update user")

			return fmt.Errorf("failed to update user: %w", err)
		}
	}

	if req.Phone != nil {
		fields := shared.TransformFields(dto.UpdatePhoneRequest{Phone: *req.Phone}, userID)
		profileFilter := gDto.FilterGroup{
			Filters: []any{
				gDto.Filter{
					Field:    model.ProfileFieldUserID,
					Operator: gDto.FilterOperatorEq,
					Value:    userID,
					Table:    model.ProfileTableName,
				},
			},
		}

		if err := s.profileRepo.Update(ctx, fields, profileFilter); err != nil {
			log.Error().Err(err).Msg("failed to update profile")

			return fmt.Errorf("failed to update profile: %w", err)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, userID)); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}
	}()

	return nil
}

package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"resto/config"
	"resto/infras/otel"
	"resto/infras/s3"
	"resto/internal/domains/menu/model"
	"resto/internal/domains/menu/model/dto"
	"resto/internal/domains/menu/repository"
	"resto/shared"
	"resto/shared/base64"
	"resto/shared/cache"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetMenuItem = "menu:get"
	cacheListMenu    = "menu:list"

	imageDirectory = "menu"
)

type Menu interface {
	List(ctx context.Context, req dto.ListMenuRequest) ([]dto.MenuItemResponse, error)
	Get(ctx context.Context, id string) (dto.MenuItemResponse, error)
	UpdateImage(ctx context.Context, id string, req dto.UpdateImageRequest) (dto.MenuItemResponse, error)
	// Seed inserts items only when the menu is empty and reports how many were written.
	Seed(ctx context.Context, items []dto.CreateMenuItemRequest) (int, error)
}

type serviceImpl struct {
	repo  repository.Menu
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Menu, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Menu {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) List(ctx context.Context, req dto.ListMenuRequest) (res []dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !req.ValidCategory() {
		return nil, failure.BadRequestFromString(fmt.Sprintf("invalid category, must be one of: %s", strings.Join(model.Categories, ", ")))
	}

	params := gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}
	filter := req.ToFilter()
	cacheKey := shared.BuildCacheKeyWithQuery(cacheListMenu, params, filter)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for menu")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu items")

		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}

	res = dto.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save menu to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetMenuItem, id)

	if err := s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for menu item")

		return res, nil
	}

	item, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(item)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save menu item to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.MenuItem, error) {
	item, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu item")

		return item, fmt.Errorf("failed to get menu item: %w", err)
	}

	if item.ID == constant.Empty {
		return item, failure.NotFound("menu item not found") // nolint:wrapcheck
	}

	return item, nil
}

func (s *serviceImpl) UpdateImage(ctx context.Context, id string, req dto.UpdateImageRequest) (res dto.MenuItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	data, contentType, err := base64.Decode(req.Image)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	filename := fmt.Sprintf("%s.%s", uuid.NewString(), strings.TrimPrefix(contentType, "image/"))

	url, err := s.s3.UploadFileBytes(ctx, imageDirectory, filename, contentType, data)
	if err != nil {
		log.Error().Err(err).Str("menu_item_id", id).Msg("failed to upload menu image")

		return res, fmt.Errorf("failed to upload image: %w", err)
	}

	now := timezone.Now()
	fields := map[string]any{
		model.FieldImage:         url,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: constant.ContextSystem,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("menu_item_id", id).Msg("failed to update menu image")

		if delErr := s.s3.DeleteFile(ctx, imageDirectory, filename); delErr != nil {
			log.Warn().Err(delErr).Str("file", filename).Msg("failed to remove orphaned upload")
		}

		return res, fmt.Errorf("failed to update menu item: %w", err)
	}

	if old := s.s3.GetObjectNameFromURL(item.Image); old != constant.Empty {
		if delErr := s.s3.DeleteFile(ctx, constant.Empty, old); delErr != nil {
			log.Warn().Err(delErr).Str("file", old).Msg("failed to delete previous menu image")
		}
	}

	item.Image = url
	item.ModifiedAt = now
	item.ModifiedBy = constant.ContextSystem
	res.FromModel(item)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetMenuItem, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete menu item cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheListMenu)
	}()

	return res, nil
}

func (s *serviceImpl) Seed(ctx context.Context, items []dto.CreateMenuItemRequest) (n int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Seed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	count, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count menu items")

		return 0, fmt.Errorf("failed to count menu items: %w", err)
	}

	if count > 0 || len(items) == 0 {
		return 0, nil
	}

	models := make([]model.MenuItem, len(items))
	for i, item := range items {
		models[i] = item.ToModel(constant.ContextSystem)
	}

	if err = s.repo.InsertBulk(ctx, models); err != nil {
		log.Error().Err(err).Msg("failed to seed menu items")

		return 0, fmt.Errorf("failed to seed menu items: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, cacheListMenu)

	return len(models), nil
}

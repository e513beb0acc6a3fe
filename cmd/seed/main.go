package main

import (
	"bytes"
	"context"
	_ "embed"
	"resto/config"
	"resto/di"
	"resto/internal/domains/menu/model/dto"
	"resto/shared/logger"
	"resto/shared/timezone"
	"resto/shared/validator"

	"github.com/rs/zerolog/log"
)

//go:embed menu.json
var menuData []byte

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	timezone.Init(cfg)

	items, err := load(menuData)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid seed menu")
	}

	inserted, err := di.InitializeMenuSeeder().Seed(context.Background(), items)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to seed menu")
	}

	log.Info().Int("inserted", inserted).Msg("Menu seed finished")
}

func load(data []byte) ([]dto.CreateMenuItemRequest, error) {
	var items []dto.CreateMenuItemRequest

	if err := validator.Decode(bytes.NewReader(data), &items); err != nil {
		return nil, err
	}

	for i := range items {
		if err := validator.ValidateStruct(&items[i]); err != nil {
			return nil, err
		}
	}

	return items, nil
}

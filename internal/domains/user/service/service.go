package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"resto/config"
	"resto/infras/otel"
	"resto/internal/domains/user/model"
	"resto/internal/domains/user/model/dto"
	"resto/internal/domains/user/repository"
	"resto/shared/constant"
	gDto "resto/shared/dto"
	"resto/shared/failure"
	"resto/shared/password"
	gRepo "resto/shared/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	maxUsernameAttempts = 5
	usernameSuffixLen   = 4
	maxUsernameLength   = 64
	fallbackUsername    = "guest"

	// room for "-" plus the suffix
	maxUsernameBase = maxUsernameLength - usernameSuffixLen - 1
)

var (
	usernameInvalidChars = regexp.MustCompile(`[^a-z0-9._-]+`)

	errUsernameExhausted = errors.New("could not allocate a unique username")
)

type User interface {
	// EnsureUser returns the user bound to the external identity, creating it on first sight.
	EnsureUser(ctx context.Context, req dto.EnsureUserRequest) (dto.UserResponse, error)
}

type serviceImpl struct {
	repo repository.User
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.User, cfg *config.Config, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

func (s *serviceImpl) EnsureUser(ctx context.Context, req dto.EnsureUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".EnsureUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if strings.TrimSpace(req.ExternalID) == constant.Empty {
		return res, failure.Validation("external identity is required", []failure.FieldError{
			{Field: model.FieldFirebaseUID, Message: "firebase_uid is required"},
		})
	}

	existing, err := s.getByExternalID(ctx, req.ExternalID)
	if err != nil {
		return res, err
	}

	if existing.ID != constant.Empty {
		res.FromModel(existing)

		return res, nil
	}

	hashed, err := password.Placeholder()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate placeholder password")

		return res, fmt.Errorf("failed to generate placeholder password: %w", err)
	}

	base := req.Username
	if base == constant.Empty {
		base = req.Email
	}

	base = Username(base)
	username := base

	for range maxUsernameAttempts {
		user := req.ToModel(username, hashed)

		err = s.repo.Insert(ctx, user)
		if err == nil {
			log.Info().Str("user_id", user.ID).Str("username", username).Msg("user created for external identity")

			res.FromModel(user)

			return res, nil
		}

		constraint, unique := gRepo.UniqueViolation(err)
		if !unique {
			log.Error().Err(err).Msg("failed to create user")

			return res, fmt.Errorf("failed to create user: %w", err)
		}

		switch constraint {
		case model.ConstraintUsername:
			username = fmt.Sprintf("%s-%s", base, uuid.NewString()[:usernameSuffixLen])

			log.Debug().Str("username", username).Msg("username taken, retrying with suffix")
		default:
			// a concurrent request created the user first
			existing, err = s.getByExternalID(ctx, req.ExternalID)
			if err != nil {
				return res, err
			}

			if existing.ID == constant.Empty {
				log.Error().Str("constraint", constraint).Msg("unique violation without a matching user")

				return res, fmt.Errorf("failed to create user: unique violation on %s", constraint)
			}

			res.FromModel(existing)

			return res, nil
		}
	}

	log.Error().Str("username", base).Msg("failed to allocate unique username")

	return res, fmt.Errorf("failed to create user: %w", errUsernameExhausted)
}

func (s *serviceImpl) getByExternalID(ctx context.Context, externalID string) (model.User, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldFirebaseUID,
				Operator: gDto.FilterOperatorEq,
				Value:    externalID,
				Table:    model.TableName,
			},
		},
	}

	user, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user by external identity")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Username derives a username from an email address or a requested name:
// the local part, lowercased, restricted to [a-z0-9._-] and short enough to
// take a collision suffix within the column width.
func Username(source string) string {
	local, _, _ := strings.Cut(strings.TrimSpace(source), "@")
	local = usernameInvalidChars.ReplaceAllString(strings.ToLower(local), constant.Empty)
	local = strings.Trim(local, "._-")

	if len(local) > maxUsernameBase {
		local = strings.TrimRight(local[:maxUsernameBase], "._-")
	}

	if local == constant.Empty {
		return fallbackUsername
	}

	return local
}

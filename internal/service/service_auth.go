// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-notes-keeper/internal/config"
	"github.com/MKhiriev/go-notes-keeper/internal/logger"
	"github.com/MKhiriev/go-notes-keeper/internal/mailer"
	"github.com/MKhiriev/go-notes-keeper/internal/store"
	"github.com/MKhiriev/go-notes-keeper/internal/utils"
	"github.com/MKhiriev/go-notes-keeper/internal/validators"
	"github.com/MKhiriev/go-notes-keeper/models"
)

// authService owns registration, email verification and bearer token
// issuance. All state is read-only after construction.
type authService struct {
	userRepository store.UserRepository
	mailQueue      MailQueue
	validator      validators.Validator

	// tokenSignKey signs both access and verification tokens; the audience
	// claim keeps them apart.
	tokenSignKey        string
	tokenIssuer         string
	tokenDuration       time.Duration
	verifyTokenDuration time.Duration
	passwordHashCost    int

	mailFrom       string
	verifyLinkBase string

	logger *logger.Logger
}

func NewAuthService(
	userRepository store.UserRepository,
	mailQueue MailQueue,
	validator validators.Validator,
	cfg config.App,
	mailCfg config.Mail,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:      userRepository,
		mailQueue:           mailQueue,
		validator:           validator,
		tokenSignKey:        cfg.TokenSignKey,
		tokenIssuer:         cfg.TokenIssuer,
		tokenDuration:       cfg.TokenDuration,
		verifyTokenDuration: cfg.VerifyTokenDuration,
		passwordHashCost:    cfg.PasswordHashCost,
		mailFrom:            mailCfg.From,
		verifyLinkBase:      mailCfg.VerifyLinkBase,
		logger:              logger,
	}
}

// RegisterUser stores a new unverified user and queues the verification
// mail. Mail problems are logged and never fail the registration.
//
// Returns ErrInvalidDataProvided for malformed input and ErrDuplicateIdentity
// when the user name is taken.
func (a *authService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, user); err != nil {
		log.Debug().Err(err).Str("func", "authService.RegisterUser").Msg("invalid user data provided")
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := utils.HashPassword(user.Password, a.passwordHashCost)
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterUser").Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}
	user.PasswordHash = hash
	user.Password = ""
	user.IsVerified = false

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrLoginAlreadyExists) {
			return models.User{}, ErrDuplicateIdentity
		}
		log.Err(err).Str("func", "authService.RegisterUser").Str("user_name", user.UserName).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	a.sendVerificationMail(ctx, registeredUser)

	return registeredUser, nil
}

func (a *authService) sendVerificationMail(ctx context.Context, user models.User) {
	log := logger.FromContext(ctx).With().
		Str("func", "authService.sendVerificationMail").
		Int64("user_id", user.UserID).
		Logger()

	token, err := utils.GenerateJWTToken(a.tokenIssuer, models.AudienceVerify, user.UserID, a.verifyTokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Msg("error issuing verification token")
		return
	}

	msg := mailer.VerificationMessage(a.mailFrom, user.UserName, a.verifyLinkBase, token.SignedString)
	if err = a.mailQueue.Enqueue(ctx, msg); err != nil {
		log.Warn().Err(err).Msg("verification mail was not queued")
		return
	}

	log.Debug().Msg("verification mail queued")
}

func (a *authService) VerifyUser(ctx context.Context, tokenString string) error {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, models.AudienceVerify)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.VerifyUser").Msg("rejected verification token")
		return ErrTokenIsExpiredOrInvalid
	}

	return a.Verify(ctx, token.UserID)
}

func (a *authService) Verify(ctx context.Context, userID int64) error {
	if err := a.userRepository.SetVerified(ctx, userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "authService.Verify").Int64("user_id", userID).Msg("error verifying user")
		return fmt.Errorf("error verifying user: %w", err)
	}

	return nil
}

// Login checks, in order: the user exists (ErrNotFound), the user is
// verified (ErrNotVerified), the password matches (ErrInvalidCredentials).
// On success it issues an access token.
func (a *authService) Login(ctx context.Context, credentials models.Credentials) (models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, credentials); err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	user, err := a.userRepository.FindUserByName(ctx, credentials.UserName)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.Token{}, ErrNotFound
		}
		log.Err(err).Str("func", "authService.Login").Msg("user search by name failed")
		return models.Token{}, fmt.Errorf("user search by name failed: %w", err)
	}

	if !user.IsVerified {
		return models.Token{}, ErrNotVerified
	}

	if err = utils.CheckPassword(user.PasswordHash, credentials.Password); err != nil {
		log.Debug().Str("func", "authService.Login").Int64("user_id", user.UserID).Msg("wrong password")
		return models.Token{}, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWTToken(a.tokenIssuer, models.AudienceAccess, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Msg("error issuing access token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken accepts access tokens only; every validation failure is
// reported as ErrTokenIsExpiredOrInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, models.AudienceAccess)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

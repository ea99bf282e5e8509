// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-disk-next/internal/config"
	"github.com/MKhiriev/go-disk-next/internal/logger"
	"github.com/MKhiriev/go-disk-next/internal/utils"
	"github.com/MKhiriev/go-disk-next/models"
)

// reCaptchaVerifier checks responses against the reCAPTCHA siteverify API.
type reCaptchaVerifier struct {
	client    *utils.HTTPClient
	verifyURL string
	logger    *logger.Logger
}

type siteVerifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// NewCaptchaVerifier constructs a CaptchaVerifier posting to cfg.VerifyURL.
func NewCaptchaVerifier(cfg config.Captcha, logger *logger.Logger) CaptchaVerifier {
	return &reCaptchaVerifier{
		client:    utils.NewHTTPClient(cfg.Timeout),
		verifyURL: cfg.VerifyURL,
		logger:    logger,
	}
}

// Verify posts secret and token as a form. An empty token is never valid.
func (v *reCaptchaVerifier) Verify(ctx context.Context, token, secret string) (bool, error) {
	if token == "" {
		return false, nil
	}

	var result siteVerifyResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"secret":   secret,
			"response": token,
		}).
		SetResult(&result).
		Post(v.verifyURL)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrCaptchaUnavailable, err)
	}
	if resp.IsError() {
		return false, fmt.Errorf("%w: status %d", ErrCaptchaUnavailable, resp.StatusCode())
	}

	if !result.Success {
		logger.FromContext(ctx).Debug().Strs("error_codes", result.ErrorCodes).Msg("captcha rejected")
	}
	return result.Success, nil
}

// checkCaptcha enforces the captcha when the flag setting is on.
func checkCaptcha(ctx context.Context, settings SettingService, verifier CaptchaVerifier, flag models.SettingKey, token string) error {
	if !settings.Bool(ctx, flag) {
		return nil
	}

	secret, err := settings.Get(ctx, SettingReCaptchaSecret)
	if err != nil {
		return fmt.Errorf("error reading captcha secret: %w", err)
	}

	ok, err := verifier.Verify(ctx, token, secret)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("captcha verification failed")
		return err
	}
	if !ok {
		return ErrCaptchaFailed
	}
	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "github.com/MKhiriev/go-disk-next/models"

// Setting categories referenced by code.
const (
	SettingTypeAuth    = "auth"
	SettingTypeVersion = "version"

	installedMarker = "installed"
)

// Well-known settings.
var (
	SettingSecretKey       = models.SettingKey{Type: SettingTypeAuth, Name: "secret_key"}
	SettingSiteName        = models.SettingKey{Type: "basic", Name: "siteName"}
	SettingThemes          = models.SettingKey{Type: "basic", Name: "themes"}
	SettingDefaultTheme    = models.SettingKey{Type: "basic", Name: "defaultTheme"}
	SettingRegisterEnabled = models.SettingKey{Type: "register", Name: "register_enabled"}
	SettingDefaultGroup    = models.SettingKey{Type: "register", Name: "default_group"}
	SettingEmailActive     = models.SettingKey{Type: "register", Name: "email_active"}
	SettingLoginCaptcha    = models.SettingKey{Type: "login", Name: "login_captcha"}
	SettingRegCaptcha      = models.SettingKey{Type: "login", Name: "reg_captcha"}
	SettingForgetCaptcha   = models.SettingKey{Type: "login", Name: "forget_captcha"}
	SettingHomeViewMethod  = models.SettingKey{Type: "view", Name: "home_view_method"}
	SettingShareViewMethod = models.SettingKey{Type: "view", Name: "share_view_method"}
	SettingAuthnEnabled    = models.SettingKey{Type: "authn", Name: "authn_enabled"}
	SettingReCaptchaKey    = models.SettingKey{Type: "captcha", Name: "captcha_ReCaptchaKey"}
	SettingReCaptchaSecret = models.SettingKey{Type: "captcha", Name: "captcha_ReCaptchaSecret"}
)

// VersionSentinel returns the key of the row marking that the default
// catalog of version has been installed.
func VersionSentinel(version string) models.SettingKey {
	return models.SettingKey{Type: SettingTypeVersion, Name: "db_version_" + version}
}

// Theme is the colour palette stored as JSON under basic/themes.
type Theme struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Dark      string `json:"dark"`
	DarkPage  string `json:"dark_page"`
	Positive  string `json:"positive"`
	Negative  string `json:"negative"`
	Info      string `json:"info"`
	Warning   string `json:"warning"`
}

func defaultTheme() Theme {
	return Theme{
		Primary:   "#3f51b5",
		Secondary: "#f50057",
		Accent:    "#9c27b0",
		Dark:      "#1d1d1d",
		DarkPage:  "#121212",
		Positive:  "#21ba45",
		Negative:  "#c10015",
		Info:      "#31ccec",
		Warning:   "#f2c037",
	}
}

type defaultSetting struct {
	key   models.SettingKey
	value any
}

func setting(settingType, name string, value any) defaultSetting {
	return defaultSetting{key: models.SettingKey{Type: settingType, Name: name}, value: value}
}

const mailActivationTemplate = `<!DOCTYPE html><html><head><meta charset="UTF-8"/><title>Activate your account</title></head>` +
	`<body style="font-family:Helvetica,Arial,sans-serif;background:#f6f6f6;margin:0">` +
	`<div style="max-width:600px;margin:0 auto;padding:20px;background:#fff">` +
	`<h2 style="background:#009688;color:#fff;padding:20px;text-align:center">Activate your {siteTitle} account</h2>` +
	`<p>Dear <strong>{userName}</strong>,</p><p>Thank you for registering at {siteTitle}. Click the button below to activate your account.</p>` +
	`<p><a href="{activationUrl}" style="background:#009688;color:#fff;padding:10px 20px;text-decoration:none;border-radius:5px">Activate</a></p>` +
	`<p style="color:#999;font-size:12px;text-align:center">This message was sent automatically, please do not reply.</p>` +
	`</div></body></html>`

const mailResetPasswordTemplate = `<!DOCTYPE html><html><head><meta charset="UTF-8"/><title>Reset your password</title></head>` +
	`<body style="font-family:Helvetica,Arial,sans-serif;background:#f6f6f6;margin:0">` +
	`<div style="max-width:600px;margin:0 auto;padding:20px;background:#fff">` +
	`<h2 style="background:#2196F3;color:#fff;padding:20px;text-align:center">Reset your {siteTitle} password</h2>` +
	`<p>Dear <strong>{userName}</strong>,</p><p>Click the button below to reset your password. Ignore this message if you did not request it.</p>` +
	`<p><a href="{resetUrl}" style="background:#2196F3;color:#fff;padding:10px 20px;text-decoration:none;border-radius:5px">Reset password</a></p>` +
	`<p style="color:#999;font-size:12px;text-align:center">This message was sent automatically, please do not reply.</p>` +
	`</div></body></html>`

// defaultSettings is the catalog seeded on first boot. The signing secret
// is generated at seeding time and is not part of it.
func defaultSettings() []defaultSetting {
	return []defaultSetting{
		setting("basic", "siteURL", "http://localhost"),
		setting("basic", "siteName", "DiskNext"),
		setting("basic", "siteKeywords", "disk,cloud"),
		setting("basic", "siteDes", "DiskNext"),
		setting("basic", "siteTitle", "DiskNext"),
		setting("basic", "defaultTheme", "#3f51b5"),
		setting("basic", "themes", defaultTheme()),

		setting("register", "register_enabled", "1"),
		setting("register", "default_group", models.MemberGroupID),
		setting("register", "email_active", "0"),

		setting("mail", "fromName", "DiskNext"),
		setting("mail", "mail_keepalive", 30),
		setting("mail", "fromAdress", "no-reply@yxqi.cn"),
		setting("mail", "smtpHost", "smtp.yxqi.cn"),
		setting("mail", "smtpPort", 25),
		setting("mail", "replyTo", "feedback@yxqi.cn"),
		setting("mail", "smtpUser", "no-reply@yxqi.cn"),
		setting("mail", "smtpPass", ""),
		setting("mail_template", "mail_activation_template", mailActivationTemplate),
		setting("mail_template", "mail_reset_pwd_template", mailResetPasswordTemplate),

		setting("file_edit", "maxEditSize", 4194304),

		setting("timeout", "archive_timeout", 60),
		setting("timeout", "download_timeout", 60),
		setting("timeout", "preview_timeout", 60),
		setting("timeout", "doc_preview_timeout", 60),
		setting("timeout", "upload_credential_timeout", 1800),
		setting("timeout", "upload_session_timeout", 86400),
		setting("timeout", "slave_api_timeout", 60),
		setting("timeout", "onedrive_monitor_timeout", 600),
		setting("timeout", "share_download_session_timeout", 2073600),
		setting("timeout", "onedrive_callback_check", 20),
		setting("timeout", "aria2_call_timeout", 5),
		setting("timeout", "onedrive_source_timeout", 1800),
		setting("retry", "onedrive_chunk_retries", 1),
		setting("upload", "reset_after_upload_failed", "0"),

		setting("login", "login_captcha", "0"),
		setting("login", "reg_captcha", "0"),
		setting("login", "forget_captcha", "0"),

		setting("share", "hot_share_num", 10),
		setting("avatar", "gravatar_server", "https://www.gravatar.com/"),
		setting("avatar", "avatar_size", 2097152),
		setting("avatar", "avatar_size_l", 200),
		setting("avatar", "avatar_size_m", 130),
		setting("avatar", "avatar_size_s", 50),

		setting("aria2", "aria2_token", ""),
		setting("aria2", "aria2_rpcurl", ""),
		setting("aria2", "aria2_temp_path", ""),
		setting("aria2", "aria2_options", map[string]any{}),
		setting("aria2", "aria2_interval", 60),

		setting("task", "max_worker_num", 10),
		setting("task", "max_parallel_transfer", 4),

		setting("path", "temp_path", "temp"),
		setting("path", "avatar_path", "avatar"),

		setting("view", "home_view_method", "icon"),
		setting("view", "share_view_method", "list"),
		setting("cron", "cron_garbage_collect", "@hourly"),
		setting("authn", "authn_enabled", "0"),

		setting("captcha", "captcha_height", 60),
		setting("captcha", "captcha_width", 240),
		setting("captcha", "captcha_mode", 3),
		setting("captcha", "captcha_ComplexOfNoiseText", 0),
		setting("captcha", "captcha_ComplexOfNoiseDot", 0),
		setting("captcha", "captcha_IsShowHollowLine", "0"),
		setting("captcha", "captcha_IsShowNoiseDot", "1"),
		setting("captcha", "captcha_IsShowNoiseText", "0"),
		setting("captcha", "captcha_IsShowSlimeLine", "1"),
		setting("captcha", "captcha_IsShowSineLine", "0"),
		setting("captcha", "captcha_CaptchaLen", 6),
		setting("captcha", "captcha_IsUseReCaptcha", "0"),
		setting("captcha", "captcha_ReCaptchaKey", "defaultKey"),
		setting("captcha", "captcha_ReCaptchaSecret", "defaultSecret"),

		setting("thumb", "thumb_width", 400),
		setting("thumb", "thumb_height", 300),

		setting("pwa", "pwa_small_icon", "/static/img/favicon.ico"),
		setting("pwa", "pwa_medium_icon", "/static/img/logo192.png"),
		setting("pwa", "pwa_large_icon", "/static/img/logo512.png"),
		setting("pwa", "pwa_display", "standalone"),
		setting("pwa", "pwa_theme_color", "#000000"),
		setting("pwa", "pwa_background_color", "#ffffff"),
	}
}

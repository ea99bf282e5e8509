package models

// ErrorResponse is written for every failed request. Code is a short
// machine-checkable identifier, Detail is human-readable.
type ErrorResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

// ListResponse wraps a paginated collection.
type ListResponse[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// PingResponse is returned by GET /api/site/ping.
type PingResponse struct {
	Version string `json:"version"`
}

// SiteConfig is the public site configuration returned by GET /api/site/config.
type SiteConfig struct {
	Title           string `json:"title"`
	LoginCaptcha    bool   `json:"loginCaptcha"`
	RegCaptcha      bool   `json:"regCaptcha"`
	ForgetCaptcha   bool   `json:"forgetCaptcha"`
	EmailActive     bool   `json:"emailActive"`
	RegisterEnabled bool   `json:"registerEnabled"`
	Themes          string `json:"themes"`
	DefaultTheme    string `json:"defaultTheme"`
	HomeViewMethod  string `json:"home_view_method"`
	ShareViewMethod string `json:"share_view_method"`
	Authn           bool   `json:"authn"`
	ReCaptchaKey    string `json:"captcha_ReCaptchaKey"`
}

package utils

import (
	ua "github.com/mssola/user_agent"
)

// ClientInfo holds parsed information from a User-Agent string, attached to
// request logs to distinguish browser traffic from service clients.
type ClientInfo struct {
	Browser  string `json:"browser"`
	OS       string `json:"os"`
	IsBot    bool   `json:"is_bot"`
	IsMobile bool   `json:"is_mobile"`
	Raw      string `json:"raw"`
}

// ParseUserAgent parses a User-Agent string and extracts client information
func ParseUserAgent(userAgent string) ClientInfo {
	if userAgent == "" {
		return ClientInfo{Browser: "unknown", OS: "unknown", Raw: userAgent}
	}

	parser := ua.New(userAgent)
	browser, version := parser.Browser()
	if version != "" {
		browser = browser + "/" + version
	}
	if browser == "" {
		browser = "unknown"
	}
	os := parser.OS()
	if os == "" {
		os = "unknown"
	}

	return ClientInfo{
		Browser:  browser,
		OS:       os,
		IsBot:    parser.Bot(),
		IsMobile: parser.Mobile(),
		Raw:      userAgent,
	}
}

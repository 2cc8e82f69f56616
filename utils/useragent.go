package utils

import (
	"strings"

	ua "github.com/mileusna/useragent"
)

type ClientInfo struct {
	Browser string
	OS      string
	Device  string
}

// ParseUserAgent reduces a User-Agent header to the fields the request log keeps.
func ParseUserAgent(userAgent string) ClientInfo {
	if userAgent == "" {
		return ClientInfo{Browser: "Unknown Browser", OS: "Unknown OS", Device: "Desktop"}
	}

	parsed := ua.Parse(userAgent)
	info := ClientInfo{
		Browser: strings.TrimSpace(parsed.Name),
		OS:      strings.TrimSpace(parsed.OS),
		Device:  "Desktop",
	}
	if info.Browser == "" {
		info.Browser = "Unknown Browser"
	}
	if info.OS == "" {
		info.OS = "Unknown OS"
	}

	switch {
	case parsed.Bot:
		info.Device = "Bot"
	case parsed.Tablet:
		info.Device = "Tablet"
	case parsed.Mobile:
		info.Device = "Mobile"
	}
	return info
}

package utils

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"

	"github.com/google/uuid"
)

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}

func BuildPaginationRequest(r *http.Request) *requests.Pagination {
	pageStr := r.URL.Query().Get("page")
	pageSizeStr := r.URL.Query().Get("page_size")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page <= 0 {
		page = 1
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize <= 0 {
		pageSize = 10
	}

	return &requests.Pagination{
		Page:     page,
		PageSize: pageSize,
	}
}

// ExtractBearerToken returns the raw token from the Authorization header or
// an empty string when the header is missing or malformed.
func ExtractBearerToken(r *http.Request) string {
	header := r.Header.Get(constvars.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ExtractClientIP prefers the first X-Forwarded-For hop, then falls back to
// the connection's remote address.
func ExtractClientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constvars.HeaderXForwardedFor); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ExtractUserAgent truncates to the length stored on consent records.
func ExtractUserAgent(r *http.Request) string {
	userAgent := r.UserAgent()
	if len(userAgent) > constvars.ConsentUserAgentMaxLength {
		userAgent = userAgent[:constvars.ConsentUserAgentMaxLength]
	}
	return userAgent
}

// RefreshTokenFromRequest prefers the body credential and falls back to the
// carelink_refresh cookie.
func RefreshTokenFromRequest(r *http.Request, bodyToken string) string {
	if bodyToken != "" {
		return bodyToken
	}
	cookie, err := r.Cookie(constvars.RefreshCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func ParseUintQueryParam(r *http.Request, name string) *uint {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	parsed := uint(value)
	return &parsed
}

func ParseUintPathParam(raw string) (uint, error) {
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

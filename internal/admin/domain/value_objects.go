package domain

import (
	"fmt"
	"strings"
)

// CompanyDomain はメールアドレスのドメイン部で会社を一意に識別する値。
// 先頭の @ を付けた小文字表記へ正規化する(例: "@nearsoft.com")。
type CompanyDomain string

func NewCompanyDomain(value string) (CompanyDomain, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return "", fmt.Errorf("company domain is required")
	}
	if !strings.HasPrefix(trimmed, "@") {
		trimmed = "@" + trimmed
	}
	if !strings.Contains(trimmed[1:], ".") || strings.ContainsAny(trimmed[1:], "@ ") {
		return "", fmt.Errorf("invalid company domain: %s", value)
	}
	return CompanyDomain(trimmed), nil
}

func (d CompanyDomain) String() string {
	return string(d)
}

// CompanyName is a non-empty display name.
type CompanyName string

func NewCompanyName(value string) (CompanyName, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("company name is required")
	}
	return CompanyName(trimmed), nil
}

func (n CompanyName) String() string {
	return string(n)
}

package entity

import (
	"errors"
	"strings"
)

var (
	ErrProductNameRequired  = errors.New("product name is required")
	ErrProductNicheRequired = errors.New("product niche is required")
)

// AffiliateProduct is the single product the dashboard promotes.
type AffiliateProduct struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	Link             string `json:"link"`
	Niche            string `json:"niche"`
	Keywords         string `json:"keywords,omitempty"`
	NegativeKeywords string `json:"negative_keywords,omitempty"`
}

// ReadyToScan reports whether the product carries enough to source leads.
func (p AffiliateProduct) ReadyToScan() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrProductNameRequired
	}
	if strings.TrimSpace(p.Niche) == "" {
		return ErrProductNicheRequired
	}
	return nil
}

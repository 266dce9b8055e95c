// Package imageref builds the opaque display references stored on products.
package imageref

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// Provider returns a display reference for a category label
type Provider interface {
	ImageFor(category string) string
	HeroImage() string
}

const (
	DefaultWidth  = 400
	DefaultHeight = 500

	heroWidth  = 1400
	heroHeight = 600
)

// UnsplashProvider points at source.unsplash.com search images. The sig
// parameter is derived from the category and the call sequence so every
// product gets a distinct but reproducible picture.
type UnsplashProvider struct {
	BaseURL string
	Prefix  string
	Width   int
	Height  int

	calls atomic.Uint64
}

// NewUnsplashProvider creates a provider with the storefront defaults
func NewUnsplashProvider(width, height int) *UnsplashProvider {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &UnsplashProvider{
		BaseURL: "https://source.unsplash.com",
		Prefix:  "ralph lauren",
		Width:   width,
		Height:  height,
	}
}

func (p *UnsplashProvider) ImageFor(category string) string {
	n := p.calls.Add(1)
	query := strings.TrimSpace(p.Prefix + " " + strings.ToLower(category))
	return p.build(p.Width, p.Height, query, signature(query, n, 1000, 9000))
}

func (p *UnsplashProvider) HeroImage() string {
	query := "luxury fashion store"
	return p.build(heroWidth, heroHeight, query, signature(query, 0, 10000, 90000))
}

func (p *UnsplashProvider) build(width, height int, query string, sig uint64) string {
	return fmt.Sprintf("%s/%dx%d/?%s&sig=%d",
		p.BaseURL, width, height, strings.ReplaceAll(query, " ", "+"), sig)
}

// signature maps (query, n) into [floor, floor+span)
func signature(query string, n uint64, floor, span uint64) uint64 {
	h := xxhash.Sum64String(query + "#" + strconv.FormatUint(n, 10))
	return floor + h%span
}

package proxy

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tair/storefront/api-gateway/config"
	"github.com/tair/storefront/pkg/logger"
)

// hopHeaders are not forwarded upstream. Accept-Encoding is dropped so the
// storefront answers uncompressed and the gateway owns compression.
var hopHeaders = map[string]bool{
	"host":              true,
	"connection":        true,
	"keep-alive":        true,
	"transfer-encoding": true,
	"upgrade":           true,
	"accept-encoding":   true,
}

// ReverseProxy forwards requests to the storefront service
type ReverseProxy struct {
	upstream config.ServiceConfig
	client   *http.Client
}

// NewReverseProxy creates a new reverse proxy
func NewReverseProxy(upstream config.ServiceConfig) *ReverseProxy {
	return &ReverseProxy{
		upstream: upstream,
		client: &http.Client{
			Timeout: upstream.Timeout,
			// Form posts answer 303; the browser has to see the redirect
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// ProxyRequest forwards the request to the storefront
func (p *ReverseProxy) ProxyRequest(c *fiber.Ctx) error {
	targetURL := p.buildTargetURL(c)

	req, err := http.NewRequestWithContext(c.UserContext(), c.Method(), targetURL, bytes.NewReader(c.Body()))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create request",
		})
	}

	p.copyHeaders(c, req)

	resp, err := p.client.Do(req)
	if err != nil {
		logger.Error(c.UserContext()).
			Err(err).
			Str("service", p.upstream.Name).
			Str("target_url", targetURL).
			Msg("Upstream request failed")

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":   "Failed to reach backend service",
			"service": p.upstream.Name,
			"details": err.Error(),
		})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to read response",
		})
	}

	p.copyResponseHeaders(c, resp)
	c.Status(resp.StatusCode)
	return c.Send(body)
}

func (p *ReverseProxy) buildTargetURL(c *fiber.Ctx) string {
	target := strings.TrimSuffix(p.upstream.BaseURL, "/") + string(c.Request().URI().Path())
	if query := string(c.Request().URI().QueryString()); query != "" {
		target += "?" + query
	}
	return target
}

func (p *ReverseProxy) copyHeaders(c *fiber.Ctx, req *http.Request) {
	c.Request().Header.VisitAll(func(key, value []byte) {
		name := string(key)
		if hopHeaders[strings.ToLower(name)] {
			return
		}
		req.Header.Set(name, string(value))
	})

	req.Header.Set("X-Forwarded-For", c.IP())
	req.Header.Set("X-Forwarded-Proto", c.Protocol())
	req.Header.Set("X-Forwarded-Host", c.Hostname())
}

func (p *ReverseProxy) copyResponseHeaders(c *fiber.Ctx, resp *http.Response) {
	for key, values := range resp.Header {
		lower := strings.ToLower(key)
		if lower == "content-length" || hopHeaders[lower] {
			continue
		}
		for _, value := range values {
			c.Set(key, value)
		}
	}
}

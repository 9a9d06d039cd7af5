package plannersdk

import (
	"context"
	"net/http"
)

// GetLiveness reports whether the process is up.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return getFor[HealthResponse](ctx, c, "/livez", http.StatusOK)
}

// GetReadiness returns 503 as an *APIError when a dependency is down.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return getFor[HealthResponse](ctx, c, "/readyz", http.StatusOK)
}

func (c *Client) GetDatabaseHealth(ctx context.Context) (*DatabaseHealthResponse, error) {
	return getFor[DatabaseHealthResponse](ctx, c, "/api/health", http.StatusOK)
}

func (c *Client) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	return getFor[JWKSResponse](ctx, c, "/.well-known/jwks.json", http.StatusOK)
}

func getFor[T any](ctx context.Context, c *Client, path string, expected int) (*T, error) {
	return requestFor[T](ctx, c, http.MethodGet, path, nil, expected)
}

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoints(t *testing.T) {
	e := NewEndpoints("http://localhost:8000/")

	assert.Equal(t, "http://localhost:8000", e.Base())
	assert.Equal(t, "http://localhost:8000/search?q=hello%20world&limit=10", e.Search("hello world"))
	assert.Equal(t, "http://localhost:8000/proxy?url=https%3A%2F%2Fa.com%2Fx%3Fy%3D1%26z%3D2", e.Proxy("https://a.com/x?y=1&z=2"))
	assert.Equal(t, "http://localhost:8000/resource?url=https%3A%2F%2Fa.com%2Flogo.png", e.Resource("https://a.com/logo.png"))
	assert.Equal(t, "http://localhost:8000/session/reset", e.Reset())
}

func TestEndpointsRelativeBase(t *testing.T) {
	e := NewEndpoints("/api")
	assert.Equal(t, "/api/search?q=go&limit=10", e.Search("go"))
	assert.Equal(t, "/api/session/reset", e.Reset())
}

func TestEndpointsEncodeLikeEncodeURIComponent(t *testing.T) {
	e := NewEndpoints("http://h")
	assert.Equal(t, "http://h/search?q=it's%20(a)%20*star*!%20~x&limit=10", e.Search("it's (a) *star*! ~x"))
	assert.Equal(t, "http://h/search?q=a%2Bb%25211&limit=10", e.Search("a+b%211"))
	assert.Equal(t, "http://h/proxy?url=https%3A%2F%2Fa.com%2F~u%2F(x)", e.Proxy("https://a.com/~u/(x)"))
}

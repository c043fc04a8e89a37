//go:build integration

package selectielijst_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"zaakregister/internal/selectielijst"
	"zaakregister/pkg/testutil/containers"
)

const klasseURL = "https://selectielijst.example.nl/api/v1/resultaten/afgehandeld"

// countingClient records how often the origin is hit.
type countingClient struct {
	inner selectielijst.Client
	hits  int
}

func (c *countingClient) Resultaat(ctx context.Context, url string) (*selectielijst.Resultaat, error) {
	c.hits++
	return c.inner.Resultaat(ctx, url)
}

type CacheSuite struct {
	suite.Suite
	ctx    context.Context
	redis  *containers.RedisContainer
	origin *countingClient
	client *selectielijst.CachedClient
}

func (s *CacheSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *CacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
	s.origin = &countingClient{inner: &selectielijst.StaticClient{
		Resultaten: map[string]*selectielijst.Resultaat{
			klasseURL: {
				URL:           klasseURL,
				ProcesType:    "https://selectielijst.example.nl/api/v1/procestypen/aa1a",
				Procestermijn: selectielijst.ProcestermijnNihil,
			},
		},
	}}
	s.client = selectielijst.NewCachedClient(s.origin, s.redis.Client, time.Minute)
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheSuite))
}

func (s *CacheSuite) TestReadThrough() {
	first, err := s.client.Resultaat(s.ctx, klasseURL)
	s.Require().NoError(err)
	s.Equal(selectielijst.ProcestermijnNihil, first.Procestermijn)
	s.Equal(1, s.origin.hits)

	second, err := s.client.Resultaat(s.ctx, klasseURL)
	s.Require().NoError(err)
	s.Equal(first.URL, second.URL)
	s.Equal(1, s.origin.hits, "the second read is served from redis")
}

func (s *CacheSuite) TestCacheSharedBetweenClients() {
	_, err := s.client.Resultaat(s.ctx, klasseURL)
	s.Require().NoError(err)

	fresh := selectielijst.NewCachedClient(s.origin, s.redis.Client, time.Minute)
	_, err = fresh.Resultaat(s.ctx, klasseURL)
	s.Require().NoError(err)
	s.Equal(1, s.origin.hits, "a new client reuses the shared cache entry")
}

func (s *CacheSuite) TestOriginErrorsAreNotCached() {
	_, err := s.client.Resultaat(s.ctx, "https://selectielijst.example.nl/api/v1/resultaten/onbekend")
	s.Error(err)
	s.Equal(1, s.origin.hits)

	_, err = s.client.Resultaat(s.ctx, "https://selectielijst.example.nl/api/v1/resultaten/onbekend")
	s.Error(err)
	s.Equal(2, s.origin.hits, "failures go back to the origin")
}

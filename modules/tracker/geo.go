package tracker

import (
	"context"
	"net/netip"
	"time"

	geoip2 "github.com/oschwald/geoip2-golang/v2"
)

// GeoResolver maps an IP address to an approximate location. Resolution is
// best-effort: implementations return an unknown location on any failure and
// never make a tracking request fail.
type GeoResolver interface {
	Resolve(ctx context.Context, ip string) Location
}

// GeoResolverFunc adapts a function to the GeoResolver interface.
type GeoResolverFunc func(ctx context.Context, ip string) Location

func (f GeoResolverFunc) Resolve(ctx context.Context, ip string) Location {
	return f(ctx, ip)
}

// NewNoopGeoResolver returns a resolver that always reports an unknown
// location. Used when no geo database is configured.
func NewNoopGeoResolver() GeoResolver {
	return GeoResolverFunc(func(ctx context.Context, ip string) Location {
		return UnknownLocation()
	})
}

// MaxMindResolver resolves locations from a local MaxMind city database.
type MaxMindResolver struct {
	reader *geoip2.Reader
}

// NewMaxMindResolver opens the MaxMind database at the given path.
func NewMaxMindResolver(path string) (*MaxMindResolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, err
	}
	return &MaxMindResolver{reader: reader}, nil
}

// Resolve looks up the city record for the address. Unparseable addresses and
// lookup misses degrade to unknown.
func (r *MaxMindResolver) Resolve(ctx context.Context, ip string) Location {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return UnknownLocation()
	}

	record, err := r.reader.City(addr)
	if err != nil || record == nil {
		return UnknownLocation()
	}

	loc := record.Location
	if loc.Latitude == nil || loc.Longitude == nil {
		return UnknownLocation()
	}
	if *loc.Latitude == 0 && *loc.Longitude == 0 {
		// The database reports the null island for addresses it has no
		// coordinates for.
		return UnknownLocation()
	}

	return NewLocation(*loc.Latitude, *loc.Longitude)
}

// Close releases the underlying database reader.
func (r *MaxMindResolver) Close() error {
	return r.reader.Close()
}

// TimeoutGeoResolver bounds each lookup with a timeout. The lookup runs in
// its own goroutine so a slow or hung resolver cannot stall the tracking
// write path; on expiry the location degrades to unknown while the lookup is
// abandoned in the background.
type TimeoutGeoResolver struct {
	inner   GeoResolver
	timeout time.Duration
}

// WithGeoTimeout wraps a resolver with a per-lookup timeout.
func WithGeoTimeout(inner GeoResolver, timeout time.Duration) *TimeoutGeoResolver {
	return &TimeoutGeoResolver{inner: inner, timeout: timeout}
}

func (r *TimeoutGeoResolver) Resolve(ctx context.Context, ip string) Location {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	results := make(chan Location, 1)
	go func() {
		results <- r.inner.Resolve(ctx, ip)
	}()

	select {
	case loc := <-results:
		return loc
	case <-ctx.Done():
		return UnknownLocation()
	}
}

// Package mongo provides MongoDB connection management for the tracker.
//
// Configuration is environment-driven and connection establishment retries
// transient failures, so the service starts cleanly even when the database
// comes up slightly later than the application container.
package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Healthcheck returns a health check function suitable for readiness probes
// or HTTP health endpoints. The returned function performs a lightweight Ping
// to verify connectivity.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

package cli

import (
	"context"
	"log"
	"time"

	"pocdesk/internal/api"
	"pocdesk/internal/session"
)

// lookupTTL bounds how long a cached lookup list serves without a refetch.
// Lookup membership changes rarely; a stale list only costs one wasted select.
const lookupTTL = 12 * time.Hour

// cachedPeople serves a lookup list from the local cache, falling back to the
// backend and refreshing the cache on a miss. A failed cache write is not
// fatal; the fetched list is still returned.
func cachedPeople(ctx context.Context, app *App, kind string, fetch func(context.Context) ([]api.Person, error)) ([]api.Person, error) {
	people, ok, err := app.Sessions.CachedLookup(ctx, kind, lookupTTL)
	if err == nil && ok {
		return people, nil
	}
	if err != nil {
		log.Printf("lookup cache read failed for %s: %v", kind, err)
	}

	people, err = fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := app.Sessions.SaveLookup(ctx, kind, people); err != nil {
		log.Printf("lookup cache write failed for %s: %v", kind, err)
	}
	return people, nil
}

func cachedSalesPersons(ctx context.Context, app *App) ([]api.Person, error) {
	return cachedPeople(ctx, app, session.LookupSalesPersons, app.Backend.SalesPersons)
}

func cachedUsers(ctx context.Context, app *App) ([]api.Person, error) {
	return cachedPeople(ctx, app, session.LookupUsers, app.Backend.AssignableUsers)
}

func cachedApprovers(ctx context.Context, app *App) ([]api.Person, error) {
	return cachedPeople(ctx, app, session.LookupApprovers, app.Backend.Approvers)
}

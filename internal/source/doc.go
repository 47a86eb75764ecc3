// Package source fetches the league's published sheet exports over HTTP.
//
// A Fetcher issues one GET per dataset with a cache-busting query parameter
// and no-cache headers, paced by a rate limiter. Responses that are not 2xx
// come back as *StatusError; bodies that turn out to be HTML (a sign-in or
// error page) come back as *tabular.NotCSVError carrying the page title.
// FetchAll loads several datasets in parallel and fails as a whole if any
// one of them fails. Nothing is retried or cached.
package source

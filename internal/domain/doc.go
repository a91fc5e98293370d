// Package domain holds the portal's business rules: the solution-unlock gate,
// course progress, catalog filtering/sorting/pagination, CSV export, series
// title generation and document preview links. Everything here is pure and
// operates on records already loaded by the services.
package domain

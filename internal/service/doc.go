// Package service contains the application use cases. It orchestrates domain
// objects and the store interfaces (defined in internal/store) and owns the
// transactional boundaries of operations that touch several tables.
//
// Services receive their dependencies through constructor injection and
// never depend on a concrete store implementation. Expected failures are
// reported with sentinel errors from the domain and store packages, wrapped
// in *CardServiceError so the API layer can match them with errors.Is.
package service

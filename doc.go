// Package backend provides the Classhub API server.

// This module contains the school-management backend. The API documentation
// is organized into subpackages:

// - internal/handlers: HTTP request handlers for all API endpoints
// - internal/models: Data models and database schemas
// - internal/auth: Authentication and authorization services
// - internal/lessonplan: Lesson-plan submission resolution and duplicate checks
// - internal/database: Database connection and migrations
// - internal/cache: Redis connection for the response cache
// - internal/middleware: HTTP middleware (logging, metrics, response cache)
// - internal/notify: WebSocket hub for real-time announcements
// - internal/export: CSV and ICS downloads
// - internal/stats: Exam mark summaries
// - internal/seed: Database seeding

// See the individual package documentation for detailed API reference.
package backend

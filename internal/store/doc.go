// Package store provides the persistence implementations behind the
// auth.UserStore and posts.Store collaborator interfaces: Postgres for
// deployments and Memory for tests and local development.
package store

// Package models defines server-side data models persisted in the database
// and the views of them rendered to API clients.
package models

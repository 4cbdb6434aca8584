// Package main provides the entry point for the emailcapture service.
// It runs a fiber web server exposing a JSON API to read and update a
// single settings document and to collect unique subscriber emails.
// Data is persisted with gorm on SQLite, MySQL or PostgreSQL.
package main

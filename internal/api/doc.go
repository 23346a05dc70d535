// Package api contains the HTTP layer: handlers for auth, collection
// import, and deck operations, plus central error-to-status mapping that
// keeps internal details out of client responses. Handlers validate input,
// call services, and format responses; business rules live below.
package api

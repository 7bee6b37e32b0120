// Package api defines the request and response messages of the expenseflow RPC
// services. Messages are plain structs encoded as JSON; see package apiconnect for
// the handlers, clients and codec that carry them over connect.
package api

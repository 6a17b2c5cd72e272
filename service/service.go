// Package service maps domain operations onto the document store. Queries
// use equality filters only; every ordering happens in memory after the
// fetch, so no composite indexes are required.
package service

const Database = "workflowpro"

// Package service adapts database rows into the records returned by the
// HTTP API. Each service delegates 1:1 to its controller and adds no
// business rules.
package service

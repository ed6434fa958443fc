// Package driving provides interfaces for external actors (primary/inbound ports).
package driving

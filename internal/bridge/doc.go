// Package bridge exposes named commands to a host shell. Each command takes
// a JSON argument object and returns a JSON-encodable result; the host owns
// transport and lifecycle and only ever calls Invoke.
package bridge

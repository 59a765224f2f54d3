//go:build !yamlevent_bytestring

package yamlevent

// The default host string model: scalar bytes decode to UTF-8 text.
const activeModel = textModel

//go:build yamlevent_bytestring

package yamlevent

// The legacy host string model: scalar bytes pass through unchanged,
// with no UTF-8 validation in either direction.
const activeModel = bytestringModel

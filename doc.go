// Package yamlevent bridges the event streams of low-level YAML
// engines to host-native event records.
//
// A Decoder pulls engine events one at a time and converts each into a
// host Event, copying scalar, anchor and tag bytes out of engine-owned
// token storage. An Encoder does the inverse, turning host Events back
// into engine events and pushing them to an emitter.
//
// # Example: Decoding
//
//	dec := yamlevent.NewDecoder(yaml3.NewParser(r))
//	defer dec.Close()
//	for {
//	    ev, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    // ev.Type is StreamStart, Scalar, MappingStart, ...
//	}
//
// # Example: Encoding
//
//	enc := yamlevent.NewEncoder(yaml3.NewEmitter(w))
//	enc.Emit(&yamlevent.Event{Type: yamlevent.StreamStart})
//	// ... one Emit per event ...
//	err := enc.Close()
//
// Scalar content crosses the boundary as Str values. Under the default
// host string model a Str is UTF-8 text and invalid byte sequences are
// rejected with an EncodingError; building with the yamlevent_bytestring
// tag selects the legacy model in which bytes pass through unchanged.
//
// The package does not interpret YAML semantics: grammar, tag
// resolution and quoting belong to the engines underneath, and
// anything above the event stream (building native collections)
// belongs to the caller.
package yamlevent

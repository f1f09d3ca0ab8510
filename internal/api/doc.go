// Package api defines the Connect RPC surface of the Splitpot server.
//
// Request and response types are plain Go structs serialized with a
// JSON codec instead of generated protobuf bindings, so there is no
// code generation step. The handler and client constructors mirror the
// shape connect code generation would produce (procedure constants,
// per-service handler interfaces, typed clients); a later move to
// .proto files would not change call sites.
package api

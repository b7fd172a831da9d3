// Package errors provides the coded errors used across skilltree-api.
//
// Every layer returns *Error values so callers can branch on a Code instead
// of matching strings:
//
//	skill, err := cat.Get(id)
//	if errors.IsNotFound(err) {
//	    return nil, errors.NotFoundf("skill %s is not in the catalog", id)
//	}
//
// Metadata rides along with the error and survives wrapping:
//
//	return errors.Aborted("session changed concurrently").
//	    WithMeta("session_id", id).
//	    WithMeta("attempts", attempts)
//
// Catalog and config validation collect field problems with a
// ValidationBuilder and fail with a single InvalidArgument error whose
// "validation_errors" metadata lists every field.
//
// Layer guidelines:
//   - repositories return NotFound / Aborted and wrap Redis failures (Internal)
//   - orchestrators validate input (InvalidArgument) and wrap repository errors
//     with business context
//   - handlers convert with ToGRPCError; metadata is attached to the status as
//     a google.protobuf.Struct detail and read back by FromGRPCError
package errors

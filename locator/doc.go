// Package locator finds the single operation a caller is asking for inside an
// OpenAPI document.
//
// A target is a literal path ("/users/{id}" or "/users/42"), an operationId,
// or both, optionally restricted to one HTTP method. Resolution runs three
// tiers and stops at the first that matches:
//
//  1. Exact path: the target path is a key of the paths object. The method
//     defaults to GET.
//  2. Operation id: the first operation, scanning paths in declaration order
//     and methods in get, post, put, patch, delete order, whose operationId
//     equals the target (a leading slash on the target path is ignored).
//  3. Pattern: the target path is tested against each path template in
//     declaration order. Each template is tried with a single method: the
//     requested one, or the first of get, post, delete, patch, put it defines.
//
// When no tier matches, Locate returns an *oaserrors.OperationNotFoundError
// listing every operationId and path template so callers can print a
// diagnostic.
package locator

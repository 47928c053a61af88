package query

import "errors"

// ErrSchemaShape is the SchemaShape error kind from spec.md §7: a Mul
// schema node whose both children contain a commitment, which is a
// programmer error in verifier assembly.
var ErrSchemaShape = errors.New("query: schema shape violation")

package transcript

import "github.com/halo2agg/verifier-dag/curve"

// Adapter is the transcript-domain capability surface the §4.6 DAG
// evaluator drives: read_scalar, read_point, common_scalar, common_point,
// squeeze -> scalar. The native back-end (Native, this package) implements
// it (spec.md §4.7); the in-circuit back-end (evaluate/circuitdomain) does
// not, and takes transcript outputs as TranscriptWitness values instead.
type Adapter interface {
	ReadScalar() (curve.Scalar, error)
	ReadPoint() (curve.Point, error)
	CommonScalar(s curve.Scalar) error
	CommonPoint(p curve.Point) error
	Squeeze() curve.Scalar
}

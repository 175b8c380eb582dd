// SPDX-License-Identifier: Apache-2.0
package ast

import "sync/atomic"

// NodeID uniquely identifies a term node for debugging and tracing it
// through the compilation pipeline; it has no bearing on equality.
type NodeID uint64

var nodeSeq uint64

func nextNodeID() NodeID {
	return NodeID(atomic.AddUint64(&nodeSeq, 1))
}

// Metadata carries provenance information that is useful for debugging a
// compilation but never participates in structural or canonical equality.
type Metadata struct {
	ID     NodeID
	Pos    Position
	EndPos Position

	// Stage names the pipeline step that produced this node, e.g.
	// "differentiate", "simplify", "extract". Empty for parser output.
	Stage string
}

func newMetadata(pos, end Position) *Metadata {
	return &Metadata{ID: nextNodeID(), Pos: pos, EndPos: end}
}

// Package datatype implements the DataType algebra (C3): a closed, tagged
// variant representing every type the generator can emit, plus the five
// operations the algebra is closed under -- Unify, Intersect, Optionalize,
// Constrain, and Widen.
//
// Each variant is a concrete struct implementing the unexported [DataType]
// marker method, making the set of variants closed: no type outside this
// package can implement it. Callers switch on the concrete type in a type
// switch; the compiler does not check such a switch for exhaustiveness.
package datatype

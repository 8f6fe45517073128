// Package partition implements the module partitioner (C8): it assigns
// every [model.DataModel] to an output module path, computes each
// module's required import set, and builds its export list per the
// configured [AllExportsScope]/[AllExportsCollisionStrategy].
package partition

// Package dag provides a small directed graph with cycle detection. The
// static validators use it to prove, once at construction time, that the
// compiled data-dependency graph is acyclic, and to report the offending path
// when it is not.
package dag

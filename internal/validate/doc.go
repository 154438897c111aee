// Package validate holds the static checks that run once while a core is
// constructed, before any state variable is resolved.
//
// Components checks that every name the tree refers to exists and every type
// is in the catalogue. CopyCycles walks copy-source chains. CopySources checks
// that each copy source makes sense for the copy (no ancestors, matching
// types, indexing only arrays) and collects the non-fatal index warnings.
// DependencyCycles proves the compiled data-dependency graph acyclic.
//
// Every check returns a *docerr.Error; any error aborts construction.
package validate

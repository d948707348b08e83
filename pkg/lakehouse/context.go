package lakehouse

// ContextResolver supplies the identity of the notebook session's default
// workspace and lakehouse. The hosted platform owns the implementation; this
// package only consumes it.
type ContextResolver interface {
	CurrentWorkspaceName() (string, error)
	CurrentLakehouseName() (string, error)
}

// ResolveCurrentPaths resolves the source and target paths for the session's
// current workspace and lakehouse under the given transformation context.
func (r *Resolver) ResolveCurrentPaths(cr ContextResolver, mappingContext string) (Paths, error) {
	ws, err := cr.CurrentWorkspaceName()
	if err != nil {
		return Paths{}, err
	}
	lh, err := cr.CurrentLakehouseName()
	if err != nil {
		return Paths{}, err
	}
	return r.ResolvePaths(ws, lh, mappingContext)
}

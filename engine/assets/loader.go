package assets

// ResourceType classifies an asset by the folder it lives in.
type ResourceType int

const (
	ResourceTypeNone ResourceType = iota
	ResourceTypeTexture
	ResourceTypeScript
)

// Loader turns one file into a stored resource. `interface{}` here allows
// loaders to return various asset types.
type Loader interface {
	Load(path string) (interface{}, error)
}

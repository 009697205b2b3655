// Package cache provides a small LRU cache for decoded render assets.
//
// Scenes often reference the same mesh or texture from several objects.
// Cache loads each key once and evicts the least recently used entry when
// the limit is exceeded:
//
//	textures := cache.New[string, *softgpu.Texture](32)
//	tex, err := textures.Load(path, func() (*softgpu.Texture, error) {
//	    return softgpu.LoadTexture(path, true)
//	})
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

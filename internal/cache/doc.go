// Package cache provides a generic least-recently-used cache.
//
// LRU keeps at most a fixed number of entries. Inserting into a full cache
// evicts the least recently used entry and passes it to the eviction
// callback, which lets owners of GPU objects release them.
//
//	c := cache.NewLRU[Key, *Pipeline](64, func(k Key, p *Pipeline) {
//	    p.Destroy()
//	})
//	p, err := c.GetOrCreate(key, func() (*Pipeline, error) {
//	    return build(key)
//	})
//
// # Thread Safety
//
// LRU is safe for concurrent use. It must not be copied after creation
// (it contains a mutex). The eviction callback runs with the cache lock
// held and must not call back into the cache.
package cache

package hdf5

import (
	"path"
)

// WalkFunc is called for each object during traversal.
// path is the full path to the object.
// obj is either *Group or *Dataset.
// err is any error encountered opening the object.
// Return nil to continue walking, or an error to stop.
type WalkFunc func(path string, obj interface{}, err error) error

// Walk traverses all objects (groups and datasets) in the hierarchy starting
// from g, parents before children. The callback is called for each group and
// dataset, including the starting group.
//
// Example:
//
//	Walk(root, func(path string, obj interface{}, err error) error {
//	    if err != nil {
//	        return nil // skip what cannot be opened
//	    }
//	    if ds, ok := obj.(*Dataset); ok {
//	        fmt.Println(path, ds.Shape())
//	    }
//	    return nil
//	})
func Walk(g *Group, fn WalkFunc) error {
	if err := fn(g.Path(), g, nil); err != nil {
		return err
	}

	members, err := g.Members()
	if err != nil {
		return err
	}

	for _, name := range members {
		childPath := path.Join(g.Path(), name)

		obj, err := g.open(name)
		if err != nil {
			if err := fn(childPath, nil, err); err != nil {
				return err
			}
			continue
		}

		switch o := obj.(type) {
		case *Group:
			if err := Walk(o, fn); err != nil {
				return err
			}
		default:
			if err := fn(childPath, o, nil); err != nil {
				return err
			}
		}
	}

	return nil
}

package hdf5

import (
	"fmt"
	"strings"
)

// ParseAttrPath parses an attribute path into object path and attribute name.
// Path format: /group/subgroup/object@attribute_name
//
// Examples:
//   - "/@creator" -> objectPath="/", attrName="creator"
//   - "/entry1@NX_class" -> objectPath="/entry1", attrName="NX_class"
//   - "entry1/Counter0/energy@units" -> objectPath="/entry1/Counter0/energy", attrName="units"
func ParseAttrPath(path string) (objectPath, attrName string, err error) {
	atIdx := strings.LastIndex(path, "@")
	if atIdx == -1 {
		return "", "", fmt.Errorf("%w: no '@' in attribute path %q", ErrInvalidPath, path)
	}

	objectPath = strings.Trim(path[:atIdx], "/")
	attrName = path[atIdx+1:]
	if attrName == "" {
		return "", "", fmt.Errorf("%w: empty attribute name in %q", ErrInvalidPath, path)
	}
	return "/" + objectPath, attrName, nil
}

// IsAttrPath reports whether path names an attribute (object@name).
func IsAttrPath(path string) bool {
	return strings.Contains(path, "@")
}

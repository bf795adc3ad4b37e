// Package sink writes transformed archive entries either as files under a
// directory or as entries of a new zip archive.
package sink

import (
	"github.com/m-mizutani/l10nsync/pkg/domain/interfaces"
)

// New returns an Extract sink rooted at path when extract is true, and a
// Repackage sink writing the zip file at path otherwise.
func New(path string, extract bool) (interfaces.EntrySink, error) {
	if extract {
		return NewExtract(path), nil
	}
	repackage, err := NewRepackage(path)
	if err != nil {
		return nil, err
	}
	return repackage, nil
}

package comm

import (
	"fmt"

	"github.com/adalundhe/crosstalk/core/tensor"
)

// AggregatePathways summarizes the object's communication tensor at the
// signaling-pathway level and stores the result in NetP. Pairs are grouped by
// the pathway annotation of the object's LR selection; the tensor slices of
// each group are summed per sender-receiver cell, skipping NaN entries (a
// cell with only NaN contributions stays NaN). This is pure aggregation over
// an already-inferred tensor.
func AggregatePathways(o *Object) error {
	if o.Net == nil {
		return fmt.Errorf("%w: net: no communication tensor to aggregate", ErrMissingAttribute)
	}
	if o.LR == nil {
		return fmt.Errorf("%w: lr_info: no ligand-receptor selection for pathway lookup", ErrMissingAttribute)
	}
	o.NetP = tensor.Aggregate(o.Net, o.LR.PathwayOf)
	return nil
}

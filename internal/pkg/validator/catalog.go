package validator

import (
	"fmt"

	"github.com/Jseow008/ThePlayBook-sub001/internal/entity"
)

// MaxBatchIDs bounds one content batch lookup.
const MaxBatchIDs = 50

func (v *Validator) ValidateContentBatch(req *entity.ContentBatchRequest) error {
	if len(req.IDs) == 0 {
		return fmt.Errorf("%w: ids", entity.ErrMissingField)
	}
	if len(req.IDs) > MaxBatchIDs {
		return fmt.Errorf("%w: ids has %d entries (max %d)", entity.ErrValidation, len(req.IDs), MaxBatchIDs)
	}

	for i, raw := range req.IDs {
		id, err := ValidateUUID(fmt.Sprintf("ids[%d]", i), raw)
		if err != nil {
			return err
		}
		req.IDs[i] = id
	}
	return nil
}

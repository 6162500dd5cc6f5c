package metrics

import (
	"errors"

	"github.com/osse101/NiltersBot_Go/internal/domain"
)

// RecordStoreError counts err against operation if it is a store failure.
// Business rejections are not counted.
func RecordStoreError(operation string, err error) {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		StoreErrors.WithLabelValues(operation).Inc()
	}
}

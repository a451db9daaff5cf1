package canadapost

import (
	"fmt"
	"strings"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// TrackingPath selects the tracking resource from the length of the number:
// 12, 13 and 16 digits are PINs, 15 digits a DNC.
func (c Catalog) TrackingPath(pin string) (string, error) {
	pin = strings.TrimSpace(pin)
	if !allDigits(pin) {
		return "", domain.InvalidInput("tracking path", domain.ErrInvalidPIN)
	}
	switch len(pin) {
	case 12, 13, 16:
		return fmt.Sprintf(c.PINTrackingPath, pin), nil
	case 15:
		return fmt.Sprintf(c.DNCTrackingPath, pin), nil
	default:
		return "", domain.InvalidInput("tracking path", domain.ErrInvalidPIN)
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
